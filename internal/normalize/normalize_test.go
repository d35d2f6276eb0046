package normalize

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"date punctuation", "March 3, 2021", "March 3 2021"},
		{"tags removed", "<b>Independently</b> published", "Independently published"},
		{"hyphen kept", " Smith-Jones Press. ", "Smith-Jones Press"},
		{"empty", "", ""},
		{"only symbols", "‏ : ‎", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.in); got != tc.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanDimensions(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"21.59 x 0.61 x 27.94 cm", "21.59 x 0.61 x 27.94 cm"},
		{"20cm", "20 cm"},
		{"<span>8.5 x 11 inches</span>;", "8.5 x 11 inches"},
		{"14,8 × 1,2 × 21 cm", "14,8 × 1,2 × 21 cm"},
	}

	for _, tc := range cases {
		if got := CleanDimensions(tc.in); got != tc.want {
			t.Fatalf("CleanDimensions(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanersAreIdempotent(t *testing.T) {
	inputs := []string{
		"Independently published (March 3, 2021)",
		"20cm x 3cm",
		"<i>6 x 0.5 x 9 inches</i>",
		"Verlag: Tredition (1. Februar 2022)",
		"1a1a",
	}

	for _, in := range inputs {
		once := CleanText(in)
		if twice := CleanText(once); twice != once {
			t.Fatalf("CleanText not idempotent for %q: %q then %q", in, once, twice)
		}

		once = CleanDimensions(in)
		if twice := CleanDimensions(once); twice != once {
			t.Fatalf("CleanDimensions not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  Publisher \n\t :  Foo Bar  "); got != "Publisher : Foo Bar" {
		t.Fatalf("unexpected collapse result %q", got)
	}
}
