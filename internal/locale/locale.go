// Package locale holds the label synonyms used to recognise product detail
// fields in page text, per page language.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Field names a detail-list field that is recognised by its label.
type Field int

const (
	Publisher Field = iota
	BestSellersRank
	InBooks
	Reviews
	Pages
	Dimensions
)

// Translations lists, per field, the labels a page in one language uses.
type Translations struct {
	Lang            string
	Publisher       []string
	BestSellersRank []string
	InBooks         []string
	Reviews         []string
	Pages           []string
	Dimensions      []string
}

const fallbackLang = "en"

var table = map[string]Translations{
	"en": {
		Lang:            "en",
		Publisher:       []string{"Publisher", "Published by"},
		BestSellersRank: []string{"Best Sellers Rank", "Amazon Best Sellers Rank"},
		InBooks:         []string{"in Books"},
		Reviews:         []string{"customer reviews", "ratings"},
		Pages:           []string{"pages"},
		Dimensions:      []string{"dimensions"},
	},
	"de": {
		Lang:            "de",
		Publisher:       []string{"Verlag", "Herausgeber"},
		BestSellersRank: []string{"Amazon Bestseller-Rang", "Bestseller-Rang"},
		InBooks:         []string{"in Bücher"},
		Reviews:         []string{"Kundenrezensionen", "Sterne"},
		Pages:           []string{"Seiten"},
		Dimensions:      []string{"Abmessungen"},
	},
	"fr": {
		Lang:            "fr",
		Publisher:       []string{"Éditeur", "Editeur"},
		BestSellersRank: []string{"Classement des meilleures ventes d'Amazon", "Classement des meilleures ventes"},
		InBooks:         []string{"en Livres"},
		Reviews:         []string{"Commentaires client", "Evaluations"},
		Pages:           []string{"pages"},
		Dimensions:      []string{"dimensions"},
	},
	"es": {
		Lang:            "es",
		Publisher:       []string{"Editorial", "Editora"},
		BestSellersRank: []string{"Clasificación en los más vendidos de Amazon", "Clasificación en Libros"},
		InBooks:         []string{"en Libros"},
		Reviews:         []string{"opiniones de clientes", "valoraciones"},
		Pages:           []string{"páginas", "paginas"},
		Dimensions:      []string{"dimensiones"},
	},
	"it": {
		Lang:            "it",
		Publisher:       []string{"Editore"},
		BestSellersRank: []string{"Posizione nella classifica Bestseller di Amazon", "Posizione nella Classifica Bestseller"},
		InBooks:         []string{"in Libri"},
		Reviews:         []string{"recensioni clienti", "voti"},
		Pages:           []string{"pagine"},
		Dimensions:      []string{"dimensioni"},
	},
	"ja": {
		Lang:            "ja",
		Publisher:       []string{"出版社"},
		BestSellersRank: []string{"Amazon 売れ筋ランキング", "売れ筋ランキング"},
		InBooks:         []string{"本"},
		Reviews:         []string{"カスタマーレビュー", "個の評価"},
		Pages:           []string{"ページ", "pages", "pagine", "Seiten", "páginas", "paginas"},
		Dimensions:      []string{"寸法"},
	},
}

// For returns the translations for a BCP-47 style tag such as "en-US".
// Unknown or malformed tags fall back to English.
func For(tag string) Translations {
	if t, ok := table[PrimaryLanguage(tag)]; ok {
		return t
	}

	return table[fallbackLang]
}

// PrimaryLanguage returns the lower-cased primary subtag of tag.
func PrimaryLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fallbackLang
	}

	if parsed, err := language.Parse(tag); err == nil {
		if base, conf := parsed.Base(); conf != language.No {
			return base.String()
		}
	}

	primary, _, _ := strings.Cut(strings.ReplaceAll(tag, "_", "-"), "-")

	return strings.ToLower(primary)
}

// Languages returns the codes that have their own table entry.
func Languages() []string {
	return []string{"en", "de", "fr", "es", "it", "ja"}
}

// Labels returns the synonym list for one field.
func (t Translations) Labels(f Field) []string {
	switch f {
	case Publisher:
		return t.Publisher
	case BestSellersRank:
		return t.BestSellersRank
	case InBooks:
		return t.InBooks
	case Reviews:
		return t.Reviews
	case Pages:
		return t.Pages
	case Dimensions:
		return t.Dimensions
	default:
		return nil
	}
}

// Matches reports whether text contains any label of f, ignoring case.
// Containment tolerates the colons and punctuation around labels in markup.
func (t Translations) Matches(f Field, text string) bool {
	lower := strings.ToLower(text)
	for _, label := range t.Labels(f) {
		if strings.Contains(lower, strings.ToLower(label)) {
			return true
		}
	}

	return false
}
