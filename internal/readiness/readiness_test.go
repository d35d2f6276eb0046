package readiness

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/page"
)

const readyPage = `<html lang="en-US"><body>
<div id="dp-container"><input type="hidden" name="ASIN" value="B0READY01"></div>
</body></html>`

const loadingPage = `<html lang="en-US"><body><div id="nav"></div></body></html>`

// countingSource serves loadingPage until the given load number.
func countingSource(readyAt int32, loads *atomic.Int32) Source {
	return SourceFunc(func(context.Context) (page.Accessor, error) {
		n := loads.Add(1)
		if n < readyAt {
			return page.FromString(loadingPage)
		}
		return page.FromString(readyPage)
	})
}

func TestRunTransitions(t *testing.T) {
	var loads atomic.Int32
	d := New(countingSource(3, &loads))
	d.Poll = time.Millisecond
	d.Delay = 5 * time.Millisecond

	var seen []State
	d.OnTransition = func(from, to State) {
		if len(seen) > 0 && seen[len(seen)-1] != from {
			t.Errorf("transition from %s, last state %s", from, seen[len(seen)-1])
		}
		seen = append(seen, to)
	}

	var renders int
	d.Render = func(_ page.Accessor, details extract.ProductDetails) error {
		renders++
		return nil
	}

	details, err := d.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []State{Delaying, Extracting, Rendered}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", seen, want)
		}
	}

	if renders != 1 {
		t.Fatalf("renders = %d, want 1", renders)
	}
	if asin, _ := details.ASIN.Get(); asin != "B0READY01" {
		t.Fatalf("ASIN = %q", asin)
	}
	if d.State() != Rendered {
		t.Fatalf("state = %s", d.State())
	}
	if loads.Load() < 4 {
		t.Fatalf("loads = %d, want polling plus a reload after the delay", loads.Load())
	}
}

func TestRunWaitsForDelay(t *testing.T) {
	var loads atomic.Int32
	d := New(countingSource(1, &loads))
	d.Delay = 30 * time.Millisecond

	start := time.Now()
	if _, err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < d.Delay {
		t.Fatalf("extracted after %s, before the %s delay", elapsed, d.Delay)
	}
}

func TestRunCancelledWhileWaiting(t *testing.T) {
	var loads atomic.Int32
	d := New(countingSource(1<<30, &loads))
	d.Poll = time.Millisecond

	extracted := false
	d.Extract = func(page.Accessor) extract.ProductDetails {
		extracted = true
		return extract.ProductDetails{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if extracted {
		t.Fatal("extracted without a container")
	}
	if d.State() != WaitingForContainer {
		t.Fatalf("state = %s", d.State())
	}
}

func TestRunCancelledWhileDelaying(t *testing.T) {
	var loads atomic.Int32
	d := New(countingSource(1, &loads))
	d.Delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	d.OnTransition = func(_, to State) {
		if to == Delaying {
			cancel()
		}
	}

	_, err := d.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
	if d.State() != Delaying {
		t.Fatalf("state = %s", d.State())
	}
}

func TestRunRenderError(t *testing.T) {
	var loads atomic.Int32
	d := New(countingSource(1, &loads))
	d.Delay = 0
	boom := errors.New("boom")
	d.Render = func(page.Accessor, extract.ProductDetails) error { return boom }

	_, err := d.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if d.State() != Extracting {
		t.Fatalf("state = %s", d.State())
	}
}

func TestFileSourceNotYetWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	d := New(FileSource(path))
	d.Poll = time.Millisecond
	d.Delay = time.Millisecond

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = os.WriteFile(path, []byte(readyPage), 0644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	details, err := d.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if asin, _ := details.ASIN.Get(); asin != "B0READY01" {
		t.Fatalf("ASIN = %q", asin)
	}
}

func TestRunWithoutSource(t *testing.T) {
	if _, err := (&Detector{}).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
