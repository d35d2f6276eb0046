package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

// Spinner shows an indeterminate task, such as waiting for a page container.
func (pm *MPBProgressManager) Spinner(prefix string) *ProgressHandle {
	h := &ProgressHandle{start: time.Now()}
	h.bar = pm.p.New(0,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(decor.Name(prefix+"  ")),
		mpb.AppendDecorators(decor.Any(h.elapsedDecor)),
		mpb.BarFillerClearOnComplete(),
	)
	return h
}

// Countdown shows a bar that fills over d on its own.
func (pm *MPBProgressManager) Countdown(prefix string, d time.Duration) *ProgressHandle {
	h := &ProgressHandle{start: time.Now(), total: d.Milliseconds(), stop: make(chan struct{})}
	if h.total <= 0 {
		h.total = 1
	}

	h.bar = pm.p.New(h.total,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(decor.Name(prefix+"  ")),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.Any(h.elapsedDecor),
		),
	)

	go h.tick()
	return h
}

type ProgressHandle struct {
	bar   *mpb.Bar
	start time.Time
	total int64

	stop chan struct{}
	once sync.Once
}

func (h *ProgressHandle) elapsedDecor(_ decor.Statistics) string {
	return fmt.Sprintf(" | %.1fs", time.Since(h.start).Seconds())
}

func (h *ProgressHandle) tick() {
	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-t.C:
			ms := time.Since(h.start).Milliseconds()
			if ms >= h.total {
				ms = h.total - 1
			}
			h.bar.SetCurrent(ms)
		}
	}
}

func (h *ProgressHandle) finish(fn func()) {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		fn()
	})
}

// MarkDone completes the bar.
func (h *ProgressHandle) MarkDone() {
	h.finish(func() {
		if h.total > 0 {
			h.bar.SetCurrent(h.total)
			return
		}
		h.bar.SetTotal(-1, true)
	})
}

// Abort removes the bar without completing it.
func (h *ProgressHandle) Abort() {
	h.finish(func() { h.bar.Abort(true) })
}
