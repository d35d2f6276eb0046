// Package readiness waits for a product page to be ready before extracting
// from it. A page is ready once one of the product containers exists; after
// that a fixed delay lets late content settle, then extraction and rendering
// run exactly once.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/page"
)

type State int

const (
	WaitingForContainer State = iota
	Delaying
	Extracting
	Rendered
)

func (s State) String() string {
	switch s {
	case WaitingForContainer:
		return "waiting-for-container"
	case Delaying:
		return "delaying"
	case Extracting:
		return "extracting"
	case Rendered:
		return "rendered"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	DefaultContainers = "#dp-container, #ppd"
	DefaultDelay      = 1500 * time.Millisecond
	DefaultPoll       = 250 * time.Millisecond
)

// Source yields the current snapshot of the page. An error means the page
// cannot be read yet and is retried on the next poll.
type Source interface {
	Load(ctx context.Context) (page.Accessor, error)
}

type SourceFunc func(ctx context.Context) (page.Accessor, error)

func (f SourceFunc) Load(ctx context.Context) (page.Accessor, error) { return f(ctx) }

// FileSource reads the page from a file that may still be being written.
type FileSource string

func (f FileSource) Load(context.Context) (page.Accessor, error) {
	return page.FromFile(string(f))
}

type Logger interface {
	Debugf(format string, args ...any)
}

type Detector struct {
	Source     Source
	Containers string
	Poll       time.Duration
	Delay      time.Duration

	Extract func(page.Accessor) extract.ProductDetails
	Render  func(page.Accessor, extract.ProductDetails) error

	// OnTransition is called on every state change, before the new state's
	// work starts.
	OnTransition func(from, to State)
	Log          Logger

	state State
}

func New(src Source) *Detector {
	return &Detector{
		Source:     src,
		Containers: DefaultContainers,
		Poll:       DefaultPoll,
		Delay:      DefaultDelay,
		Extract:    extract.Extract,
	}
}

// State returns the state reached by the last Run.
func (d *Detector) State() State {
	return d.state
}

func (d *Detector) transition(to State) {
	from := d.state
	d.state = to
	if d.Log != nil {
		d.Log.Debugf("readiness: %s -> %s\n", from, to)
	}
	if d.OnTransition != nil {
		d.OnTransition(from, to)
	}
}

// Run drives the detector to Rendered. Cancelling ctx aborts the wait for
// the container and the delay; once extraction starts it runs to completion.
func (d *Detector) Run(ctx context.Context) (extract.ProductDetails, error) {
	if d.Source == nil {
		return extract.ProductDetails{}, errors.New("readiness: no page source")
	}
	d.state = WaitingForContainer

	if err := d.waitForContainer(ctx); err != nil {
		return extract.ProductDetails{}, err
	}

	d.transition(Delaying)
	if err := d.delay(ctx); err != nil {
		return extract.ProductDetails{}, err
	}

	d.transition(Extracting)

	// content may have arrived during the delay
	acc, err := d.Source.Load(context.WithoutCancel(ctx))
	if err != nil {
		return extract.ProductDetails{}, fmt.Errorf("readiness: reload page: %w", err)
	}

	extractFn := d.Extract
	if extractFn == nil {
		extractFn = extract.Extract
	}
	details := extractFn(acc)

	if d.Render != nil {
		if err := d.Render(acc, details); err != nil {
			return details, fmt.Errorf("readiness: render: %w", err)
		}
	}
	d.transition(Rendered)

	return details, nil
}

func (d *Detector) ready(ctx context.Context) bool {
	acc, err := d.Source.Load(ctx)
	if err != nil {
		if d.Log != nil {
			d.Log.Debugf("readiness: page not readable yet: %v\n", err)
		}
		return false
	}

	containers := d.Containers
	if containers == "" {
		containers = DefaultContainers
	}
	return acc.Exists(containers)
}

func (d *Detector) waitForContainer(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.ready(ctx) {
		return nil
	}

	poll := d.Poll
	if poll <= 0 {
		poll = DefaultPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if d.ready(ctx) {
				return nil
			}
		}
	}
}

func (d *Detector) delay(ctx context.Context) error {
	if d.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
