package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/brogergvhs/magnify/internal/extract"
	"github.com/brogergvhs/magnify/internal/page"
	"github.com/brogergvhs/magnify/internal/panel"
	"github.com/brogergvhs/magnify/internal/readiness"
	"github.com/brogergvhs/magnify/internal/ui"
	"github.com/brogergvhs/magnify/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagDelay   time.Duration
	flagPoll    time.Duration
	flagTimeout time.Duration
	flagQuiet   bool
	flagBrowser bool
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch <file|url>",
		Short: "Wait for a page being saved to become ready, then show the panel",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	watchCmd.Flags().StringVar(&flagFormat, "format", "", "output format: text, html, json or pdf")
	watchCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the panel to this file instead of stdout")
	watchCmd.Flags().StringVar(&flagMarketplace, "marketplace", "", "marketplace code for the royalty (default: page language)")
	watchCmd.Flags().StringVar(&flagInject, "inject", "", "write the page with a loading placeholder, then with the panel, to this file")
	watchCmd.Flags().BoolVar(&flagShowDimensions, "show-dimensions", false, "include the dimensions card")
	watchCmd.Flags().StringVar(&flagLogo, "logo", "", "logo image URL for the HTML panel header")
	watchCmd.Flags().DurationVar(&flagDelay, "delay", 0, "settle time after the product container appears (default from config, 1.5s)")
	watchCmd.Flags().DurationVar(&flagPoll, "poll", 0, "how often to re-read the page while waiting")
	watchCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "give up after this long (0 waits until interrupted)")
	watchCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "hide progress bars")
	watchCmd.Flags().BoolVar(&flagBrowser, "browser", false, "render the page in a local headless Chrome so page scripts run (path or URL)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := outputOptions()
	opts.Delay = flagDelay
	opts.PollInterval = flagPoll

	cfg, log, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := util.InterruptContext(context.Background())
	defer stop()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	path := args[0]
	var src readiness.Source = tracedFile(path, log)
	if flagBrowser {
		bs, err := readiness.NewBrowserSource(path)
		if err != nil {
			return err
		}
		defer bs.Close()
		log.Debugf("Rendering %s in headless Chrome\n", bs.URL())
		src = bs
	}

	d := readiness.New(src)
	d.Poll = cfg.PollInterval
	d.Delay = cfg.Delay
	d.Log = log
	d.Extract = extract.New(log).Extract

	progress := newWatchProgress(flagQuiet, cfg.Delay)
	defer progress.close()

	d.OnTransition = func(_, to readiness.State) {
		progress.enter(to)
		if to == readiness.Delaying && flagInject != "" && flagInject != util.StdStream {
			if err := writePlaceholder(ctx, src, flagInject); err != nil {
				log.Errorf("Could not write loading placeholder: %v\n", err)
			}
		}
	}

	d.Render = func(acc page.Accessor, details extract.ProductDetails) error {
		doc, ok := acc.(*page.Document)
		if !ok {
			return errors.New("watch: page snapshot is not a document")
		}
		progress.close()
		return writeResults(cmd.OutOrStdout(), cfg, log, doc, buildPanel(cfg, log, details))
	}

	log.Infof("Waiting for %s to show a product container...\n", path)
	_, err = d.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("timed out waiting for the page to become ready")
	}
	return err
}

// tracedFile reads the page from path and logs its size whenever it changes
// while the file is being written.
func tracedFile(path string, log *ui.Logger) readiness.Source {
	var last string
	return readiness.SourceFunc(func(ctx context.Context) (page.Accessor, error) {
		size, ok := util.FileSize(path)
		if !ok {
			size = "missing"
		}
		if size != last {
			log.Debugf("Page %s: %s\n", path, size)
			last = size
		}
		return readiness.FileSource(path).Load(ctx)
	})
}

// writePlaceholder saves the page with a loading indicator where the panel
// will appear.
func writePlaceholder(ctx context.Context, src readiness.Source, dst string) error {
	acc, err := src.Load(ctx)
	if err != nil {
		return err
	}
	doc, ok := acc.(*page.Document)
	if !ok {
		return errors.New("page snapshot is not a document")
	}
	if !panel.InsertPlaceholder(doc.Goquery()) {
		return errors.New("no product container")
	}

	markup, err := doc.HTML()
	if err != nil {
		return err
	}
	return util.WriteOutput(dst, io.Discard, func(w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

type watchProgress struct {
	pm      *ui.MPBProgressManager
	delay   time.Duration
	current *ui.ProgressHandle
}

func newWatchProgress(quiet bool, delay time.Duration) *watchProgress {
	wp := &watchProgress{delay: delay}
	if quiet || delay <= 0 {
		return wp
	}

	wp.pm = ui.NewProgressManager(os.Stderr)
	wp.current = wp.pm.Spinner("waiting for page")
	return wp
}

func (wp *watchProgress) enter(state readiness.State) {
	if wp.pm == nil {
		return
	}
	if wp.current != nil {
		wp.current.MarkDone()
		wp.current = nil
	}
	if state == readiness.Delaying {
		wp.current = wp.pm.Countdown("settling", wp.delay)
	}
}

func (wp *watchProgress) close() {
	if wp.pm == nil {
		return
	}
	if wp.current != nil {
		wp.current.Abort()
		wp.current = nil
	}
	wp.pm.Close()
	wp.pm = nil
}
