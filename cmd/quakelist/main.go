// Command quakelist fetches the earthquake feed once and prints the records
// that pass the saved filters. Filter flags update the saved filters before
// the list is printed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/couchcryptid/quake-feed-service/internal/adapter/prefs"
	"github.com/couchcryptid/quake-feed-service/internal/adapter/terminal"
	"github.com/couchcryptid/quake-feed-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-feed-service/internal/config"
	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
	"github.com/couchcryptid/quake-feed-service/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	update  domain.FilterUpdate
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("quakelist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	minMag := fs.Float64("min", domain.DefaultMagnitudeMin, "minimum magnitude (saved)")
	maxMag := fs.Float64("max", domain.DefaultMagnitudeMax, "maximum magnitude (saved)")
	location := fs.String("location", "", "case-insensitive place filter, empty clears it (saved)")
	verbose := fs.Bool("v", false, "log to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Only flags given on the command line change the saved filters.
	opts := options{verbose: *verbose}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min":
			opts.update.MagnitudeMin = minMag
		case "max":
			opts.update.MagnitudeMax = maxMag
		case "location":
			opts.update.LocationText = location
		}
	})
	return opts, nil
}

func (o options) changesFilters() bool {
	return o.update.MagnitudeMin != nil || o.update.MagnitudeMax != nil || o.update.LocationText != nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "quakelist:", err)
		return 1
	}

	logger := observability.DiscardLogger()
	if opts.verbose {
		logger = observability.NewCLILogger(cfg.LogLevel)
	}

	slot, closer, err := prefs.Open(ctx, cfg, store.PreferencesSlotName)
	if err != nil {
		fmt.Fprintln(stderr, "quakelist: open preferences:", err)
		return 1
	}
	defer closer.Close()

	source := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, logger)
	st := store.New(ctx, source, slot, nil, logger, observability.NewUnregisteredMetrics())

	if opts.changesFilters() {
		st.UpdateFilters(ctx, opts.update)
	}

	r := terminal.NewRenderer(stdout, outputWidth(stdout), cfg.DisplayLocation)

	_ = st.Fetch(ctx)
	state := st.Snapshot()
	if state.Error != nil {
		fmt.Fprintln(stderr, r.Error(*state.Error))
		return 1
	}

	filtered := st.Filtered()
	fmt.Fprintln(stdout, r.Header(state.Filters, len(filtered), state.Count))
	fmt.Fprintln(stdout, r.List(filtered))
	return 0
}

// outputWidth is the terminal width of w, or zero when w is not a terminal.
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
