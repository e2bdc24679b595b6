// posplot computes the forward-propagation tables of a proof-of-space plot
// and prints per-table statistics.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"

	"posplot/internal/core"
	"posplot/internal/forward"
	"posplot/pkg/posplot"
)

type options struct {
	ID      string `long:"id" description:"Plot identifier as 64 hex characters" required:"true"`
	Blocks  uint64 `long:"blocks" description:"Number of table-1 keystream blocks (0 = full range)"`
	Workers int    `long:"workers" description:"Worker pool size (0 = GOMAXPROCS)"`
	TempDir string `long:"tmpdir" description:"Back sorted runs with on-disk stores under this directory"`
	Debug   bool   `long:"debug" description:"Enable debug logging"`
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	idBytes, err := hex.DecodeString(opts.ID)
	if err != nil || len(idBytes) != core.IDSize {
		return fmt.Errorf("--id must be %d hex-encoded bytes", core.IDSize)
	}

	backend := slog.NewBackend(os.Stdout)
	logger := backend.Logger("PLOT")
	logger.SetLevel(slog.LevelInfo)
	if opts.Debug {
		logger.SetLevel(slog.LevelDebug)
	}
	posplot.UseLogger(logger)
	forward.UseLogger(logger)

	cfg := posplot.Config{
		Blocks:   opts.Blocks,
		Workers:  opts.Workers,
		TempDir:  opts.TempDir,
		Progress: true,
	}
	copy(cfg.ID[:], idBytes)

	stats, err := posplot.ForwardPropagate(cfg)
	if err != nil {
		return err
	}
	for _, ts := range stats {
		fmt.Printf("table %d: entries=%d matches=%d checksum=%016x\n",
			ts.Table, ts.Entries, ts.Matches, ts.Checksum)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "posplot:", err)
		os.Exit(1)
	}
}
