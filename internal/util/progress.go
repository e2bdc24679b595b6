// Package util holds small helpers shared by the pipeline drives.
package util

import (
	"fmt"
	"time"
)

// ProgressLogger tracks and prints progress of a long drive.
type ProgressLogger struct {
	totalEvents    uint64
	prefix         string
	suffix         string
	loggedEvents   uint64
	logStep        uint64
	nextEventToLog uint64
	enabled        bool
	startTime      time.Time
}

// NewProgressLogger creates a progress logger over totalEvents events.
func NewProgressLogger(totalEvents uint64, prefix, suffix string, enable bool) *ProgressLogger {
	pl := &ProgressLogger{
		totalEvents: totalEvents,
		prefix:      prefix,
		suffix:      suffix,
		enabled:     enable,
		startTime:   time.Now(),
	}

	percFraction := uint64(20) // 5% steps
	if totalEvents >= 100_000_000 {
		percFraction = 100 // 1% steps for large counts
	}
	pl.logStep = (totalEvents + percFraction - 1) / percFraction
	if pl.logStep == 0 {
		pl.logStep = 1
	}

	if enable {
		pl.nextEventToLog = pl.logStep
	} else {
		pl.nextEventToLog = ^uint64(0)
	}
	return pl
}

// LogN advances the counter by n events and prints progress when a step
// boundary is crossed.
func (pl *ProgressLogger) LogN(n uint64) {
	if !pl.enabled {
		return
	}
	pl.loggedEvents += n
	if pl.loggedEvents >= pl.nextEventToLog {
		pl.update(false)
		for pl.nextEventToLog <= pl.loggedEvents {
			pl.nextEventToLog += pl.logStep
		}
		if pl.nextEventToLog > pl.totalEvents {
			pl.nextEventToLog = pl.totalEvents
		}
	}
}

// Finalize prints the 100% progress update.
func (pl *ProgressLogger) Finalize() {
	if !pl.enabled {
		return
	}
	pl.loggedEvents = pl.totalEvents
	pl.update(true)
}

func (pl *ProgressLogger) update(final bool) {
	perc := uint64(0)
	if pl.totalEvents > 0 {
		perc = (100 * pl.loggedEvents) / pl.totalEvents
	}
	fmt.Printf("\r%s%d%%%s", pl.prefix, perc, pl.suffix)
	if final {
		elapsed := time.Since(pl.startTime)
		fmt.Printf(" (%.2fs) \n", elapsed.Seconds())
	}
}
