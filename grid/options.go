package grid

import (
	"io"
	"log/slog"
)

type Options struct {
	HistoryLimit      int // default: 1000
	ResortDelayFrames int // default: 2
	DefaultRowHeight  int // default: 1

	// Logger receives debug records about dropped commands, vetoed writes and
	// cache resets. Nil discards them.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.HistoryLimit == 0 {
		o.HistoryLimit = 1000
	}
	if o.ResortDelayFrames <= 0 {
		o.ResortDelayFrames = 2
	}
	if o.DefaultRowHeight <= 0 {
		o.DefaultRowHeight = 1
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
