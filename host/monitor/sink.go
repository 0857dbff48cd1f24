package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sort"
)

// Sink receives parsed events.
type Sink interface {
	Publish(e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event) error

func (f SinkFunc) Publish(e Event) error { return f(e) }

// Fanout publishes to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Publish(e Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SlogSink logs events. Fast moves and scheduling failures are warnings;
// everything else is info.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Publish(e Event) error {
	level := slog.LevelInfo
	switch e.Kind {
	case KindFastMove, KindTickScheduleFailed, KindDropped:
		level = slog.LevelWarn
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, e.Fields[k]))
	}
	s.Logger.LogAttrs(context.Background(), level, e.Kind, attrs...)
	return nil
}
