package parser

// EventKind identifies a step of a decode.
type EventKind int

const (
	// EventGuess is emitted once, after the first codec has been chosen.
	EventGuess EventKind = iota
	// EventAttemptSucceeded is emitted when a codec produced a document.
	EventAttemptSucceeded
	// EventAttemptFailed is emitted for every codec that failed.
	EventAttemptFailed
	// EventDecodeFailed is emitted once when every codec failed.
	EventDecodeFailed
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventGuess:
		return "guess"
	case EventAttemptSucceeded:
		return "attempt_succeeded"
	case EventAttemptFailed:
		return "attempt_failed"
	case EventDecodeFailed:
		return "decode_failed"
	default:
		return "unknown"
	}
}

// Event describes one step of a decode.
type Event struct {
	Kind EventKind
	// Guess is the format picked to try first.
	Guess SourceFormat
	// Format is the codec the event concerns. Empty for EventGuess and
	// EventDecodeFailed.
	Format SourceFormat
	// Attempt is the 1-based attempt number. Zero for EventGuess.
	Attempt int
	// Err is the attempt's failure, or the aggregate for EventDecodeFailed.
	Err error
}

// Observer receives decode events. Observe is called synchronously on the
// decoding goroutine, so implementations shared between decoders must be
// safe for concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// LogObserver returns an Observer that writes every event to l at debug
// level, except EventDecodeFailed which is logged as a warning.
func LogObserver(l Logger) Observer {
	if l == nil {
		l = NopLogger{}
	}
	return ObserverFunc(func(e Event) {
		attrs := []any{"event", e.Kind.String(), "guess", e.Guess.String()}
		if e.Format != "" {
			attrs = append(attrs, "format", e.Format.String())
		}
		if e.Attempt > 0 {
			attrs = append(attrs, "attempt", e.Attempt)
		}
		if e.Err != nil {
			attrs = append(attrs, "error", e.Err.Error())
		}

		switch e.Kind {
		case EventGuess:
			l.Debug("format guessed", attrs...)
		case EventAttemptSucceeded:
			l.Debug("decode attempt succeeded", attrs...)
		case EventAttemptFailed:
			l.Debug("decode attempt failed", attrs...)
		case EventDecodeFailed:
			l.Warn("all decode attempts failed", attrs...)
		}
	})
}
