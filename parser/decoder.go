package parser

import (
	"fmt"
	"time"

	"github.com/shigou0206/stepflow-test/oaserrors"
)

// Decoder turns OpenAPI 3.0 text of unknown format into a Document.
//
// A Decoder holds only its configuration, so one value may be shared by any
// number of goroutines.
type Decoder struct {
	observers         []Observer
	formatHint        SourceFormat
	validateStructure bool
	maxInputSize      int64
}

// Result is a successful decode along with how it was reached.
type Result struct {
	// Document is the decoded document. Never nil.
	Document *Document
	// Guess is the format tried first.
	Guess SourceFormat
	// Format is the codec that produced Document.
	Format SourceFormat
	// Attempts holds the failures of codecs that ran before Format, in order.
	// Empty when the first codec succeeded.
	Attempts []*oaserrors.DecodeError
	// SourceSize is the size of the input in bytes.
	SourceSize int64
	// DecodeTime is the wall time spent decoding.
	DecodeTime time.Duration
	// Stats summarizes the decoded document.
	Stats DocumentStats
}

// FellBack reports whether the first codec failed and a later one succeeded.
func (r *Result) FellBack() bool {
	return r.Guess != r.Format
}

// New returns a Decoder configured by opts.
//
// Example:
//
//	d, err := parser.New(
//	    parser.WithFormatHint(parser.FormatFromPath("api.yaml")),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
func New(opts ...Option) (*Decoder, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	d := &Decoder{
		formatHint:        cfg.formatHint,
		validateStructure: cfg.validateStructure,
		maxInputSize:      cfg.maxInputSize,
	}
	if cfg.logger != nil {
		d.observers = append(d.observers, LogObserver(cfg.logger))
	}
	d.observers = append(d.observers, cfg.observers...)
	return d, nil
}

var defaultDecoder = &Decoder{
	formatHint:        SourceFormatUnknown,
	validateStructure: true,
}

// Decode decodes content with the default configuration.
func Decode(content []byte) (*Document, error) {
	return defaultDecoder.Decode(content)
}

// DecodeString decodes content with the default configuration.
func DecodeString(content string) (*Document, error) {
	return defaultDecoder.DecodeString(content)
}

// Decode decodes content as JSON or YAML, whichever works.
//
// On failure the error is an *oaserrors.AggregateDecodeError holding every
// codec's diagnostic in attempt order, or an *oaserrors.ResourceLimitError
// when content exceeds the configured maximum size.
func (d *Decoder) Decode(content []byte) (*Document, error) {
	res, err := d.DecodeResult(content)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// DecodeString is Decode for string content.
func (d *Decoder) DecodeString(content string) (*Document, error) {
	return d.Decode([]byte(content))
}

// DecodeResult is Decode, returning details of how the document was decoded.
func (d *Decoder) DecodeResult(content []byte) (*Result, error) {
	start := time.Now()
	size := int64(len(content))
	if d.maxInputSize > 0 && size > d.maxInputSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "content_size",
			Limit:        d.maxInputSize,
			Actual:       size,
		}
	}

	guess := d.formatHint
	if guess == SourceFormatUnknown || guess == "" {
		guess = GuessFormat(content)
	}
	d.emit(Event{Kind: EventGuess, Guess: guess})

	var failures []*oaserrors.DecodeError
	for i, codec := range attemptOrder(guess) {
		format := codec.Format()
		doc, derr := d.attempt(codec, content)
		if derr != nil {
			failures = append(failures, derr)
			d.emit(Event{Kind: EventAttemptFailed, Guess: guess, Format: format, Attempt: i + 1, Err: derr})
			continue
		}

		d.emit(Event{Kind: EventAttemptSucceeded, Guess: guess, Format: format, Attempt: i + 1})
		return &Result{
			Document:   doc,
			Guess:      guess,
			Format:     format,
			Attempts:   failures,
			SourceSize: size,
			DecodeTime: time.Since(start),
			Stats:      GetDocumentStats(doc),
		}, nil
	}

	agg := aggregate(failures)
	d.emit(Event{Kind: EventDecodeFailed, Guess: guess, Err: agg})
	return nil, agg
}

// attempt runs one codec into a fresh Document so a failed attempt leaves
// nothing behind for the next.
func (d *Decoder) attempt(codec Codec, content []byte) (*Document, *oaserrors.DecodeError) {
	doc := new(Document)
	if err := codec.Unmarshal(content, doc); err != nil {
		return nil, newDecodeError(codec.Format(), content, err)
	}
	if d.validateStructure {
		if err := checkStructure(doc); err != nil {
			return nil, newStructureError(codec.Format(), err)
		}
	}
	return doc, nil
}

func (d *Decoder) emit(e Event) {
	for _, o := range d.observers {
		o.Observe(e)
	}
}
