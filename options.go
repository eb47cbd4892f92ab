package texlib

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/imaging"
	"github.com/mydehq/texlib/internal/pass"
	"github.com/mydehq/texlib/internal/scanner"
)

// Option configures library operations.
type Option func(*options)

type options struct {
	events       EventHandler
	workers      int
	registry     *category.Registry
	classifier   *pass.Classifier
	formats      []string
	thumbWidth   int
	noThumbnails bool
	logger       *log.Logger
	decoder      Decoder
}

func newOptions(opts []Option) *options {
	o := &options{
		thumbWidth: imaging.DefaultThumbnailWidth,
		logger:     log.New(io.Discard),
		decoder:    imaging.New(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) scanner() *scanner.Scanner {
	opts := []scanner.Option{
		scanner.WithRegistry(o.registry),
		scanner.WithClassifier(o.classifier),
		scanner.WithDecoder(o.decoder),
		scanner.WithFormats(o.formats),
		scanner.WithWorkers(o.workers),
		scanner.WithThumbnailWidth(o.thumbWidth),
		scanner.WithLogger(o.logger),
		scanner.WithEvents(o.events),
	}
	if o.noThumbnails {
		opts = append(opts, scanner.WithoutThumbnails())
	}
	return scanner.New(opts...)
}

// WithEvents sets a handler that receives progress events.
func WithEvents(h EventHandler) Option {
	return func(o *options) {
		o.events = h
	}
}

// WithWorkers bounds how many texture folders are scanned in parallel.
// 1 scans sequentially; the default is one worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRegistry replaces the built-in category table.
func WithRegistry(r *category.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithClassifier replaces the built-in pass keyword table.
func WithClassifier(c *pass.Classifier) Option {
	return func(o *options) {
		o.classifier = c
	}
}

// WithFormats sets which image extensions are scanned.
func WithFormats(formats []string) Option {
	return func(o *options) {
		o.formats = formats
	}
}

// WithThumbnailWidth sets the maximum width of decoded thumbnails.
func WithThumbnailWidth(w int) Option {
	return func(o *options) {
		if w > 0 {
			o.thumbWidth = w
		}
	}
}

// WithoutThumbnails skips thumbnail decoding during a scan.
func WithoutThumbnails() Option {
	return func(o *options) {
		o.noThumbnails = true
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDecoder replaces the image decoder.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}
