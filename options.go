package budgetfill

import (
	"io"

	"go.uber.org/zap"
)

// Options holds configuration for the Filler.
type Options struct {
	templatePath   string
	templateReader io.Reader
	layout         Layout
	classifier     *Classifier
	logger         *zap.Logger
	listeners      []WriteListener
}

func defaultOptions() *Options {
	return &Options{
		layout: DefaultLayout(),
		logger: zap.NewNop(),
	}
}

// Option configures the Filler.
type Option func(*Options)

// WithTemplate sets the template file path.
func WithTemplate(path string) Option {
	return func(o *Options) { o.templatePath = path }
}

// WithTemplateReader sets the template as an io.Reader. It is consumed by the
// first render.
func WithTemplateReader(r io.Reader) Option {
	return func(o *Options) { o.templateReader = r }
}

// WithLayout replaces the default row layout.
func WithLayout(l Layout) Option {
	return func(o *Options) { o.layout = l }
}

// WithClassifier sets the category classifier (default: DefaultRules).
func WithClassifier(c *Classifier) Option {
	return func(o *Options) { o.classifier = c }
}

// WithLogger sets the logger used for drop and overflow diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWriteListener adds a listener notified around each cell write.
func WithWriteListener(l WriteListener) Option {
	return func(o *Options) { o.listeners = append(o.listeners, l) }
}
