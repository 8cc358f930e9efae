package figparser

import (
	"context"
	"log/slog"
)

// Option configures a Lexer or Parser.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	emitter  *EventEmitter
	filename string
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger enables debug logging of tokens, events and errors. A nil
// logger disables logging, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithListener registers fn to receive every event the parser yields.
// Listeners run synchronously in registration order.
func WithListener(fn func(Event)) Option {
	return func(c *config) {
		if c.emitter == nil {
			c.emitter = NewEventEmitter()
		}
		c.emitter.On(fn)
	}
}

// WithFilename records where the input came from so errors can name it.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

func (c *config) log(component, msg string, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("component", component))
	if c.filename != "" {
		attrs = append(attrs, slog.String("file", c.filename))
	}
	c.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
