package arena

import "golang.org/x/exp/slog"

// Option configures an Arena at construction time.
type Option func(*Arena)

// WithDefaultAlignment sets the alignment used by AllocBytes and Resize.
// align must be a power of two.
func WithDefaultAlignment(align int) Option {
	checkAlign(align)
	return func(a *Arena) {
		a.align = align
	}
}

// WithLogger sets a logger for debug records about failed allocations,
// copying resizes and resets. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		a.log = l
	}
}
