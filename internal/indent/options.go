package indent

import (
	"errors"
	"fmt"
)

// Defaults applied when a setting is absent.
const (
	DefaultTabSize      = 4
	DefaultUnindentSize = 4
)

// Errors returned for unusable options.
var (
	ErrIndentSizeNotConfigured = errors.New("indent step not configured")
	ErrInvalidTabSize          = errors.New("indent: tab size must be positive")
	ErrInvalidIndentSize       = errors.New("indent: indent size must be positive")
)

// Options carries the settings both commands read.
type Options struct {
	// IndentSize is the indent step in columns. Zero means unset.
	IndentSize int
	// TabSize is the width of a tab in columns.
	TabSize int
	// MixedTabs folds space runs that span a tab stop into tabs.
	MixedTabs bool
}

// Validate rejects sizes the column arithmetic cannot work with.
// An unset IndentSize is valid here; each command decides what it means.
func (o Options) Validate() error {
	if o.TabSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTabSize, o.TabSize)
	}
	if o.IndentSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndentSize, o.IndentSize)
	}
	return nil
}

func (o Options) forIndent() (Options, error) {
	if err := o.Validate(); err != nil {
		return o, err
	}
	if o.IndentSize == 0 {
		return o, ErrIndentSizeNotConfigured
	}
	return o, nil
}

func (o Options) forUnindent() (Options, error) {
	if err := o.Validate(); err != nil {
		return o, err
	}
	if o.IndentSize == 0 {
		o.IndentSize = DefaultUnindentSize
	}
	return o, nil
}
