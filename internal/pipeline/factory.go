package pipeline

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"txhandoff/internal/consumer"
)

const (
	ModeTransfer = "transfer"
	ModeBorrow   = "borrow"
	ModeClone    = "clone"
	ModeShare    = "share"
)

// Modes lists every accepted strategy name.
var Modes = []string{ModeTransfer, ModeBorrow, ModeClone, ModeShare}

// Build returns a pipeline implementation matching the configured mode.
func Build(mode string, consumers []consumer.Consumer, log zerolog.Logger) (Pipeline, error) {
	b := base{consumers: consumers, log: log.With().Str("component", "pipeline").Logger()}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeBorrow, "reference":
		return &Borrow{b}, nil
	case ModeClone, "duplicate":
		return &Clone{b}, nil
	case ModeShare, "refcount":
		return &Share{base: b}, nil
	case ModeTransfer, "move":
		return &Transfer{b}, nil
	default:
		return nil, fmt.Errorf("pipeline mode invalid: %s (want one of %s)", mode, strings.Join(Modes, ", "))
	}
}
