package out

import (
	"context"
	"fmt"
	"io"

	chimeout "zazen/internal/modules/chime/port/out"
)

// TerminalBell writes the ASCII bell character. It is the zero-setup
// fallback so a fresh install still gets audible cues.
type TerminalBell struct {
	w io.Writer
}

func NewTerminalBell(w io.Writer) chimeout.Bell {
	return &TerminalBell{w: w}
}

func (b *TerminalBell) Ring(_ context.Context, _ string) error {
	if _, err := fmt.Fprint(b.w, "\a"); err != nil {
		return fmt.Errorf("ring terminal bell: %w", err)
	}
	return nil
}
