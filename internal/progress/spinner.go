package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a message until Stop is called. A disabled spinner prints nothing.
type Spinner struct {
	s       *spinner.Spinner
	w       io.Writer
	symbols ProgressSymbols
	message string
}

// NewSpinner returns a spinner drawing message on w. It is disabled when
// enabled is false or caps reports a non-terminal stream.
func NewSpinner(w io.Writer, caps TerminalCapabilities, message string, enabled bool) *Spinner {
	sp := &Spinner{w: w, symbols: SelectSymbols(caps), message: message}
	if !enabled || !caps.IsTTY {
		return sp
	}

	sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(w))
	sp.s.Suffix = " " + message
	if caps.SupportsColor {
		_ = sp.s.Color("cyan")
	}
	return sp
}

// Enabled reports whether the spinner draws anything.
func (sp *Spinner) Enabled() bool {
	return sp.s != nil
}

// Start begins the animation.
func (sp *Spinner) Start() {
	if sp.s != nil {
		sp.s.Start()
	}
}

// Stop ends the animation and leaves a final status line.
func (sp *Spinner) Stop(success bool) {
	if sp.s == nil {
		return
	}
	sp.s.Stop()

	mark := sp.symbols.Checkmark
	if !success {
		mark = sp.symbols.Failure
	}
	fmt.Fprintf(sp.w, "%s %s\n", mark, sp.message)
}
