// Package output renders CLI results as styled text, markdown, or JSON.
//
// The renderer picks its format from the configured mode: "auto" uses
// styled text on a terminal and markdown when piped, so command output
// stays readable in scripts and CI logs without extra flags.
package output

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	tty    *bool
	styles *Styles
}

// NewRenderer creates a renderer for the given writers and mode.
// An empty mode means ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
	}
	r.styles = NewStyles(r.colorEnabled())
	return r
}

// NewRendererWithTTY creates a renderer with terminal detection forced
// to isTTY. Tests use it to get deterministic output from buffers.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		tty:    &isTTY,
	}
	r.styles = NewStyles(r.colorEnabled())
	return r
}

// Mode returns the configured mode, which may be ModeAuto.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// EffectiveMode resolves ModeAuto: text on a terminal, markdown
// otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.terminal() {
		return ModeText
	}
	return ModeMarkdown
}

// colorEnabled reports whether styled output should carry color.
// Only styled text on a real terminal gets color; NO_COLOR wins.
func (r *Renderer) colorEnabled() bool {
	if noColorEnv() {
		return false
	}
	switch r.mode {
	case ModeText:
		return r.terminal()
	case ModeAuto:
		return r.terminal()
	default:
		return false
	}
}

func (r *Renderer) terminal() bool {
	if r.tty != nil {
		return *r.tty
	}
	return isTerminal(r.out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Styles returns the style set matching the renderer's color support.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the primary output.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the primary output.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Success writes a success line, with a check mark in styled mode.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
		return
	}
	fmt.Fprintln(r.out, msg)
}

// Error writes an error line to the error output.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
		return
	}
	fmt.Fprintln(r.errOut, msg)
}

// JSON writes v as indented JSON to the primary output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
