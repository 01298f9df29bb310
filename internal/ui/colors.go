package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Color scheme for gitpilot
var (
	// Primary actions
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)
	Notice  = color.New(color.FgMagenta)

	// Secondary actions
	Highlight = color.New(color.FgHiCyan, color.Bold)
	Muted     = color.New(color.Faint)
	Bold      = color.New(color.Bold)
	Title     = color.New(color.FgRed)

	// Status indicators
	CheckMark = color.GreenString("✓")
	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")
	Bullet    = color.HiBlackString("•")
)

// InitColors initializes color settings from the configured mode
// ("always", "never" or "auto") and the environment
func InitColors(mode string) {
	switch mode {
	case "never":
		color.NoColor = true
		return
	case "always":
		color.NoColor = false
		return
	}

	// Respect NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	// Respect TERM environment variable
	if os.Getenv("TERM") == "dumb" {
		color.NoColor = true
	}
}

// Console prints styled messages to an explicit pair of writers
type Console struct {
	Out io.Writer
	Err io.Writer
}

// NewConsole creates a Console. A nil writer discards output.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return &Console{Out: out, Err: errOut}
}

// Success prints a success message
func (c *Console) Success(format string, args ...interface{}) {
	Success.Fprintf(c.Out, "%s %s\n", CheckMark, fmt.Sprintf(format, args...))
}

// Error prints an error message
func (c *Console) Error(format string, args ...interface{}) {
	Error.Fprintf(c.Err, "%s %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (c *Console) Warning(format string, args ...interface{}) {
	Warning.Fprintf(c.Err, "%s\n", fmt.Sprintf(format, args...))
}

// Info prints an info message
func (c *Console) Info(format string, args ...interface{}) {
	Info.Fprintf(c.Out, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}

// Notice prints a progress notice
func (c *Console) Notice(format string, args ...interface{}) {
	Notice.Fprintf(c.Out, "%s\n", fmt.Sprintf(format, args...))
}

// Plain prints an unstyled line
func (c *Console) Plain(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

// KeyValue prints a key-value pair with color
func (c *Console) KeyValue(key, value string) {
	Bold.Fprintf(c.Out, "%s: ", key)
	fmt.Fprintln(c.Out, value)
}

// Header prints a section header
func (c *Console) Header(text string) {
	fmt.Fprintln(c.Out)
	Bold.Fprintln(c.Out, text)
	Muted.Fprintln(c.Out, "────────────────────────────────────────")
}

// List prints a bulleted list
func (c *Console) List(items []string) {
	for _, item := range items {
		fmt.Fprintf(c.Out, "  %s %s\n", Bullet, item)
	}
}

// Choices prints a highlighted title followed by a numbered list, both on Out
func (c *Console) Choices(title string, items []string) {
	Warning.Fprintln(c.Out, title)
	c.NumberedList(items)
}

// NumberedList prints a 1-based numbered list
func (c *Console) NumberedList(items []string) {
	for i, item := range items {
		Bold.Fprintf(c.Out, "%d. ", i+1)
		fmt.Fprintln(c.Out, item)
	}
}

// DisableColors disables all color output
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output
func EnableColors() {
	color.NoColor = false
}

// AreColorsEnabled returns whether colors are currently enabled
func AreColorsEnabled() bool {
	return !color.NoColor
}
