package report

import (
	"github.com/charmbracelet/glamour"
)

// TerminalRenderer turns report Markdown into styled terminal text
type TerminalRenderer struct {
	renderer *glamour.TermRenderer
}

// NewTerminalRenderer creates a renderer wrapping at width columns. An empty
// style picks one from the terminal background; "notty" disables styling.
func NewTerminalRenderer(width int, style string) (*TerminalRenderer, error) {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &TerminalRenderer{renderer: r}, nil
}

// Render styles raw Markdown
func (t *TerminalRenderer) Render(markdown string) (string, error) {
	return t.renderer.Render(markdown)
}
