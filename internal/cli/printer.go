package cli

import (
	"bufio"
	"io"

	"github.com/bastiangx/anagram/pkg/search"
	"github.com/charmbracelet/lipgloss"
)

var fullStyle = lipgloss.NewStyle().Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})

// Printer writes search results as lines, stopping after limit lines
// when limit is positive.
type Printer struct {
	w           *bufio.Writer
	showPartial bool
	color       bool
	limit       int
	count       int
	full        int
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, showPartial bool, limit int) *Printer {
	return &Printer{
		w:           bufio.NewWriter(w),
		showPartial: showPartial,
		limit:       limit,
	}
}

// WithColor highlights full anagrams when partial results are shown.
func (p *Printer) WithColor(color bool) *Printer {
	p.color = color
	return p
}

// Print writes one result. It returns false once the limit is reached.
func (p *Printer) Print(r search.Result) bool {
	if p.limit > 0 && p.count >= p.limit {
		return false
	}
	line := r.Line(p.showPartial)
	if p.color && p.showPartial && r.Full {
		line = fullStyle.Render(line)
	}
	p.w.WriteString(line)
	p.w.WriteByte('\n')
	p.count++
	if r.Full {
		p.full++
	}
	return true
}

// Count is the number of lines written.
func (p *Printer) Count() int {
	return p.count
}

// FullCount is the number of full anagrams written.
func (p *Printer) FullCount() int {
	return p.full
}

// Flush writes buffered lines to the underlying writer.
func (p *Printer) Flush() error {
	return p.w.Flush()
}
