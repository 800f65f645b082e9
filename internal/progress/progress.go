// Package progress renders single-line percentage meters for long-running
// phases. It knows nothing about training; callers feed it completion counts
// through the same callback shape the rest of the codebase uses.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const barWidth = 40

// Meter draws one phase of work as a bar plus a percentage. Redraws happen
// only when the integer percentage moves, so feeding it per-line updates
// from a large corpus stays cheap.
type Meter struct {
	w       io.Writer
	label   string
	total   int64
	lastPct int
	painter *color.Color
}

// New creates a meter for a phase with a known total. A zero or negative
// total renders as an immediately complete bar on the first update. When
// colored is false the bar is plain text.
func New(w io.Writer, label string, total int64, colored bool) *Meter {
	m := &Meter{
		w:       w,
		label:   label,
		total:   total,
		lastPct: -1,
	}
	if colored {
		m.painter = color.New(color.FgGreen)
	}
	return m
}

// Update redraws the meter for the given completion count.
func (m *Meter) Update(done int64) {
	pct := 100
	if m.total > 0 {
		pct = int(done * 100 / m.total)
		if pct > 100 {
			pct = 100
		}
	}
	if pct == m.lastPct {
		return
	}
	m.lastPct = pct

	filled := barWidth * pct / 100
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	if m.painter != nil {
		bar = m.painter.Sprint(bar)
	}
	fmt.Fprintf(m.w, "\r%s [%s] %3d%%", m.label, bar, pct)
}

// Finish completes the bar and terminates the line. Safe to call even if no
// update was ever reported.
func (m *Meter) Finish() {
	if m.lastPct != 100 {
		m.Update(m.total)
	}
	fmt.Fprintln(m.w)
}
