// Package terminal renders earthquake lists for a terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

const (
	magnitudeWidth = 7
	depthWidth     = 10
	minPlaceWidth  = 12
)

// Renderer formats earthquakes as coloured rows. Colour is dropped
// automatically when the writer is not a terminal.
type Renderer struct {
	width  int
	loc    *time.Location
	styles styles
}

// NewRenderer creates a Renderer for output written to w. Width is the total
// line width in cells; zero or less selects DefaultWidth. A nil location
// formats times in UTC.
func NewRenderer(w io.Writer, width int, loc *time.Location) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{
		width:  width,
		loc:    loc,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// Header summarizes the active filters and how many records they keep.
func (r *Renderer) Header(prefs domain.Preferences, shown, total int) string {
	title := r.styles.header.Render(fmt.Sprintf("Earthquakes: %d of %d", shown, total))
	filters := fmt.Sprintf("magnitude %.1f to %.1f", prefs.MagnitudeMin, prefs.MagnitudeMax)
	if prefs.LocationText != "" {
		filters += fmt.Sprintf(" | location %q", prefs.LocationText)
	}
	return title + "\n" + r.styles.dim.Render(filters)
}

// Row renders one earthquake: magnitude, time, depth and place.
func (r *Renderer) Row(q domain.Earthquake) string {
	band := domain.BandFor(q.Magnitude)
	mag := r.styles.magnitude[band].Render(fmt.Sprintf("M %.1f", q.Magnitude))
	when := r.styles.date.Render(domain.FormatTimeIn(q.Time, r.loc))
	depth := r.styles.dim.Render(fmt.Sprintf("%*s", depthWidth, fmt.Sprintf("%.1f km", q.Depth)))

	fixed := lipgloss.Width(mag) + lipgloss.Width(when) + lipgloss.Width(depth) + 3
	placeWidth := max(r.width-fixed, minPlaceWidth)
	place := lipgloss.NewStyle().MaxWidth(placeWidth).Render(q.Place)

	return strings.Join([]string{mag, when, depth, place}, " ")
}

// List renders every row, or a notice when nothing matches.
func (r *Renderer) List(quakes []domain.Earthquake) string {
	if len(quakes) == 0 {
		return r.styles.dim.Render("No earthquakes match the current filters.")
	}
	rows := make([]string, len(quakes))
	for i, q := range quakes {
		rows[i] = r.Row(q)
	}
	return strings.Join(rows, "\n")
}

// Error renders a failure message.
func (r *Renderer) Error(msg string) string {
	return r.styles.err.Render(msg)
}
