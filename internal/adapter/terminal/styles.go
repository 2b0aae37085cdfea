package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
)

// Band colours match the RGB components of the map marker colours.
var bandColors = map[domain.Band]lipgloss.Color{
	domain.BandLow:      lipgloss.Color("#4CAF50"),
	domain.BandModerate: lipgloss.Color("#FFEB3B"),
	domain.BandHigh:     lipgloss.Color("#FF9800"),
	domain.BandHighest:  lipgloss.Color("#F44336"),
}

var (
	headerColor = lipgloss.Color("#0969DA")
	dimColor    = lipgloss.Color("#6E7681")
	errorColor  = lipgloss.Color("#CF222E")
	dateColor   = lipgloss.Color("#A371F7")
)

type styles struct {
	header    lipgloss.Style
	dim       lipgloss.Style
	err       lipgloss.Style
	date      lipgloss.Style
	magnitude map[domain.Band]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	s := styles{
		header: r.NewStyle().
			Foreground(headerColor).
			Bold(true),
		dim: r.NewStyle().
			Foreground(dimColor),
		err: r.NewStyle().
			Foreground(errorColor).
			Bold(true),
		date: r.NewStyle().
			Foreground(dateColor),
		magnitude: make(map[domain.Band]lipgloss.Style, len(bandColors)),
	}
	for band, c := range bandColors {
		s.magnitude[band] = r.NewStyle().
			Foreground(c).
			Bold(true).
			Width(magnitudeWidth)
	}
	return s
}
