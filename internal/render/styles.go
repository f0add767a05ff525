package render

import (
	"fmt"
	"math"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorMuted   = lipgloss.Color("#6C7A80")
	colorError   = lipgloss.Color("#E74C3C")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorStar    = lipgloss.Color("#F4D03F")
	colorLike    = lipgloss.Color("#E0457B")
)

type styles struct {
	Header    lipgloss.Style
	Post      lipgloss.Style
	Name      lipgloss.Style
	Muted     lipgloss.Style
	Star      lipgloss.Style
	Liked     lipgloss.Style
	Follow    lipgloss.Style
	Following lipgloss.Style
	Reply     lipgloss.Style
	ErrorBox  lipgloss.Style
	Notice    map[string]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Header: r.NewStyle().Bold(true).Foreground(colorAccent),
		Post: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		Name:      r.NewStyle().Bold(true),
		Muted:     r.NewStyle().Foreground(colorMuted),
		Star:      r.NewStyle().Foreground(colorStar),
		Liked:     r.NewStyle().Foreground(colorLike),
		Follow:    r.NewStyle().Foreground(colorAccent),
		Following: r.NewStyle().Foreground(colorSuccess),
		Reply:     r.NewStyle().PaddingLeft(4),
		ErrorBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Foreground(colorError).
			Padding(0, 1),
		Notice: map[string]lipgloss.Style{
			"error":     r.NewStyle().Foreground(colorError),
			"milestone": r.NewStyle().Foreground(colorStar).Bold(true),
			"info":      r.NewStyle().Foreground(colorSuccess),
		},
	}
}

// avatarStyle paints initials on the author's avatar color.
func avatarStyle(r *lipgloss.Renderer, name string) lipgloss.Style {
	hex := hslToHex(feed.AvatarHue(name), feed.AvatarSaturation, feed.AvatarLightness)
	return r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(hex)).
		Padding(0, 1)
}

// hslToHex converts a hue in degrees and saturation/lightness percentages to
// an #rrggbb string.
func hslToHex(hue int, saturation int, lightness int) string {
	s := float64(saturation) / 100
	l := float64(lightness) / 100
	c := (1 - math.Abs(2*l-1)) * s
	hp := float64(hue%360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	channel := func(v float64) int {
		return int(math.Round((v + m) * 255))
	}
	return fmt.Sprintf("#%02X%02X%02X", channel(r), channel(g), channel(b))
}
