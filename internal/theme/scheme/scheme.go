// Package scheme derives light and dark color schemes from design-token fetch
// outcomes.
//
// Only the primary and on-primary roles are ever sourced from a token. Every
// other role keeps its built-in default.
package scheme

import (
	"nathanbeddoewebdev/tint/internal/token/domain"

	"github.com/lucasb-eyer/go-colorful"
)

// Scheme assigns a color to each role for one appearance mode.
type Scheme struct {
	Primary      domain.Color
	OnPrimary    domain.Color
	Secondary    domain.Color
	OnSecondary  domain.Color
	Tertiary     domain.Color
	OnTertiary   domain.Color
	Background   domain.Color
	OnBackground domain.Color
	Surface      domain.Color
	OnSurface    domain.Color
	Error        domain.Color
	OnError      domain.Color
}

// Pair is the unit the theme store holds: one scheme per appearance mode.
type Pair struct {
	Light Scheme
	Dark  Scheme
}

// Select returns the dark scheme when dark is true, else the light one.
func (p Pair) Select(dark bool) Scheme {
	if dark {
		return p.Dark
	}
	return p.Light
}

// Role is a named entry of a Scheme, in display order.
type Role struct {
	Name  string
	Color domain.Color
}

// Roles lists every role of s.
func (s Scheme) Roles() []Role {
	return []Role{
		{"primary", s.Primary},
		{"on-primary", s.OnPrimary},
		{"secondary", s.Secondary},
		{"on-secondary", s.OnSecondary},
		{"tertiary", s.Tertiary},
		{"on-tertiary", s.OnTertiary},
		{"background", s.Background},
		{"on-background", s.OnBackground},
		{"surface", s.Surface},
		{"on-surface", s.OnSurface},
		{"error", s.Error},
		{"on-error", s.OnError},
	}
}

// TerminalHex renders c as an opaque "#rrggbb" string suitable for a terminal,
// compositing its alpha channel over the scheme's background. A translucent
// background is itself composited over black first.
func (s Scheme) TerminalHex(c domain.Color) string {
	backdrop := composite(s.Background, colorful.Color{})
	return composite(c, backdrop).Hex()
}

func composite(c domain.Color, backdrop colorful.Color) colorful.Color {
	alpha := float64(c.Alpha()) / 255
	return backdrop.BlendRgb(rgb(c), alpha).Clamped()
}

func rgb(c domain.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.Red()) / 255,
		G: float64(c.Green()) / 255,
		B: float64(c.Blue()) / 255,
	}
}
