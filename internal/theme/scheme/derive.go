package scheme

import "nathanbeddoewebdev/tint/internal/token/domain"

// Built-in fallback palette, used whenever no token is available.
const (
	Purple40     domain.Color = 0xFF6650A4
	PurpleGrey40 domain.Color = 0xFF625B71
	Pink40       domain.Color = 0xFF7D5260

	Purple80     domain.Color = 0xFFD0BCFF
	PurpleGrey80 domain.Color = 0xFFCCC2DC
	Pink80       domain.Color = 0xFFEFB8C8
)

// DefaultLight returns the built-in light scheme.
func DefaultLight() Scheme {
	return Scheme{
		Primary:      Purple40,
		OnPrimary:    0xFFFFFFFF,
		Secondary:    PurpleGrey40,
		OnSecondary:  0xFFFFFFFF,
		Tertiary:     Pink40,
		OnTertiary:   0xFFFFFFFF,
		Background:   0xFFFFFBFE,
		OnBackground: 0xFF1C1B1F,
		Surface:      0xFFFFFBFE,
		OnSurface:    0xFF1C1B1F,
		Error:        0xFFB3261E,
		OnError:      0xFFFFFFFF,
	}
}

// DefaultDark returns the built-in dark scheme.
func DefaultDark() Scheme {
	return Scheme{
		Primary:      Purple80,
		OnPrimary:    0xFF381E72,
		Secondary:    PurpleGrey80,
		OnSecondary:  0xFF332D41,
		Tertiary:     Pink80,
		OnTertiary:   0xFF492532,
		Background:   0xFF1C1B1F,
		OnBackground: 0xFFE6E1E5,
		Surface:      0xFF1C1B1F,
		OnSurface:    0xFFE6E1E5,
		Error:        0xFFF2B8B5,
		OnError:      0xFF601410,
	}
}

// Defaults returns the built-in light and dark schemes.
func Defaults() Pair {
	return Pair{Light: DefaultLight(), Dark: DefaultDark()}
}

// Derive computes the scheme pair for o. Data overrides the primary roles of
// the defaults; every other outcome, nil included, yields Defaults. Derive
// keeps no memory of earlier tokens, so a failure after a success falls back
// to the defaults rather than the stale token.
func Derive(o domain.Outcome) Pair {
	data, ok := o.(domain.Data)
	if !ok {
		return Defaults()
	}

	p := Defaults()
	p.Light.Primary = data.Record.LightPrimary
	p.Light.OnPrimary = data.Record.LightOnPrimary
	p.Dark.Primary = data.Record.DarkPrimary
	p.Dark.OnPrimary = data.Record.DarkOnPrimary
	return p
}
