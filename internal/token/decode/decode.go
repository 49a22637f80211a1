// Package decode validates raw token documents and converts them into
// domain.Record values.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/tint/internal/token/domain"
)

// ErrMissing is wrapped by Error when a required section or field is absent.
var ErrMissing = errors.New("missing")

// Error describes why a document could not be decoded. Field is empty when the
// document as a whole is malformed.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode token: %v", e.Err)
	}
	return fmt.Sprintf("decode token: %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// document mirrors the endpoint payload. Pointers distinguish absent fields
// from empty ones; id and metadata are intentionally not decoded.
type document struct {
	Record *struct {
		LightPrimary   *string `json:"light_primary"`
		LightOnPrimary *string `json:"light_on_primary"`
		DarkPrimary    *string `json:"dark_primary"`
		DarkOnPrimary  *string `json:"dark_on_primary"`
	} `json:"record"`
}

// Decode parses raw into a Record. It returns a *Error unless every one of
// the four colors is present and parses as base-16.
func Decode(raw []byte) (domain.Record, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Record{}, &Error{Err: err}
	}
	if doc.Record == nil {
		return domain.Record{}, &Error{Field: "record", Err: ErrMissing}
	}

	var rec domain.Record
	fields := []struct {
		name string
		raw  *string
		dst  *domain.Color
	}{
		{"light_primary", doc.Record.LightPrimary, &rec.LightPrimary},
		{"light_on_primary", doc.Record.LightOnPrimary, &rec.LightOnPrimary},
		{"dark_primary", doc.Record.DarkPrimary, &rec.DarkPrimary},
		{"dark_on_primary", doc.Record.DarkOnPrimary, &rec.DarkOnPrimary},
	}

	for _, f := range fields {
		if f.raw == nil {
			return domain.Record{}, &Error{Field: "record." + f.name, Err: ErrMissing}
		}
		c, err := ParseColor(*f.raw)
		if err != nil {
			return domain.Record{}, &Error{Field: "record." + f.name, Err: err}
		}
		*f.dst = c
	}

	return rec, nil
}

// ParseColor parses a base-16 ARGB value such as "FF00639B". Values with
// fewer than eight digits are taken literally, so "00639B" has zero alpha.
func ParseColor(s string) (domain.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty color value")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return domain.Color(v), nil
}
