// Package domain defines the types shared by every stage of the design-token
// pipeline: the decoded token record, the fetch outcome union, the error
// taxonomy and the transport failures a token source may report.
package domain

import (
	"context"
	"fmt"
)

// Color is a 32-bit ARGB color value (0xAARRGGBB).
type Color uint32

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return uint8(c) }

// String formats the color the way token documents carry it: 8 uppercase hex
// digits, alpha first.
func (c Color) String() string {
	return fmt.Sprintf("%08X", uint32(c))
}

// Record is a decoded design token. A Record is only ever constructed with all
// four colors present and valid.
type Record struct {
	LightPrimary   Color
	LightOnPrimary Color
	DarkPrimary    Color
	DarkOnPrimary  Color
}

// Source performs a single read of the raw token document.
//
// Implementations must not retry and must report every failure as a
// TransportFailure so the classifier can handle it exhaustively.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}
