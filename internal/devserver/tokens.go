package devserver

import (
	"encoding/json"
	"fmt"
	"os"

	"nathanbeddoewebdev/tint/internal/token/decode"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/util"
)

// tokenRecord is the wire form of a design token record.
type tokenRecord struct {
	LightPrimary   string `json:"light_primary"`
	LightOnPrimary string `json:"light_on_primary"`
	DarkPrimary    string `json:"dark_primary"`
	DarkOnPrimary  string `json:"dark_on_primary"`
}

func encodeRecord(r domain.Record) tokenRecord {
	return tokenRecord{
		LightPrimary:   r.LightPrimary.String(),
		LightOnPrimary: r.LightOnPrimary.String(),
		DarkPrimary:    r.DarkPrimary.String(),
		DarkOnPrimary:  r.DarkOnPrimary.String(),
	}
}

// DefaultTokens returns the records served when no token file is given.
func DefaultTokens() map[string]domain.Record {
	return map[string]domain.Record{
		"classic": {
			LightPrimary:   0xFF00639B,
			LightOnPrimary: 0xFFFFFFFF,
			DarkPrimary:    0xFF00416D,
			DarkOnPrimary:  0xFF3D85C6,
		},
		"hawaiian": {
			LightPrimary:   0xFF006A60,
			LightOnPrimary: 0xFFFFFFFF,
			DarkPrimary:    0xFF53DBC9,
			DarkOnPrimary:  0xFF003731,
		},
	}
}

// LoadTokens reads a JSON object mapping variant names to token records:
//
//	{"classic": {"light_primary": "FF00639B", ...}}
func LoadTokens(path string) (map[string]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devserver: failed to read %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("devserver: failed to parse %s: %w", path, err)
	}

	tokens := make(map[string]domain.Record, len(raw))
	for name, body := range raw {
		key := util.NormalizeKey(name)
		if err := util.ValidateVariantName(key); err != nil {
			return nil, fmt.Errorf("devserver: %w", err)
		}
		// Reuse the client decoder so the server never serves a token the
		// client would reject.
		rec, err := decode.Decode(fmt.Appendf(nil, `{"record":%s}`, body))
		if err != nil {
			return nil, fmt.Errorf("devserver: variant %q: %w", key, err)
		}
		tokens[key] = rec
	}
	return tokens, nil
}
