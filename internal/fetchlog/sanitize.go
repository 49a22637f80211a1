package fetchlog

import (
	"net/url"
	"strings"
)

const redacted = "<redacted>"

var sensitiveParams = map[string]struct{}{
	"key":        {},
	"token":      {},
	"access_key": {},
	"apikey":     {},
	"api_key":    {},
	"secret":     {},
}

// SanitizeURL redacts credentials embedded in an endpoint URL before it is
// stored. Unparseable input is returned unchanged.
func SanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
	}

	if u.RawQuery != "" {
		q := u.Query()
		changed := false
		for name := range q {
			if _, ok := sensitiveParams[strings.ToLower(name)]; ok {
				q.Set(name, redacted)
				changed = true
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}

	return u.String()
}
