// Package classify maps token-source transport failures onto the closed
// domain.Kind taxonomy.
package classify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nathanbeddoewebdev/tint/internal/token/domain"
)

// User-facing messages for the fixed failure categories.
const (
	MsgConnection = "Connection Error"
	MsgNoInternet = "No Internet Access"
	MsgServer     = "Internal Error"
	MsgAuth       = "Authentication Error"
	MsgBadRequest = "Bad Request"
)

// Classify returns the Failure describing f. A 401 response is not
// recoverable: Classify returns an error wrapping domain.ErrAuthRequired and a
// zero Failure, which callers must propagate instead of reporting.
func Classify(f domain.TransportFailure) (domain.Failure, error) {
	switch f := f.(type) {
	case domain.TimeoutFailure:
		return domain.Failure{Kind: domain.KindConnection, Message: MsgConnection}, nil

	case domain.DNSFailure, domain.RefusedFailure:
		return domain.Failure{Kind: domain.KindNoInternet, Message: MsgNoInternet}, nil

	case domain.StatusFailure:
		return classifyStatus(f)

	case nil:
		return domain.Failure{Kind: domain.KindUnknown, Message: "unknown error"}, nil

	default:
		return domain.Failure{Kind: domain.KindUnknown, Message: f.Error()}, nil
	}
}

func classifyStatus(f domain.StatusFailure) (domain.Failure, error) {
	switch f.StatusCode {
	case http.StatusBadGateway:
		return domain.Failure{Kind: domain.KindServer, StatusCode: f.StatusCode, Message: MsgServer}, nil
	case http.StatusUnauthorized:
		return domain.Failure{}, fmt.Errorf("%w: %s", domain.ErrAuthRequired, MsgAuth)
	case http.StatusBadRequest:
		return domain.Failure{Kind: domain.KindClient, StatusCode: f.StatusCode, Message: bodyMessage(f.Body)}, nil
	}
	return domain.Failure{Kind: domain.KindUnknown, StatusCode: f.StatusCode, Message: f.Error()}, nil
}

// errorBody covers the common shapes of JSON error bodies: jsonbin uses
// "message", many other services use "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func bodyMessage(body []byte) string {
	var eb errorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return MsgBadRequest
	}
	if msg := strings.TrimSpace(eb.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(eb.Error); msg != "" {
		return msg
	}
	return MsgBadRequest
}
