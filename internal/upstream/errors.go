// SPDX-License-Identifier: MIT

package upstream

import (
	"errors"
	"fmt"
)

// Reason classifies why a (channel, date) listing could not be obtained.
type Reason string

const (
	ReasonInvalidRequest        Reason = "invalid_request"
	ReasonNetwork               Reason = "network"
	ReasonHTTPStatus            Reason = "http_status"
	ReasonUnexpectedContentType Reason = "unexpected_content_type"
	ReasonDecode                Reason = "decode"
	ReasonEmpty                 Reason = "empty"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrInvalidRequest        = errors.New("upstream: request could not be built")
	ErrNetwork               = errors.New("upstream: host unreachable, transport failure or timeout")
	ErrHTTPStatus            = errors.New("upstream: non-2xx response")
	ErrUnexpectedContentType = errors.New("upstream: response is not JSON")
	ErrDecode                = errors.New("upstream: malformed JSON payload")
	ErrEmpty                 = errors.New("upstream: payload carries no listing data")
)

func (r Reason) sentinel() error {
	switch r {
	case ReasonInvalidRequest:
		return ErrInvalidRequest
	case ReasonNetwork:
		return ErrNetwork
	case ReasonHTTPStatus:
		return ErrHTTPStatus
	case ReasonUnexpectedContentType:
		return ErrUnexpectedContentType
	case ReasonDecode:
		return ErrDecode
	default:
		return ErrEmpty
	}
}

// FetchError describes a failed listing fetch for one (channel, date) pair.
type FetchError struct {
	Reason      Reason
	Channel     string
	Date        string
	Status      int    // HTTP status, when a response was received
	ContentType string // response content type, when relevant
	Err         error  // nested lower-level error (e.g. net.Error)
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("upstream: fetch %s@%s: %s", e.Channel, e.Date, e.Reason)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.ContentType != "" {
		msg = fmt.Sprintf("%s (content-type %q)", msg, e.ContentType)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the sentinel belonging to the failure reason.
func (e *FetchError) Is(target error) bool {
	return target == e.Reason.sentinel()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the failure reason of err, or "" when err is not a FetchError.
func ReasonOf(err error) Reason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}
