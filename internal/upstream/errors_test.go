// SPDX-License-Identifier: MIT

package upstream

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorSentinels(t *testing.T) {
	cases := []struct {
		reason   Reason
		sentinel error
	}{
		{ReasonInvalidRequest, ErrInvalidRequest},
		{ReasonNetwork, ErrNetwork},
		{ReasonHTTPStatus, ErrHTTPStatus},
		{ReasonUnexpectedContentType, ErrUnexpectedContentType},
		{ReasonDecode, ErrDecode},
		{ReasonEmpty, ErrEmpty},
	}

	for _, tc := range cases {
		t.Run(string(tc.reason), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &FetchError{Reason: tc.reason, Channel: "1001", Date: "2024-05-01"})
			assert.True(t, errors.Is(err, tc.sentinel))
			assert.Equal(t, tc.reason, ReasonOf(err))
		})
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{
		Reason:  ReasonHTTPStatus,
		Channel: "1001",
		Date:    "2024-05-01",
		Status:  500,
	}
	assert.Equal(t, "upstream: fetch 1001@2024-05-01: http_status (HTTP 500)", err.Error())

	nested := errors.New("connection refused")
	err = &FetchError{Reason: ReasonNetwork, Channel: "1002", Date: "2024-05-02", Err: nested}
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, nested)
}

func TestReasonOfNonFetchError(t *testing.T) {
	assert.Equal(t, Reason(""), ReasonOf(errors.New("boom")))
	assert.Equal(t, Reason(""), ReasonOf(nil))
}
