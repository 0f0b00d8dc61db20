// SPDX-License-Identifier: MIT

package upstream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockResponse is a canned reply for one (alias, date) pair.
type MockResponse struct {
	Status      int            // defaults to 200
	ContentType string         // defaults to application/json
	Items       []RawProgramme // encoded as {"data": Items} when Body is empty
	Body        string         // raw body, overrides Items
}

// MockRequest is a request observed by the MockServer.
type MockRequest struct {
	Alias  string
	Date   string
	Header http.Header
}

// MockServer provides a configurable listing API for testing.
// Unconfigured pairs answer with FallbackStatus.
type MockServer struct {
	*httptest.Server
	mu        sync.RWMutex
	responses map[string]MockResponse
	requests  []MockRequest
	fallback  int
}

// NewMockServer starts a mock listing API. Unconfigured pairs return 500.
func NewMockServer() *MockServer {
	m := &MockServer{
		responses: make(map[string]MockResponse),
		fallback:  http.StatusInternalServerError,
	}
	mux := http.NewServeMux()
	mux.HandleFunc(listingPath, m.handleListing)
	m.Server = httptest.NewServer(mux)
	return m
}

func pairKey(alias, date string) string { return alias + "|" + date }

// SetListing answers the pair with a JSON listing of items.
func (m *MockServer) SetListing(alias, date string, items ...RawProgramme) {
	m.SetResponse(alias, date, MockResponse{Items: items})
}

// SetResponse installs a canned reply for the pair.
func (m *MockServer) SetResponse(alias, date string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[pairKey(alias, date)] = resp
}

// SetFallbackStatus changes the status returned for unconfigured pairs.
func (m *MockServer) SetFallbackStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = status
}

// Requests returns the requests seen so far, in arrival order.
func (m *MockServer) Requests() []MockRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MockRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockServer) handleListing(w http.ResponseWriter, r *http.Request) {
	alias := r.URL.Query().Get("channel")
	date := r.URL.Query().Get("date")

	m.mu.Lock()
	m.requests = append(m.requests, MockRequest{Alias: alias, Date: date, Header: r.Header.Clone()})
	resp, ok := m.responses[pairKey(alias, date)]
	fallback := m.fallback
	m.mu.Unlock()

	if !ok {
		http.Error(w, "no listing", fallback)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": resp.Items})
}

// URL returns the mock server's base URL.
func (m *MockServer) URL() string {
	return m.Server.URL
}
