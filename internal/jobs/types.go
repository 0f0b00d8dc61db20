// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/ManuGH/epgrab/internal/channels"
	"github.com/ManuGH/epgrab/internal/epg"
	"github.com/ManuGH/epgrab/internal/upstream"
	"github.com/ManuGH/epgrab/internal/window"
)

// ErrNoData is returned by Run when no programme survived and therefore no
// document was written.
var ErrNoData = errors.New("no programme data produced")

// Fetcher retrieves the raw listing of one (channel, date) pair.
type Fetcher interface {
	Fetch(ctx context.Context, ch channels.Channel, day window.Date) (*upstream.Listing, error)
}

// AggregateOptions controls normalization during aggregation.
type AggregateOptions struct {
	// Zone is the service zone upstream timestamps are read in.
	Zone *time.Location
}

// PairOutcome is the result of one (channel, date) pair. Err is set when
// the pair contributed nothing; Dropped lists items rejected individually.
type PairOutcome struct {
	Channel    channels.Channel
	Date       window.Date
	Programmes epg.Schedule
	Dropped    []*epg.NormalizeError
	Err        error
}

// OK reports whether the pair was fetched successfully.
func (o PairOutcome) OK() bool { return o.Err == nil }

// Stats summarises one aggregation sweep.
type Stats struct {
	PairsOK      int
	PairsFailed  int
	Programmes   int
	ItemsDropped int
	Suspect      int
	// Failures counts failed pairs by upstream reason.
	Failures map[upstream.Reason]int
	// Canceled is set when the sweep stopped early.
	Canceled bool
}

// Status is the summary of one Run.
type Status struct {
	RunID        string        `json:"run_id"`
	Written      bool          `json:"written"`
	Path         string        `json:"path,omitempty"`
	Channels     int           `json:"channels"`
	Programmes   int           `json:"programmes"`
	PairsOK      int           `json:"pairs_ok"`
	PairsFailed  int           `json:"pairs_failed"`
	ItemsDropped int           `json:"items_dropped"`
	Duration     time.Duration `json:"duration"`
}
