// SPDX-License-Identifier: MIT

package upstream

import "encoding/json"

// RawProgramme is one programme item as delivered by the upstream API.
// Fields are kept textual; interpretation belongs to the normalizer.
type RawProgramme struct {
	Name      string `json:"program_name"`
	Desc      string `json:"program_desc,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ItemError is one element of the data array that could not be decoded as
// a RawProgramme. Its siblings are unaffected.
type ItemError struct {
	Index int
	Raw   json.RawMessage
	Err   error
}

// Listing is the decoded upstream payload for one (channel, date) pair.
// Rejected holds elements whose shape did not match RawProgramme.
type Listing struct {
	ChannelID   string
	Date        string
	ContentType string
	Items       []RawProgramme
	Rejected    []ItemError
}

// listingResponse is the top-level envelope of /api/tv/program.
// Data stays raw and is decoded element by element, so drift in one item
// only rejects that item.
type listingResponse struct {
	Data json.RawMessage `json:"data"`
}
