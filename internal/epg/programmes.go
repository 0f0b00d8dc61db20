// SPDX-License-Identifier: MIT

package epg

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	unorm "golang.org/x/text/unicode/norm"

	"github.com/ManuGH/epgrab/internal/upstream"
)

const (
	// upstreamLayout is the textual timestamp format of the listing API,
	// local to the service's zone.
	upstreamLayout = "2006-01-02 15:04:05"
	// xmltvLayout is the XMLTV wire timestamp: YYYYMMDDHHMMSS ±HHMM.
	xmltvLayout = "20060102150405 -0700"

	// DefaultUTCOffset is the service zone of the reference deployment.
	DefaultUTCOffset = "+0800"
)

// NormalizeReason classifies why an upstream item was dropped.
type NormalizeReason string

const (
	ReasonBadTimestamp NormalizeReason = "bad_timestamp"
	ReasonMissingTitle NormalizeReason = "missing_title"
	ReasonBadItem      NormalizeReason = "bad_item"
)

var (
	ErrBadTimestamp = errors.New("epg: timestamp does not match upstream format")
	ErrMissingTitle = errors.New("epg: programme has no title")
	ErrBadItem      = errors.New("epg: item does not match upstream schema")
)

// maxRawValue bounds the raw item text kept in a NormalizeError.
const maxRawValue = 120

// NormalizeError describes one dropped upstream item.
type NormalizeError struct {
	Reason NormalizeReason
	Field  string // upstream field name
	Value  string
	Err    error
}

func (e *NormalizeError) Error() string {
	msg := fmt.Sprintf("epg: normalize %s: %s %q", e.Reason, e.Field, e.Value)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *NormalizeError) Is(target error) bool {
	switch e.Reason {
	case ReasonBadTimestamp:
		return target == ErrBadTimestamp
	case ReasonMissingTitle:
		return target == ErrMissingTitle
	case ReasonBadItem:
		return target == ErrBadItem
	}
	return false
}

func (e *NormalizeError) Unwrap() error { return e.Err }

// ProgrammeRecord is the canonical programme. Start and Stop are XMLTV wire
// timestamps carrying the service offset.
type ProgrammeRecord struct {
	ChannelID string
	Title     string
	Desc      string
	Start     string
	Stop      string
	// Suspect is set when stop is not after start. Such records are kept.
	Suspect bool
}

// Schedule is the ordered programme sequence of one run.
type Schedule []ProgrammeRecord

// RejectItem wraps an upstream element that could not be decoded at all.
func RejectItem(rej upstream.ItemError) *NormalizeError {
	value := []rune(string(rej.Raw))
	if len(value) > maxRawValue {
		value = append(value[:maxRawValue], '…')
	}
	return &NormalizeError{
		Reason: ReasonBadItem,
		Field:  fmt.Sprintf("data[%d]", rej.Index),
		Value:  string(value),
		Err:    rej.Err,
	}
}

// NormalizeItem maps one upstream item of channelID to a ProgrammeRecord.
// Upstream timestamps are interpreted in zone.
func NormalizeItem(item upstream.RawProgramme, channelID string, zone *time.Location) (ProgrammeRecord, error) {
	if zone == nil {
		zone = mustOffsetZone(DefaultUTCOffset)
	}

	title := cleanText(item.Name)
	if title == "" {
		return ProgrammeRecord{}, &NormalizeError{Reason: ReasonMissingTitle, Field: "program_name", Value: item.Name}
	}

	start, err := parseUpstreamTime(item.StartTime, zone)
	if err != nil {
		return ProgrammeRecord{}, &NormalizeError{Reason: ReasonBadTimestamp, Field: "start_time", Value: item.StartTime, Err: err}
	}
	stop, err := parseUpstreamTime(item.EndTime, zone)
	if err != nil {
		return ProgrammeRecord{}, &NormalizeError{Reason: ReasonBadTimestamp, Field: "end_time", Value: item.EndTime, Err: err}
	}

	return ProgrammeRecord{
		ChannelID: channelID,
		Title:     title,
		Desc:      cleanText(item.Desc),
		Start:     formatXMLTVTime(start),
		Stop:      formatXMLTVTime(stop),
		Suspect:   !stop.After(start),
	}, nil
}

func parseUpstreamTime(s string, zone *time.Location) (time.Time, error) {
	return time.ParseInLocation(upstreamLayout, strings.TrimSpace(s), zone)
}

// formatXMLTVTime formats time in XMLTV format: YYYYMMDDHHMMSS +ZZZZ
func formatXMLTVTime(t time.Time) string {
	return t.Format(xmltvLayout)
}

// cleanText trims and NFC-normalizes upstream text.
func cleanText(s string) string {
	return strings.TrimSpace(unorm.NFC.String(s))
}

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// ParseOffset converts a fixed UTC offset such as "+0800" or "-05:30" into a
// location whose Format renders the same offset.
func ParseOffset(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "Z" || s == "UTC" {
		return time.UTC, nil
	}
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid UTC offset %q (want ±HHMM)", s)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("UTC offset %q out of range", s)
	}
	secs := hours*3600 + minutes*60
	if m[1] == "-" {
		secs = -secs
	}
	return time.FixedZone(m[1]+m[2]+m[3], secs), nil
}

func mustOffsetZone(s string) *time.Location {
	loc, err := ParseOffset(s)
	if err != nil {
		panic(err)
	}
	return loc
}
