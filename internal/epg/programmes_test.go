// SPDX-License-Identifier: MIT

package epg

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/epgrab/internal/upstream"
)

func macau(t *testing.T) *time.Location {
	t.Helper()
	loc, err := ParseOffset("+0800")
	require.NoError(t, err)
	return loc
}

func TestNormalizeItem(t *testing.T) {
	item := upstream.RawProgramme{
		Name:      "News",
		Desc:      "Evening news",
		StartTime: "2024-05-01 20:00:00",
		EndTime:   "2024-05-01 21:30:00",
	}

	rec, err := NormalizeItem(item, "1001", macau(t))
	require.NoError(t, err)
	assert.Equal(t, ProgrammeRecord{
		ChannelID: "1001",
		Title:     "News",
		Desc:      "Evening news",
		Start:     "20240501200000 +0800",
		Stop:      "20240501213000 +0800",
	}, rec)
}

func TestNormalizeItemNilZoneUsesDefaultOffset(t *testing.T) {
	item := upstream.RawProgramme{Name: "News", StartTime: "2024-05-01 20:00:00", EndTime: "2024-05-01 21:30:00"}

	rec, err := NormalizeItem(item, "1001", nil)
	require.NoError(t, err)
	assert.Equal(t, "20240501200000 +0800", rec.Start)
}

func TestNormalizeItemOtherOffset(t *testing.T) {
	loc, err := ParseOffset("-05:30")
	require.NoError(t, err)

	rec, err := NormalizeItem(upstream.RawProgramme{Name: "x", StartTime: "2024-12-31 23:00:00", EndTime: "2025-01-01 00:30:00"}, "c", loc)
	require.NoError(t, err)
	assert.Equal(t, "20241231230000 -0530", rec.Start)
	assert.Equal(t, "20250101003000 -0530", rec.Stop)
}

func TestNormalizeItemFailures(t *testing.T) {
	tests := []struct {
		name     string
		item     upstream.RawProgramme
		sentinel error
		field    string
	}{
		{
			name:     "malformed start",
			item:     upstream.RawProgramme{Name: "x", StartTime: "not-a-date", EndTime: "2024-05-01 21:30:00"},
			sentinel: ErrBadTimestamp,
			field:    "start_time",
		},
		{
			name:     "malformed end",
			item:     upstream.RawProgramme{Name: "x", StartTime: "2024-05-01 20:00:00", EndTime: "2024/05/01 21:30"},
			sentinel: ErrBadTimestamp,
			field:    "end_time",
		},
		{
			name:     "missing start",
			item:     upstream.RawProgramme{Name: "x", EndTime: "2024-05-01 21:30:00"},
			sentinel: ErrBadTimestamp,
			field:    "start_time",
		},
		{
			name:     "iso timestamp",
			item:     upstream.RawProgramme{Name: "x", StartTime: "2024-05-01T20:00:00+08:00", EndTime: "2024-05-01 21:30:00"},
			sentinel: ErrBadTimestamp,
			field:    "start_time",
		},
		{
			name:     "empty title",
			item:     upstream.RawProgramme{Name: "", StartTime: "2024-05-01 20:00:00", EndTime: "2024-05-01 21:30:00"},
			sentinel: ErrMissingTitle,
			field:    "program_name",
		},
		{
			name:     "blank title",
			item:     upstream.RawProgramme{Name: " \t ", StartTime: "2024-05-01 20:00:00", EndTime: "2024-05-01 21:30:00"},
			sentinel: ErrMissingTitle,
			field:    "program_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeItem(tt.item, "1001", macau(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var ne *NormalizeError
			require.True(t, errors.As(err, &ne))
			assert.Equal(t, tt.field, ne.Field)
		})
	}
}

func TestNormalizeItemSuspectOrdering(t *testing.T) {
	item := upstream.RawProgramme{Name: "Rerun", StartTime: "2024-05-01 21:30:00", EndTime: "2024-05-01 20:00:00"}

	rec, err := NormalizeItem(item, "1001", macau(t))
	require.NoError(t, err, "reversed times are kept")
	assert.True(t, rec.Suspect)

	item.EndTime = item.StartTime
	rec, err = NormalizeItem(item, "1001", macau(t))
	require.NoError(t, err)
	assert.True(t, rec.Suspect, "zero-length programme is suspect")
}

func TestNormalizeItemCleansText(t *testing.T) {
	// "e" followed by a combining acute accent composes to "é" under NFC.
	item := upstream.RawProgramme{
		Name:      "  Cafe\u0301 Talk  ",
		Desc:      "\n ",
		StartTime: " 2024-05-01 20:00:00 ",
		EndTime:   "2024-05-01 21:00:00",
	}

	rec, err := NormalizeItem(item, "1001", macau(t))
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9 Talk", rec.Title)
	assert.Empty(t, rec.Desc)
}

func TestRejectItem(t *testing.T) {
	cause := errors.New("json: cannot unmarshal number")
	nerr := RejectItem(upstream.ItemError{
		Index: 3,
		Raw:   []byte(`{"start_time":1714564800}`),
		Err:   cause,
	})

	assert.Equal(t, ReasonBadItem, nerr.Reason)
	assert.Equal(t, "data[3]", nerr.Field)
	assert.Equal(t, `{"start_time":1714564800}`, nerr.Value)
	assert.True(t, errors.Is(nerr, ErrBadItem))
	assert.True(t, errors.Is(nerr, cause))
	assert.False(t, errors.Is(nerr, ErrBadTimestamp))
}

func TestRejectItemTruncatesValue(t *testing.T) {
	long := make([]byte, 0, 300)
	long = append(long, '"')
	for i := 0; i < 298; i++ {
		long = append(long, 'x')
	}
	long = append(long, '"')

	nerr := RejectItem(upstream.ItemError{Raw: long, Err: errors.New("bad")})
	assert.Len(t, []rune(nerr.Value), maxRawValue+1)
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "+0800", want: "+0800"},
		{in: "+08:00", want: "+0800"},
		{in: "-0530", want: "-0530"},
		{in: "Z", want: "+0000"},
		{in: "UTC", want: "+0000"},
		{in: "0800", wantErr: true},
		{in: "+8", wantErr: true},
		{in: "+1500", wantErr: true},
		{in: "+0860", wantErr: true},
		{in: "", wantErr: true},
	}

	ref := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, err := ParseOffset(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref.In(loc).Format("-0700"))
		})
	}
}

func TestFormatXMLTVTime(t *testing.T) {
	testTime := time.Date(2024, 1, 15, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "20240115203000 +0000", formatXMLTVTime(testTime))
}
