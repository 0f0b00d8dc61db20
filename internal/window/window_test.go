// SPDX-License-Identifier: MIT

package window

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDates(t *testing.T) {
	tests := []struct {
		name  string
		today Date
		n     int
		want  []string
	}{
		{
			name:  "default lookahead",
			today: Date{2024, time.May, 1},
			n:     DefaultDays,
			want:  []string{"2024-05-01", "2024-05-02", "2024-05-03"},
		},
		{
			name:  "month rollover",
			today: Date{2024, time.April, 30},
			n:     2,
			want:  []string{"2024-04-30", "2024-05-01"},
		},
		{
			name:  "leap year",
			today: Date{2024, time.February, 28},
			n:     3,
			want:  []string{"2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			name:  "year rollover",
			today: Date{2023, time.December, 31},
			n:     2,
			want:  []string{"2023-12-31", "2024-01-01"},
		},
		{
			name:  "zero days",
			today: Date{2024, time.May, 1},
			n:     0,
			want:  nil,
		},
		{
			name:  "negative days",
			today: Date{2024, time.May, 1},
			n:     -1,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for d := range Dates(tt.today, tt.n) {
				got = append(got, d.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Dates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDatesStopsEarly(t *testing.T) {
	calls := 0
	for range Dates(Date{2024, time.May, 1}, 10) {
		calls++
		if calls == 2 {
			break
		}
	}
	if calls != 2 {
		t.Fatalf("expected iteration to stop after 2, got %d", calls)
	}
}

func TestDatesCollect(t *testing.T) {
	got := slices.Collect(Dates(Date{2024, time.May, 1}, 2))
	want := []Date{{2024, time.May, 1}, {2024, time.May, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDatesRestartable(t *testing.T) {
	seq := Dates(Date{2024, time.May, 1}, 3)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second range differs (-first +second):\n%s", diff)
	}
}

func TestToday(t *testing.T) {
	// 2024-05-01 20:00 UTC is already 2024-05-02 in UTC+8.
	now := time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC)
	zone := time.FixedZone("+0800", 8*3600)

	if got := Today(now, zone); got != (Date{2024, time.May, 2}) {
		t.Errorf("Today() = %v, want 2024-05-02", got)
	}
	if got := Today(now, nil); got != (Date{2024, time.May, 1}) {
		t.Errorf("Today(nil loc) = %v, want 2024-05-01", got)
	}
}
