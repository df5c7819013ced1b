package timeago

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{59 * time.Second, "Just now"},
		{60 * time.Second, "1 min ago"},
		{45 * time.Minute, "45 min ago"},
		{time.Hour, "1 hr ago"},
		{23 * time.Hour, "23 hr ago"},
		{24 * time.Hour, "1 days ago"},
		{6 * 24 * time.Hour, "6 days ago"},
	}

	for _, tc := range cases {
		if got := Format(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("%v ago: expected %q, got %q", tc.ago, tc.want, got)
		}
	}
}

func TestFormatOlderThanAWeekShowsDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	old := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

	if got := Format(old, now); got != "Jan 02, 2025" {
		t.Fatalf("expected absolute date, got %q", got)
	}
}
