package businessday

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBetween_FullWeekExcludesWeekend(t *testing.T) {
	// Mon 2024-01-01 through Mon 2024-01-08, exclusive end.
	got := Between(date(2024, time.January, 1), date(2024, time.January, 8), nil)
	if got != 5 {
		t.Fatalf("expected 5 business days, got %d", got)
	}
}

func TestBetween_StartEqualsEnd(t *testing.T) {
	d := date(2024, time.March, 15)
	if got := Between(d, d, nil); got != 0 {
		t.Fatalf("expected 0 business days, got %d", got)
	}
}

func TestBetween_StartAfterEnd(t *testing.T) {
	got := Between(date(2024, time.March, 20), date(2024, time.March, 15), nil)
	if got != 0 {
		t.Fatalf("expected 0 business days for inverted range, got %d", got)
	}
}

func TestBetween_WeekendOnly(t *testing.T) {
	// Sat 2024-01-06 through Mon 2024-01-08, exclusive end.
	got := Between(date(2024, time.January, 6), date(2024, time.January, 8), nil)
	if got != 0 {
		t.Fatalf("expected 0 business days over a weekend, got %d", got)
	}
}

func TestBetween_HolidayExcluded(t *testing.T) {
	holidays := map[string]struct{}{
		"2024-01-03": {},
	}
	got := Between(date(2024, time.January, 1), date(2024, time.January, 8), holidays)
	if got != 4 {
		t.Fatalf("expected 4 business days with one holiday, got %d", got)
	}
}

func TestBetween_HolidayOnWeekendNotDoubleCounted(t *testing.T) {
	holidays := map[string]struct{}{
		"2024-01-06": {}, // Saturday
	}
	got := Between(date(2024, time.January, 1), date(2024, time.January, 8), holidays)
	if got != 5 {
		t.Fatalf("expected 5 business days, got %d", got)
	}
}

func TestBetween_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 8, 0, 1, 0, 0, time.UTC)
	if got := Between(start, end, nil); got != 5 {
		t.Fatalf("expected 5 business days regardless of clock time, got %d", got)
	}
}

func TestBetween_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := date(2024, time.January, 1).AddDate(0, 0, rapid.IntRange(0, 400).Draw(t, "startOffset"))
		span := rapid.IntRange(0, 60).Draw(t, "span")
		end := start.AddDate(0, 0, span)

		holidays := map[string]struct{}{}
		for _, offset := range rapid.SliceOfN(rapid.IntRange(0, 60), 0, 10).Draw(t, "holidayOffsets") {
			holidays[start.AddDate(0, 0, offset).Format(DateFormat)] = struct{}{}
		}

		got := Between(start, end, holidays)
		if got < 0 {
			t.Fatalf("negative count %d", got)
		}
		if got > span {
			t.Fatalf("count %d exceeds calendar span %d", got, span)
		}

		unrestricted := Between(start, end, nil)
		if got > unrestricted {
			t.Fatalf("holidays increased count: %d > %d", got, unrestricted)
		}

		// Splitting the range never changes the total.
		mid := start.AddDate(0, 0, span/2)
		if split := Between(start, mid, holidays) + Between(mid, end, holidays); split != got {
			t.Fatalf("split count %d != whole count %d", split, got)
		}
	})
}
