package holidays

import (
	"testing"
	"time"
)

func TestToDateSet(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 25, 15, 30, 0, 0, time.UTC), // duplicate date, later clock time
		time.Date(2024, time.December, 26, 0, 0, 0, 0, time.UTC),
	}

	set := ToDateSet(dates)
	if len(set) != 2 {
		t.Fatalf("expected 2 unique dates, got %d", len(set))
	}
	if _, ok := set["2024-12-25"]; !ok {
		t.Fatal("expected 2024-12-25 in set")
	}
	if _, ok := set["2024-12-26"]; !ok {
		t.Fatal("expected 2024-12-26 in set")
	}
}

func TestToDateSet_Empty(t *testing.T) {
	if set := ToDateSet(nil); len(set) != 0 {
		t.Fatalf("expected empty set, got %d entries", len(set))
	}
}
