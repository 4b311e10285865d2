package helpers

import (
	"testing"
	"time"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size       int
		wantOff, wantLim int
	}{
		{1, 50, 0, 50},
		{3, 10, 20, 10},
		{0, 10, 0, 10},
		{2, 0, 50, 50},
		{2, 1000, 50, 50},
	}
	for _, c := range cases {
		off, lim := CalculateOffsetLimit(c.page, c.size)
		if off != c.wantOff || lim != c.wantLim {
			t.Errorf("CalculateOffsetLimit(%d, %d) = %d, %d; want %d, %d", c.page, c.size, off, lim, c.wantOff, c.wantLim)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(101, 2, 50)
	if info.TotalPages != 3 || info.CurrentPage != 2 || info.TotalItems != 101 {
		t.Errorf("unexpected %+v", info)
	}
	empty := NewPaginationInfo(0, 1, 50)
	if empty.TotalPages != 0 {
		t.Errorf("empty pages = %d", empty.TotalPages)
	}
}

func TestSliceBounds(t *testing.T) {
	if s, e := SliceBounds(0, 10, 5); s != 0 || e != 5 {
		t.Errorf("got %d,%d", s, e)
	}
	if s, e := SliceBounds(10, 10, 5); s != 5 || e != 5 {
		t.Errorf("got %d,%d", s, e)
	}
	if s, e := SliceBounds(2, 2, 10); s != 2 || e != 4 {
		t.Errorf("got %d,%d", s, e)
	}
	if s, e := SliceBounds(3, 0, 10); s != 3 || e != 10 {
		t.Errorf("unlimited: got %d,%d", s, e)
	}
	if s, e := SliceBounds(-1, 2, 10); s != 0 || e != 2 {
		t.Errorf("negative offset: got %d,%d", s, e)
	}
}

func TestParseEventDate(t *testing.T) {
	d, err := ParseEventDate("2025-03-15")
	if err != nil {
		t.Fatalf("ParseEventDate: %v", err)
	}
	if !d.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", d)
	}

	if _, err := ParseEventDate("2025-03-15T10:00:00+05:30"); err != nil {
		t.Errorf("RFC3339: %v", err)
	}
	if _, err := ParseEventDate("next friday"); err == nil {
		t.Error("expected error for free text")
	}
}

func TestTruncateTitle(t *testing.T) {
	if got := TruncateTitle("short", 30); got != "short" {
		t.Errorf("got %q", got)
	}
	long := "What technical events are coming up next week?"
	if got := TruncateTitle(long, 30); got != long[:30]+"..." {
		t.Errorf("got %q", got)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Errorf("got %q", got)
	}
}

func TestNullIfEmpty(t *testing.T) {
	if NullIfEmpty("") != nil {
		t.Error("empty should be nil")
	}
	if p := NullIfEmpty("x"); p == nil || *p != "x" {
		t.Error("non-empty should be kept")
	}
}
