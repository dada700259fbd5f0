package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveLeaveYearAfterAnniversary(t *testing.T) {
	hired := date(2023, 3, 10)
	window := ResolveLeaveYear(hired, date(2024, 4, 1))

	if !window.Start.Equal(date(2024, 3, 10)) {
		t.Fatalf("expected start 2024-03-10, got %v", window.Start)
	}
	if !window.End.Equal(date(2025, 3, 9)) {
		t.Fatalf("expected end 2025-03-09, got %v", window.End)
	}
}

func TestResolveLeaveYearBeforeAnniversary(t *testing.T) {
	hired := date(2023, 3, 10)
	window := ResolveLeaveYear(hired, date(2024, 2, 1))

	if !window.Start.Equal(date(2023, 3, 10)) {
		t.Fatalf("expected start 2023-03-10, got %v", window.Start)
	}
	if !window.End.Equal(date(2024, 3, 9)) {
		t.Fatalf("expected end 2024-03-09, got %v", window.End)
	}
}

func TestResolveLeaveYearOnAnniversary(t *testing.T) {
	hired := date(2023, 3, 10)
	window := ResolveLeaveYear(hired, date(2024, 3, 10))

	if !window.Start.Equal(date(2024, 3, 10)) {
		t.Fatalf("anniversary day starts the new year, got start %v", window.Start)
	}
	if !window.Contains(date(2024, 3, 10)) {
		t.Fatal("window must contain its own start")
	}
	if window.Contains(date(2025, 3, 10)) {
		t.Fatal("window must not contain the next anniversary")
	}
}

func TestResolveLeaveYearLeapDayHire(t *testing.T) {
	hired := date(2024, 2, 29)

	window := ResolveLeaveYear(hired, date(2025, 3, 1))
	if !window.Start.Equal(date(2025, 2, 28)) {
		t.Fatalf("expected leap-day hire to anchor on Feb 28, got %v", window.Start)
	}

	window = ResolveLeaveYear(hired, date(2028, 3, 1))
	if !window.Start.Equal(date(2028, 2, 29)) {
		t.Fatalf("expected Feb 29 anchor in a leap year, got %v", window.Start)
	}
}

func TestNextAnniversary(t *testing.T) {
	hired := date(2023, 3, 10)

	next := NextAnniversary(hired, date(2024, 2, 1))
	if !next.Equal(date(2024, 3, 10)) {
		t.Fatalf("expected 2024-03-10, got %v", next)
	}

	next = NextAnniversary(hired, date(2024, 3, 10))
	if !next.Equal(date(2024, 3, 10)) {
		t.Fatalf("today's anniversary counts, got %v", next)
	}

	next = NextAnniversary(hired, date(2024, 3, 11))
	if !next.Equal(date(2025, 3, 10)) {
		t.Fatalf("expected 2025-03-10, got %v", next)
	}
}

func TestInclusiveDays(t *testing.T) {
	days, err := InclusiveDays(date(2025, 1, 10), date(2025, 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	days, err = InclusiveDays(date(2025, 1, 1), date(2025, 1, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 days, got %v", days)
	}
}

func TestInclusiveDaysInvalid(t *testing.T) {
	if _, err := InclusiveDays(date(2025, 2, 10), date(2025, 2, 9)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestWindowIsExactlyOneYear(t *testing.T) {
	hired := date(2021, 7, 15)
	for _, today := range []time.Time{date(2024, 1, 1), date(2024, 7, 15), date(2024, 12, 31)} {
		window := ResolveLeaveYear(hired, today)
		if !window.Contains(today) {
			t.Fatalf("window %v..%v must contain %v", window.Start, window.End, today)
		}
		if !window.End.AddDate(0, 0, 1).Equal(window.Start.AddDate(1, 0, 0)) {
			t.Fatalf("window %v..%v is not one anniversary year", window.Start, window.End)
		}
	}
}
