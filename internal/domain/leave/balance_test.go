package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestEntitlementBounds(t *testing.T) {
	if got := Entitlement(0); got != BaseEntitlement {
		t.Fatalf("expected %d, got %d", BaseEntitlement, got)
	}
	if got := Entitlement(10); got != 34 {
		t.Fatalf("expected 34, got %d", got)
	}
	if got := Entitlement(100); got != BaseEntitlement+MaxCarryover {
		t.Fatalf("carryover above cap must clamp, got %d", got)
	}
	if got := Entitlement(-5); got != BaseEntitlement {
		t.Fatalf("negative carryover must clamp to base, got %d", got)
	}
}

func TestBalanceForScenario(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.addRecord("emp-1", date(2024, 3, 20), date(2024, 3, 24), StatusApproved)

	snapshot, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.AnnualEntitlement != 34 {
		t.Fatalf("expected entitlement 34, got %d", snapshot.AnnualEntitlement)
	}
	if snapshot.UsedThisYear != 5 {
		t.Fatalf("expected 5 used days, got %d", snapshot.UsedThisYear)
	}
	if snapshot.CurrentBalance != 29 {
		t.Fatalf("expected balance 29, got %d", snapshot.CurrentBalance)
	}
	if !snapshot.LeaveYearStart.Equal(date(2024, 3, 10)) || !snapshot.LeaveYearEnd.Equal(date(2025, 3, 9)) {
		t.Fatalf("wrong window: %v..%v", snapshot.LeaveYearStart, snapshot.LeaveYearEnd)
	}
}

func TestBalanceForIgnoresOtherYearsAndStatuses(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)
	store.addRecord("emp-1", date(2024, 1, 5), date(2024, 1, 9), StatusApproved)
	store.addRecord("emp-1", date(2024, 4, 1), date(2024, 4, 3), StatusRejected)
	store.addRecord("emp-1", date(2024, 5, 1), date(2024, 5, 2), StatusApproved)

	snapshot, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 6, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.UsedThisYear != 2 {
		t.Fatalf("only the current year's approved records count, got %d", snapshot.UsedThisYear)
	}
}

func TestBalanceForNeverNegative(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)
	store.addRecord("emp-1", date(2024, 4, 1), date(2024, 5, 10), StatusApproved)

	snapshot, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 6, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.CurrentBalance != 0 {
		t.Fatalf("balance must floor at zero, got %d", snapshot.CurrentBalance)
	}
	if snapshot.UsedThisYear != 40 {
		t.Fatalf("expected 40 used days, got %d", snapshot.UsedThisYear)
	}
}

func TestBalanceForIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.addRecord("emp-1", date(2024, 3, 20), date(2024, 3, 24), StatusApproved)

	first, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated reads diverged: %+v vs %+v", first, second)
	}
}

func TestBalanceForPropagatesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.queryErr = fmt.Errorf("%w: connection reset", ErrStoreUnavailable)

	// A failed usage read must surface, never read as zero days used.
	if _, err := UsedDays(context.Background(), store, "emp-1", LeaveYearWindow{Start: date(2024, 3, 10), End: date(2025, 3, 9)}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from UsedDays, got %v", err)
	}

	_, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 4, 1))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from BalanceFor, got %v", err)
	}
}

func TestBalanceForMissingHiringDate(t *testing.T) {
	store := newFakeStore()
	store.employees["emp-1"] = EmployeeProfile{ID: "emp-1", EmploymentStatus: "active"}

	_, err := BalanceFor(context.Background(), store, "emp-1", date(2024, 4, 1))
	if !errors.Is(err, ErrMissingHiringDate) {
		t.Fatalf("expected ErrMissingHiringDate, got %v", err)
	}
}

func TestBalanceForUnknownEmployee(t *testing.T) {
	store := newFakeStore()
	_, err := BalanceFor(context.Background(), store, "nobody", date(2024, 4, 1))
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
