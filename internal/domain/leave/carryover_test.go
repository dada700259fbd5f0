package leave

import (
	"context"
	"errors"
	"testing"
)

func TestProcessOneCapsAtMax(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2020, 3, 10), 48)

	// Entitlement 72, 12 used in the closing year: 60 left exceeds the cap.
	store.addRecord("emp-1", date(2023, 4, 1), date(2023, 4, 12), StatusApproved)

	result, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PreviousBalance != 60 {
		t.Fatalf("expected previous balance 60, got %d", result.PreviousBalance)
	}
	if result.CarriedForward != MaxCarryover {
		t.Fatalf("expected carryover capped at %d, got %d", MaxCarryover, result.CarriedForward)
	}
	if result.NewAnnualEntitlement != BaseEntitlement+MaxCarryover {
		t.Fatalf("expected entitlement %d, got %d", BaseEntitlement+MaxCarryover, result.NewAnnualEntitlement)
	}
	if !result.Applied {
		t.Fatal("expected the rollover to apply")
	}
	if store.employees["emp-1"].CarriedForwardDays != MaxCarryover {
		t.Fatalf("store not updated, got %d", store.employees["emp-1"].CarriedForwardDays)
	}
	stamp := store.employees["emp-1"].CarryoverAppliedFor
	if stamp == nil || !stamp.Equal(date(2024, 3, 10)) {
		t.Fatalf("expected boundary stamp 2024-03-10, got %v", stamp)
	}
}

func TestProcessOneBelowCap(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.addRecord("emp-1", date(2024, 2, 1), date(2024, 2, 5), StatusApproved)

	// Closing year 2023-03-10..2024-03-09: entitlement 34, 5 used.
	result, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PreviousBalance != 29 {
		t.Fatalf("expected previous balance 29, got %d", result.PreviousBalance)
	}
	if result.CarriedForward != 29 {
		t.Fatalf("expected carryover 29, got %d", result.CarriedForward)
	}
	if !result.Success || !result.Applied {
		t.Fatalf("expected applied success, got %+v", result)
	}
}

func TestProcessOneSameBoundaryRunsOnce(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.addRecord("emp-1", date(2024, 2, 1), date(2024, 2, 5), StatusApproved)

	first, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CarriedForward != 29 {
		t.Fatalf("expected 29 carried, got %d", first.CarriedForward)
	}

	// A repeat run inside the same leave year must not recompute from
	// the freshly written carryover and inflate it toward the cap.
	second, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 3, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Applied {
		t.Fatal("repeat run for the same boundary must be a no-op")
	}
	if second.CarriedForward != 29 {
		t.Fatalf("expected carryover unchanged at 29, got %d", second.CarriedForward)
	}
	if store.employees["emp-1"].CarriedForwardDays != 29 {
		t.Fatalf("store changed on repeat run, got %d", store.employees["emp-1"].CarriedForwardDays)
	}
}

func TestProcessOneFirstYearDoesNotWrite(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)

	// The day before the first anniversary there is no closing year yet,
	// so an early scheduler tick must not grant anything.
	result, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 3, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Applied {
		t.Fatal("first leave year must not roll over")
	}
	if store.employees["emp-1"].CarriedForwardDays != 10 {
		t.Fatalf("carryover changed, got %d", store.employees["emp-1"].CarriedForwardDays)
	}
}

func TestProcessOneAcrossBoundaries(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.addRecord("emp-1", date(2024, 2, 1), date(2024, 2, 5), StatusApproved)

	first, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CarriedForward != 29 {
		t.Fatalf("expected 29 carried, got %d", first.CarriedForward)
	}

	// Next year: entitlement 24+29=53, 10 days used, 43 left to carry.
	store.addRecord("emp-1", date(2024, 6, 1), date(2024, 6, 10), StatusApproved)
	second, err := ProcessOne(context.Background(), store, "emp-1", date(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Applied {
		t.Fatal("new boundary must apply")
	}
	if second.PreviousBalance != 43 || second.CarriedForward != 43 {
		t.Fatalf("expected 43 carried at the next boundary, got %+v", second)
	}
}

func TestProcessAllSkipsEmployeesWithoutHiringDate(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)
	store.addEmployee("emp-2", date(2022, 6, 1), 0)
	store.employees["emp-3"] = EmployeeProfile{ID: "emp-3", EmploymentStatus: "active"}

	result, err := ProcessAll(context.Background(), store, date(2024, 7, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 2 {
		t.Fatalf("expected 2 processed, got %d", result.Processed)
	}
	if result.Failed != 0 || result.Succeeded != 2 {
		t.Fatalf("expected 2 successes, got %+v", result)
	}
}

func TestProcessAllReportsPerEmployeeErrors(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)
	store.addEmployee("emp-2", date(2022, 6, 1), 0)
	store.updateErr = errors.New("connection reset")

	result, err := ProcessAll(context.Background(), store, date(2024, 7, 1))
	if err != nil {
		t.Fatalf("batch must not abort: %v", err)
	}
	if result.Failed != 2 || result.Succeeded != 0 {
		t.Fatalf("expected all failures captured, got %+v", result)
	}
	for _, one := range result.Results {
		if one.Success || one.Error == "" {
			t.Fatalf("failed entry must carry its error: %+v", one)
		}
	}
}

func TestProcessAllListingFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")

	if _, err := ProcessAll(context.Background(), store, date(2024, 7, 1)); err == nil {
		t.Fatal("expected error when the listing fails")
	}
}

func TestEmployeesNeedingCarryover(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("near", date(2023, 7, 10), 0)
	store.addEmployee("far", date(2023, 12, 25), 0)

	due, err := EmployeesNeedingCarryover(context.Background(), store, date(2024, 7, 1), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "near" {
		t.Fatalf("expected only the near anniversary, got %+v", due)
	}

	due, err = EmployeesNeedingCarryover(context.Background(), store, date(2024, 7, 1), 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("a year of lookahead covers everyone, got %d", len(due))
	}
}

func TestSetManualCarryoverClamps(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)

	applied, err := SetManualCarryover(context.Background(), store, "emp-1", 100, date(2024, 7, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != MaxCarryover {
		t.Fatalf("expected clamp to %d, got %d", MaxCarryover, applied)
	}

	applied, err = SetManualCarryover(context.Background(), store, "emp-1", -3, date(2024, 7, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected clamp to 0, got %d", applied)
	}

	applied, err = SetManualCarryover(context.Background(), store, "emp-1", 12, date(2024, 7, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 12 {
		t.Fatalf("expected 12, got %d", applied)
	}
	if store.employees["emp-1"].CarriedForwardDays != 12 {
		t.Fatalf("store not updated, got %d", store.employees["emp-1"].CarriedForwardDays)
	}
}

func TestSetManualCarryoverSticksUntilNextBoundary(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)

	if _, err := SetManualCarryover(context.Background(), store, "emp-1", 12, date(2024, 7, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A scheduled run later in the same leave year must not replace the
	// manual value.
	result, err := ProcessOne(context.Background(), store, "emp-1", date(2024, 7, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Applied {
		t.Fatal("rollover must not reapply inside the adjusted year")
	}
	if store.employees["emp-1"].CarriedForwardDays != 12 {
		t.Fatalf("manual carryover overwritten, got %d", store.employees["emp-1"].CarriedForwardDays)
	}
}

func TestSetManualCarryoverUnknownEmployee(t *testing.T) {
	store := newFakeStore()
	if _, err := SetManualCarryover(context.Background(), store, "nobody", 5, date(2024, 7, 1)); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
