package leave

import (
	"context"
	"errors"
	"testing"
)

func TestAdmitSuccess(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)

	record, err := Admit(context.Background(), store, date(2024, 4, 1), AdmitParams{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   date(2024, 4, 10),
		EndDate:     date(2024, 4, 14),
		Reason:      "trip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Days != 5 {
		t.Fatalf("expected 5 days, got %d", record.Days)
	}
	if record.Status != StatusPending {
		t.Fatalf("new requests start pending, got %s", record.Status)
	}
	if !store.committed {
		t.Fatal("admission must commit")
	}
}

func TestAdmitInsufficientBalance(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 10)
	store.addRecord("emp-1", date(2024, 3, 20), date(2024, 3, 24), StatusApproved)

	_, err := Admit(context.Background(), store, date(2024, 4, 1), AdmitParams{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   date(2024, 5, 1),
		EndDate:     date(2024, 5, 30),
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var detail *InsufficientBalanceError
	if !errors.As(err, &detail) {
		t.Fatalf("expected InsufficientBalanceError, got %T", err)
	}
	if detail.Requested != 30 || detail.Available != 29 {
		t.Fatalf("expected requested 30 available 29, got %+v", detail)
	}
	if len(store.inserted) != 0 {
		t.Fatal("rejected admission must not insert a record")
	}
	if store.committed {
		t.Fatal("rejected admission must not commit")
	}
}

func TestAdmitCountsPendingAsReserved(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)
	store.addRecord("emp-1", date(2024, 4, 1), date(2024, 4, 20), StatusPending)

	_, err := Admit(context.Background(), store, date(2024, 4, 1), AdmitParams{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   date(2024, 5, 1),
		EndDate:     date(2024, 5, 10),
	})
	var detail *InsufficientBalanceError
	if !errors.As(err, &detail) {
		t.Fatalf("pending days must reserve balance, got %v", err)
	}
	if detail.Available != 4 {
		t.Fatalf("expected 4 available after 20 pending, got %d", detail.Available)
	}
}

func TestAdmitInvalidRange(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)

	_, err := Admit(context.Background(), store, date(2024, 4, 1), AdmitParams{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   date(2024, 5, 10),
		EndDate:     date(2024, 5, 1),
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAdmitMissingHiringDate(t *testing.T) {
	store := newFakeStore()
	store.employees["emp-1"] = EmployeeProfile{ID: "emp-1", EmploymentStatus: "active"}

	_, err := Admit(context.Background(), store, date(2024, 4, 1), AdmitParams{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   date(2024, 5, 1),
		EndDate:     date(2024, 5, 2),
	})
	if !errors.Is(err, ErrMissingHiringDate) {
		t.Fatalf("expected ErrMissingHiringDate, got %v", err)
	}
	if store.committed {
		t.Fatal("must not commit without a hiring date")
	}
}

func TestAdmitExactBalanceAllowed(t *testing.T) {
	store := newFakeStore()
	store.addEmployee("emp-1", date(2023, 3, 10), 0)
	store.addRecord("emp-1", date(2024, 4, 1), date(2024, 4, 20), StatusApproved)

	record, err := Admit(context.Background(), store, date(2024, 5, 1), AdmitParams{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   date(2024, 6, 1),
		EndDate:     date(2024, 6, 4),
	})
	if err != nil {
		t.Fatalf("a request equal to the remaining balance must pass: %v", err)
	}
	if record.Days != 4 {
		t.Fatalf("expected 4 days, got %d", record.Days)
	}
}
