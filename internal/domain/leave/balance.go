package leave

import (
	"context"
	"fmt"
	"time"
)

// UsedDays sums the inclusive day spans of approved records whose
// start date falls inside the window. A failed read propagates: a
// silent zero here would let admission hand out days the employee
// does not have.
func UsedDays(ctx context.Context, store BalanceStore, employeeID string, window LeaveYearWindow) (int, error) {
	spans, err := store.QueryApprovedLeaveRecords(ctx, employeeID, window.Start, window.End)
	if err != nil {
		return 0, fmt.Errorf("aggregate approved leave for %s: %w", employeeID, err)
	}

	total := 0
	for _, span := range spans {
		days, err := InclusiveDays(span.StartDate, span.EndDate)
		if err != nil {
			return 0, fmt.Errorf("leave record for %s has %w", employeeID, ErrInvalidRange)
		}
		total += days
	}
	return total, nil
}

// Entitlement is the annual allotment: base plus capped carryover,
// always in [BaseEntitlement, BaseEntitlement+MaxCarryover].
func Entitlement(carriedForward int) int {
	if carriedForward < 0 {
		carriedForward = 0
	}
	if carriedForward > MaxCarryover {
		carriedForward = MaxCarryover
	}
	return BaseEntitlement + carriedForward
}

// BalanceFor computes a fresh BalanceSnapshot for the employee as of
// today. Deterministic and side-effect-free; safe to call repeatedly.
func BalanceFor(ctx context.Context, store BalanceStore, employeeID string, today time.Time) (BalanceSnapshot, error) {
	profile, err := store.GetEmployee(ctx, employeeID)
	if err != nil {
		return BalanceSnapshot{}, err
	}
	if profile.HiringDate == nil {
		return BalanceSnapshot{}, fmt.Errorf("employee %s: %w", employeeID, ErrMissingHiringDate)
	}

	window := ResolveLeaveYear(*profile.HiringDate, today)
	used, err := UsedDays(ctx, store, employeeID, window)
	if err != nil {
		return BalanceSnapshot{}, err
	}

	entitlement := Entitlement(profile.CarriedForwardDays)
	balance := entitlement - used
	if balance < 0 {
		balance = 0
	}

	return BalanceSnapshot{
		EmployeeID:        employeeID,
		CurrentBalance:    balance,
		AnnualEntitlement: entitlement,
		UsedThisYear:      used,
		CarriedForward:    min(profile.CarriedForwardDays, MaxCarryover),
		LeaveYearStart:    window.Start,
		LeaveYearEnd:      window.End,
	}, nil
}
