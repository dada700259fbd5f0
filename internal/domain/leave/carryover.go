package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ProcessOne rolls one employee over into the leave year containing
// now: the balance remaining at the end of the closing year becomes
// the carried-forward amount, capped at MaxCarryover. The employee row
// records which leave-year start the rollover fed, so repeating the
// call for the same boundary is a no-op instead of recomputing from
// the already-written carryover.
func ProcessOne(ctx context.Context, store CarryoverStore, employeeID string, now time.Time) (CarryoverResult, error) {
	profile, err := store.GetEmployee(ctx, employeeID)
	if err != nil {
		return CarryoverResult{EmployeeID: employeeID, Error: err.Error()}, err
	}
	if profile.HiringDate == nil {
		err := fmt.Errorf("employee %s: %w", employeeID, ErrMissingHiringDate)
		return CarryoverResult{EmployeeID: employeeID, Error: err.Error()}, err
	}

	window := ResolveLeaveYear(*profile.HiringDate, now)
	closingEnd := window.Start.AddDate(0, 0, -1)
	carried := min(profile.CarriedForwardDays, MaxCarryover)

	// First leave year: there is no closing year to roll over.
	if closingEnd.Before(dateOnly(*profile.HiringDate)) {
		return CarryoverResult{
			EmployeeID:           employeeID,
			CarriedForward:       carried,
			NewAnnualEntitlement: Entitlement(carried),
			Success:              true,
		}, nil
	}

	// Already rolled over for this leave year.
	if profile.CarryoverAppliedFor != nil && !profile.CarryoverAppliedFor.Before(window.Start) {
		return CarryoverResult{
			EmployeeID:           employeeID,
			CarriedForward:       carried,
			NewAnnualEntitlement: Entitlement(carried),
			Success:              true,
		}, nil
	}

	snapshot, err := BalanceFor(ctx, store, employeeID, closingEnd)
	if err != nil {
		return CarryoverResult{EmployeeID: employeeID, Error: err.Error()}, err
	}

	newCarried := min(snapshot.CurrentBalance, MaxCarryover)
	if err := store.UpdateCarriedForward(ctx, employeeID, newCarried, &window.Start); err != nil {
		err = fmt.Errorf("update carried forward for %s: %w", employeeID, err)
		return CarryoverResult{EmployeeID: employeeID, Error: err.Error()}, err
	}

	return CarryoverResult{
		EmployeeID:           employeeID,
		PreviousBalance:      snapshot.CurrentBalance,
		CarriedForward:       newCarried,
		NewAnnualEntitlement: Entitlement(newCarried),
		Success:              true,
		Applied:              true,
	}, nil
}

// ProcessAll runs carryover for every active employee with a hiring
// date. Failures are captured per employee and never abort the batch;
// the returned error is non-nil only when the listing itself fails.
func ProcessAll(ctx context.Context, store CarryoverStore, now time.Time) (BulkCarryoverResult, error) {
	anchors, err := store.ListActiveEmployeesWithHiringDate(ctx)
	if err != nil {
		return BulkCarryoverResult{}, fmt.Errorf("list employees for carryover: %w", err)
	}

	result := BulkCarryoverResult{Results: make([]CarryoverResult, 0, len(anchors))}
	for _, anchor := range anchors {
		one, err := ProcessOne(ctx, store, anchor.ID, now)
		result.Processed++
		if err != nil {
			result.Failed++
			slog.Warn("carryover failed", "employeeID", anchor.ID, "error", err)
		} else {
			result.Succeeded++
		}
		result.Results = append(result.Results, one)
	}
	return result, nil
}

// EmployeesNeedingCarryover returns employees whose next hiring
// anniversary falls within daysAhead days of now. The scheduler calls
// this to decide who is approaching a leave-year boundary.
func EmployeesNeedingCarryover(ctx context.Context, store CarryoverStore, now time.Time, daysAhead int) ([]EmployeeAnchor, error) {
	if daysAhead < 0 {
		daysAhead = 0
	}
	anchors, err := store.ListActiveEmployeesWithHiringDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees for carryover: %w", err)
	}

	today := dateOnly(now)
	cutoff := today.AddDate(0, 0, daysAhead)

	due := make([]EmployeeAnchor, 0)
	for _, anchor := range anchors {
		next := NextAnniversary(anchor.HiringDate, today)
		if !next.After(cutoff) {
			due = append(due, anchor)
		}
	}
	return due, nil
}

// SetManualCarryover writes an HR-adjusted carryover amount, clamped
// to [0, MaxCarryover]. Out-of-range input is clamped rather than
// rejected so an adjustment never silently exceeds the cap. The
// adjustment stamps the current leave year, so the scheduled rollover
// will not overwrite it until the next boundary.
func SetManualCarryover(ctx context.Context, store CarryoverStore, employeeID string, days int, now time.Time) (int, error) {
	clamped := days
	if clamped < 0 {
		clamped = 0
	}
	if clamped > MaxCarryover {
		clamped = MaxCarryover
	}
	if clamped != days {
		slog.Warn("manual carryover clamped", "employeeID", employeeID, "requested", days, "applied", clamped)
	}

	profile, err := store.GetEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	var appliedFor *time.Time
	if profile.HiringDate != nil {
		start := ResolveLeaveYear(*profile.HiringDate, now).Start
		appliedFor = &start
	}
	if err := store.UpdateCarriedForward(ctx, employeeID, clamped, appliedFor); err != nil {
		return 0, fmt.Errorf("update carried forward for %s: %w", employeeID, err)
	}
	return clamped, nil
}
