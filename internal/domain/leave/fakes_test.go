package leave

import (
	"context"
	"errors"
	"time"
)

type fakeRecord struct {
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

// fakeStore is an in-memory stand-in for the pgx store. Admission
// transactions write straight through; the engine's own locking
// discipline is what is under test, not the database's.
type fakeStore struct {
	employees map[string]EmployeeProfile
	records   map[string][]fakeRecord

	listErr   error
	updateErr error
	queryErr  error

	inserted  []InsertLeaveRecordParams
	committed bool
	rolledBck bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: map[string]EmployeeProfile{},
		records:   map[string][]fakeRecord{},
	}
}

func (f *fakeStore) addEmployee(id string, hired time.Time, carried int) {
	h := hired
	f.employees[id] = EmployeeProfile{
		ID:                 id,
		HiringDate:         &h,
		CarriedForwardDays: carried,
		EmploymentStatus:   "active",
	}
}

func (f *fakeStore) addRecord(employeeID string, start, end time.Time, status string) {
	f.records[employeeID] = append(f.records[employeeID], fakeRecord{StartDate: start, EndDate: end, Status: status})
}

func (f *fakeStore) GetEmployee(_ context.Context, employeeID string) (EmployeeProfile, error) {
	profile, ok := f.employees[employeeID]
	if !ok {
		return EmployeeProfile{}, ErrEmployeeNotFound
	}
	return profile, nil
}

func (f *fakeStore) QueryApprovedLeaveRecords(_ context.Context, employeeID string, from, to time.Time) ([]RecordSpan, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var spans []RecordSpan
	for _, rec := range f.records[employeeID] {
		if rec.Status != StatusApproved {
			continue
		}
		if rec.StartDate.Before(from) || rec.StartDate.After(to) {
			continue
		}
		spans = append(spans, RecordSpan{StartDate: rec.StartDate, EndDate: rec.EndDate})
	}
	return spans, nil
}

func (f *fakeStore) ListActiveEmployeesWithHiringDate(_ context.Context) ([]EmployeeAnchor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var anchors []EmployeeAnchor
	for id, profile := range f.employees {
		if profile.HiringDate == nil {
			continue
		}
		anchors = append(anchors, EmployeeAnchor{ID: id, HiringDate: *profile.HiringDate})
	}
	return anchors, nil
}

func (f *fakeStore) UpdateCarriedForward(_ context.Context, employeeID string, days int, appliedFor *time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	profile, ok := f.employees[employeeID]
	if !ok {
		return ErrEmployeeNotFound
	}
	profile.CarriedForwardDays = days
	if appliedFor != nil {
		stamp := *appliedFor
		profile.CarryoverAppliedFor = &stamp
	}
	f.employees[employeeID] = profile
	return nil
}

func (f *fakeStore) BeginAdmission(_ context.Context) (AdmissionTx, error) {
	return &fakeAdmissionTx{store: f}, nil
}

type fakeAdmissionTx struct {
	store *fakeStore
	done  bool
}

func (t *fakeAdmissionTx) LockEmployee(ctx context.Context, employeeID string) (EmployeeProfile, error) {
	return t.store.GetEmployee(ctx, employeeID)
}

func (t *fakeAdmissionTx) SumReservedDays(_ context.Context, employeeID string, from, to time.Time) (int, error) {
	total := 0
	for _, rec := range t.store.records[employeeID] {
		if rec.Status != StatusApproved && rec.Status != StatusPending {
			continue
		}
		if rec.StartDate.Before(from) || rec.StartDate.After(to) {
			continue
		}
		days, err := InclusiveDays(rec.StartDate, rec.EndDate)
		if err != nil {
			return 0, err
		}
		total += days
	}
	return total, nil
}

func (t *fakeAdmissionTx) InsertLeaveRecord(_ context.Context, params InsertLeaveRecordParams) (LeaveRecord, error) {
	t.store.inserted = append(t.store.inserted, params)
	t.store.addRecord(params.EmployeeID, params.StartDate, params.EndDate, StatusPending)
	return LeaveRecord{
		ID:          "rec-1",
		EmployeeID:  params.EmployeeID,
		LeaveTypeID: params.LeaveTypeID,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Days:        params.Days,
		Reason:      params.Reason,
		Status:      StatusPending,
	}, nil
}

func (t *fakeAdmissionTx) Commit(_ context.Context) error {
	if t.done {
		return errors.New("already finished")
	}
	t.done = true
	t.store.committed = true
	return nil
}

func (t *fakeAdmissionTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.rolledBck = true
	return nil
}
