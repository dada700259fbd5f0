package leave

import (
	"context"
	"time"

	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/core"
)

// Service ties the balance engine to the stores and enforces who may
// see and decide what. Decisions never re-check the balance: the days
// were reserved when the request was admitted.
type Service struct {
	Store *Store
	Core  *core.Store
}

func NewService(store *Store, coreStore *core.Store) *Service {
	return &Service{Store: store, Core: coreStore}
}

func (s *Service) MyBalance(ctx context.Context, employeeID string, now time.Time) (BalanceSnapshot, error) {
	return BalanceFor(ctx, s.Store, employeeID, now)
}

// DetailedBalance adds the raw approved spans of the current leave
// year to the snapshot, for the HR drill-down view.
type DetailedBalance struct {
	BalanceSnapshot
	ApprovedSpans []RecordSpan `json:"approvedSpans"`
}

func (s *Service) Balance(ctx context.Context, employeeID string, now time.Time) (DetailedBalance, error) {
	snapshot, err := BalanceFor(ctx, s.Store, employeeID, now)
	if err != nil {
		return DetailedBalance{}, err
	}
	spans, err := s.Store.QueryApprovedLeaveRecords(ctx, employeeID, snapshot.LeaveYearStart, snapshot.LeaveYearEnd)
	if err != nil {
		return DetailedBalance{}, err
	}
	return DetailedBalance{BalanceSnapshot: snapshot, ApprovedSpans: spans}, nil
}

func (s *Service) CreateRequest(ctx context.Context, now time.Time, params AdmitParams) (LeaveRecord, error) {
	return Admit(ctx, s.Store, now, params)
}

func (s *Service) ListRequests(ctx context.Context, roleName, employeeID, managerEmployeeID string, limit, offset int) (RequestListResult, error) {
	return s.Store.ListRequests(ctx, roleName, employeeID, managerEmployeeID, limit, offset)
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (LeaveRecord, error) {
	return s.Store.GetRequest(ctx, requestID)
}

// ApproveRequest marks a pending request approved. The balance is not
// consulted here; the days were reserved at admission and recomputing
// would double-count in-flight decisions.
func (s *Service) ApproveRequest(ctx context.Context, requestID, approverEmployeeID, roleName, comments string) (LeaveRecord, error) {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return LeaveRecord{}, err
	}
	if err := s.authorizeDecision(ctx, req, approverEmployeeID, roleName); err != nil {
		return LeaveRecord{}, err
	}
	if err := s.Store.UpdateRequestStatus(ctx, requestID, StatusApproved, approverEmployeeID, comments); err != nil {
		return LeaveRecord{}, err
	}
	return s.Store.GetRequest(ctx, requestID)
}

func (s *Service) RejectRequest(ctx context.Context, requestID, approverEmployeeID, roleName, comments string) (LeaveRecord, error) {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return LeaveRecord{}, err
	}
	if err := s.authorizeDecision(ctx, req, approverEmployeeID, roleName); err != nil {
		return LeaveRecord{}, err
	}
	if err := s.Store.UpdateRequestStatus(ctx, requestID, StatusRejected, approverEmployeeID, comments); err != nil {
		return LeaveRecord{}, err
	}
	return s.Store.GetRequest(ctx, requestID)
}

// CancelRequest lets the owner withdraw a still-pending request,
// releasing its reserved days.
func (s *Service) CancelRequest(ctx context.Context, requestID, actorEmployeeID string) error {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.EmployeeID != actorEmployeeID {
		return ErrForbidden
	}
	return s.Store.CancelRequest(ctx, requestID)
}

func (s *Service) authorizeDecision(ctx context.Context, req LeaveRecord, approverEmployeeID, roleName string) error {
	if req.Status != StatusPending {
		return ErrInvalidState
	}
	if roleName == auth.RoleHR {
		return nil
	}
	if roleName == auth.RoleManager {
		isManager, err := s.Core.IsManagerOf(ctx, approverEmployeeID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !isManager {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}

func (s *Service) RunCarryover(ctx context.Context, employeeID string, now time.Time) (CarryoverResult, error) {
	return ProcessOne(ctx, s.Store, employeeID, now)
}

func (s *Service) RunCarryoverBatch(ctx context.Context, now time.Time) (BulkCarryoverResult, error) {
	return ProcessAll(ctx, s.Store, now)
}

func (s *Service) UpcomingAnniversaries(ctx context.Context, now time.Time, daysAhead int) ([]EmployeeAnchor, error) {
	return EmployeesNeedingCarryover(ctx, s.Store, now, daysAhead)
}

func (s *Service) AdjustCarryover(ctx context.Context, employeeID string, days int, now time.Time) (int, error) {
	return SetManualCarryover(ctx, s.Store, employeeID, days, now)
}

func (s *Service) ListTypes(ctx context.Context) ([]LeaveType, error) {
	return s.Store.ListTypes(ctx)
}

func (s *Service) CreateType(ctx context.Context, payload LeaveType) (string, error) {
	return s.Store.CreateType(ctx, payload)
}

func (s *Service) CalendarExport(ctx context.Context, roleName, employeeID string) ([]CalendarExportRow, error) {
	scope := ""
	if roleName == auth.RoleEmployee {
		scope = employeeID
	}
	return s.Store.CalendarExportRows(ctx, []string{StatusPending, StatusApproved}, scope)
}
