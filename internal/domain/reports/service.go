package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"peoplehub/internal/domain/core"
	"peoplehub/internal/domain/leave"
)

type Service struct {
	Leave *leave.Service
	Core  *core.Store
}

func NewService(leaveSvc *leave.Service, coreStore *core.Store) *Service {
	return &Service{Leave: leaveSvc, Core: coreStore}
}

type BalanceRow struct {
	EmployeeID     string `json:"employeeId"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Entitlement    int    `json:"entitlement"`
	Used           int    `json:"used"`
	Balance        int    `json:"balance"`
	CarriedForward int    `json:"carriedForward"`
	Error          string `json:"error,omitempty"`
}

// BalanceReport computes a fresh balance for every active employee.
// Rows for employees without a hiring date carry the error instead of
// a fabricated zero balance.
func (s *Service) BalanceReport(ctx context.Context, now time.Time) ([]BalanceRow, error) {
	employees, _, err := s.Core.ListEmployees(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	rows := make([]BalanceRow, 0, len(employees))
	for _, emp := range employees {
		if emp.Status != core.EmploymentActive {
			continue
		}
		row := BalanceRow{
			EmployeeID: emp.ID,
			Name:       emp.FirstName + " " + emp.LastName,
			Department: emp.Department,
		}
		snapshot, err := s.Leave.MyBalance(ctx, emp.ID, now)
		if err != nil {
			row.Error = err.Error()
		} else {
			row.Entitlement = snapshot.AnnualEntitlement
			row.Used = snapshot.UsedThisYear
			row.Balance = snapshot.CurrentBalance
			row.CarriedForward = snapshot.CarriedForward
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// StatementPDF renders one employee's leave statement for the current
// leave year.
func (s *Service) StatementPDF(ctx context.Context, employeeID string, now time.Time) ([]byte, error) {
	emp, err := s.Core.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	detail, err := s.Leave.Balance(ctx, employeeID, now)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Leave year: %s to %s",
		detail.LeaveYearStart.Format("2006-01-02"), detail.LeaveYearEnd.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Annual entitlement: %d days", detail.AnnualEntitlement))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Carried forward: %d days", detail.CarriedForward))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Used this year: %d days", detail.UsedThisYear))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Remaining balance: %d days", detail.CurrentBalance))

	if len(detail.ApprovedSpans) > 0 {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Approved leave")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, span := range detail.ApprovedSpans {
			pdf.Cell(0, 7, fmt.Sprintf("%s to %s",
				span.StartDate.Format("2006-01-02"), span.EndDate.Format("2006-01-02")))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CalendarCSV exports pending and approved leave as CSV rows.
func (s *Service) CalendarCSV(ctx context.Context, roleName, employeeID string) ([]byte, error) {
	rows, err := s.Leave.CalendarExport(ctx, roleName, employeeID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "employee_id", "leave_type", "start_date", "end_date", "status"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.EmployeeID,
			row.LeaveTypeName,
			row.StartDate.Format("2006-01-02"),
			row.EndDate.Format("2006-01-02"),
			row.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
