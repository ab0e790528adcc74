package services

import (
	"context"
	"errors"

	"campusops/model"

	"gorm.io/gorm"
)

// ReportStore persists facility reports and their append-only status
// history. Create writes the report, its initial pending history entry and
// an audit record atomically; TransitionStatus does the same for a status
// change. Reads never return soft-deleted reports.
type ReportStore interface {
	Create(report *model.FacilityReport) error
	FindByID(id string) (*model.FacilityReport, error)
	Save(report *model.FacilityReport) error
	TransitionStatus(report *model.FacilityReport, entry *model.ReportStatusHistory) error
	History(reportID string) ([]model.ReportStatusHistory, error)
}

// ReportNotifier is the slice of notification dispatch the report flow uses.
type ReportNotifier interface {
	ReportStatusChanged(ctx context.Context, reportID, status string) bool
}

type ReportService struct {
	reports  ReportStore
	notifier ReportNotifier
}

func NewReportService(reports ReportStore, notifier ReportNotifier) *ReportService {
	return &ReportService{reports: reports, notifier: notifier}
}

// CreateReport persists a new report in the pending state and notifies
// administrators. The notification is best-effort and cannot undo the write.
func (s *ReportService) CreateReport(ctx context.Context, facilityID, description string, priorityID int, photoPath string, userID *string) (*model.FacilityReport, error) {
	report := &model.FacilityReport{
		FacilityID:  facilityID,
		UserID:      userID,
		PriorityID:  priorityID,
		Description: description,
		Status:      model.ReportStatusPending,
		PhotoPath:   photoPath,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, err
	}

	s.notifier.ReportStatusChanged(ctx, report.ReportID, model.ReportStatusPending)
	return report, nil
}

// UpdateStatus moves a report to a new status. A redundant write (newStatus
// equal to the current status) re-saves the report row but appends no
// history entry and sends no notification. A real transition appends exactly
// one history entry and triggers a best-effort notification after the
// transaction commits.
func (s *ReportService) UpdateStatus(ctx context.Context, reportID, newStatus, note string, actorID *string) (*model.FacilityReport, error) {
	report, err := s.reports.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if report.Status == newStatus {
		if err := s.reports.Save(report); err != nil {
			return nil, err
		}
		return report, nil
	}

	report.Status = newStatus
	entry := &model.ReportStatusHistory{
		ReportID: reportID,
		Status:   newStatus,
		Note:     note,
		ActorID:  actorID,
	}
	if err := s.reports.TransitionStatus(report, entry); err != nil {
		return nil, err
	}

	s.notifier.ReportStatusChanged(ctx, reportID, newStatus)
	return report, nil
}

// UpdateReport edits report fields and, when a status is supplied, routes
// the change through the same transition rules as UpdateStatus.
func (s *ReportService) UpdateReport(ctx context.Context, reportID string, description, status *string, note string, actorID *string) (*model.FacilityReport, error) {
	report, err := s.reports.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if description != nil {
		report.Description = *description
		if err := s.reports.Save(report); err != nil {
			return nil, err
		}
	}

	if status != nil {
		return s.UpdateStatus(ctx, reportID, *status, note, actorID)
	}
	return report, nil
}

// History returns the authoritative audit trail of status changes, oldest
// first.
func (s *ReportService) History(ctx context.Context, reportID string) ([]model.ReportStatusHistory, error) {
	if _, err := s.reports.FindByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return s.reports.History(reportID)
}
