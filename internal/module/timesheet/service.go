package timesheet

import (
	"context"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
)

var validStatuses = map[string]bool{
	domain.TimesheetDraft:     true,
	domain.TimesheetSubmitted: true,
	domain.TimesheetApproved:  true,
}

// timesheetService implements domain.TimesheetService.
type timesheetService struct {
	repo domain.TimesheetRepository
}

// NewTimesheetService creates a TimesheetService with the given repository.
func NewTimesheetService(repo domain.TimesheetRepository) domain.TimesheetService {
	return &timesheetService{repo: repo}
}

func (s *timesheetService) CreateTimesheet(ctx context.Context, actor domain.Actor, ts *domain.Timesheet) (*domain.Timesheet, error) {
	if err := validateTimesheet(ts); err != nil {
		return nil, err
	}
	if ts.Status == "" {
		ts.Status = domain.TimesheetDraft
	}
	ts.CreatedBy = actor.ID

	if err := s.repo.Create(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *timesheetService) GetTimesheet(ctx context.Context, actor domain.Actor, id uint) (*domain.Timesheet, error) {
	ts, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && ts.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return ts, nil
}

func (s *timesheetService) ListTimesheets(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.Timesheet], error) {
	return s.repo.List(ctx, q, visibilityScope(actor))
}

func (s *timesheetService) UpdateTimesheet(ctx context.Context, actor domain.Actor, id uint, in *domain.Timesheet) (*domain.Timesheet, error) {
	existing, err := s.GetTimesheet(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateTimesheet(in); err != nil {
		return nil, err
	}

	existing.JobSeekerID = in.JobSeekerID
	existing.JobSeeker = nil
	existing.PositionID = in.PositionID
	existing.Position = nil
	existing.WeekEnding = in.WeekEnding
	existing.Hours = in.Hours
	if in.Status != "" {
		existing.Status = in.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *timesheetService) DeleteTimesheet(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := s.GetTimesheet(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateTimesheet(ts *domain.Timesheet) error {
	if ts.JobSeekerID == 0 {
		return domain.NewAppError(domain.CodeValidation, "jobSeekerId is required", nil)
	}
	if ts.PositionID == 0 {
		return domain.NewAppError(domain.CodeValidation, "positionId is required", nil)
	}
	if ts.WeekEnding.IsZero() {
		return domain.NewAppError(domain.CodeValidation, "weekEnding is required", nil)
	}
	if ts.Hours.IsNegative() {
		return domain.NewAppError(domain.CodeValidation, "hours must not be negative", nil)
	}
	if ts.Status != "" && !validStatuses[ts.Status] {
		return domain.NewAppError(domain.CodeValidation, "invalid status", nil)
	}
	return nil
}

func visibilityScope(actor domain.Actor) listquery.Scope {
	if actor.Admin() {
		return nil
	}
	return listquery.OwnedBy("timesheets.created_by", actor.ID)
}
