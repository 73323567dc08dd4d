package jobseeker

import (
	"context"
	"strings"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
)

// validStatuses are the job seeker statuses accepted on create and update.
var validStatuses = map[string]bool{
	domain.JobSeekerAvailable: true,
	domain.JobSeekerPlaced:    true,
	domain.JobSeekerInactive:  true,
}

// jobSeekerService implements domain.JobSeekerService.
type jobSeekerService struct {
	repo domain.JobSeekerRepository
}

// NewJobSeekerService creates a JobSeekerService with the given repository.
func NewJobSeekerService(repo domain.JobSeekerRepository) domain.JobSeekerService {
	return &jobSeekerService{repo: repo}
}

func (s *jobSeekerService) CreateJobSeeker(ctx context.Context, actor domain.Actor, seeker *domain.JobSeeker) (*domain.JobSeeker, error) {
	if err := validateSeeker(seeker); err != nil {
		return nil, err
	}
	if seeker.Status == "" {
		seeker.Status = domain.JobSeekerAvailable
	}
	seeker.CreatedBy = actor.ID

	if err := s.repo.Create(ctx, seeker); err != nil {
		return nil, err
	}
	return seeker, nil
}

func (s *jobSeekerService) GetJobSeeker(ctx context.Context, actor domain.Actor, id uint) (*domain.JobSeeker, error) {
	seeker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && seeker.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return seeker, nil
}

func (s *jobSeekerService) ListJobSeekers(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.JobSeeker], error) {
	return s.repo.List(ctx, q, visibilityScope(actor))
}

func (s *jobSeekerService) UpdateJobSeeker(ctx context.Context, actor domain.Actor, id uint, in *domain.JobSeeker) (*domain.JobSeeker, error) {
	existing, err := s.GetJobSeeker(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateSeeker(in); err != nil {
		return nil, err
	}

	existing.FirstName = strings.TrimSpace(in.FirstName)
	existing.LastName = strings.TrimSpace(in.LastName)
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.Skills = in.Skills
	existing.ResumePath = in.ResumePath
	if in.Status != "" {
		existing.Status = in.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *jobSeekerService) DeleteJobSeeker(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := s.GetJobSeeker(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// validateSeeker checks required names and the status value when present.
func validateSeeker(seeker *domain.JobSeeker) error {
	if strings.TrimSpace(seeker.FirstName) == "" {
		return domain.NewAppError(domain.CodeValidation, "firstName is required", nil)
	}
	if strings.TrimSpace(seeker.LastName) == "" {
		return domain.NewAppError(domain.CodeValidation, "lastName is required", nil)
	}
	if seeker.Status != "" && !validStatuses[seeker.Status] {
		return domain.NewAppError(domain.CodeValidation, "invalid status", nil)
	}
	return nil
}

func visibilityScope(actor domain.Actor) listquery.Scope {
	if actor.Admin() {
		return nil
	}
	return listquery.OwnedBy("job_seekers.created_by", actor.ID)
}
