package jobseeker

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// listDefinition declares the job seeker list's filter capabilities. Both
// filters live on the record, so they push down; skill matching is a
// substring match over the free-form skills field.
func listDefinition() listquery.Definition[domain.JobSeeker] {
	return listquery.Definition[domain.JobSeeker]{
		Table: "job_seekers",
		Fields: []listquery.Field[domain.JobSeeker]{
			{
				Param:  "statusFilter",
				Column: "job_seekers.status",
				Match:  listquery.MatchExact,
				Eval: func(s *domain.JobSeeker, v string) bool {
					return s.Status == v
				},
			},
			{
				Param:  "skillFilter",
				Column: "job_seekers.skills",
				Match:  listquery.MatchSubstring,
				Eval: func(s *domain.JobSeeker, v string) bool {
					return strings.Contains(strings.ToLower(s.Skills), strings.ToLower(v))
				},
			},
		},
		SearchText: func(s *domain.JobSeeker) []string {
			return []string{s.FirstName, s.LastName, s.Email, s.Skills}
		},
	}
}

// jobSeekerRepository implements domain.JobSeekerRepository using GORM.
type jobSeekerRepository struct {
	db     *gorm.DB
	engine *listquery.Engine[domain.JobSeeker]
}

// NewJobSeekerRepository creates a JobSeekerRepository backed by the given database.
func NewJobSeekerRepository(db *gorm.DB) domain.JobSeekerRepository {
	return &jobSeekerRepository{
		db:     db,
		engine: listquery.NewEngine(db, listDefinition()),
	}
}

func (r *jobSeekerRepository) Create(ctx context.Context, seeker *domain.JobSeeker) error {
	if err := r.db.WithContext(ctx).Create(seeker).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *jobSeekerRepository) GetByID(ctx context.Context, id uint) (*domain.JobSeeker, error) {
	var seeker domain.JobSeeker
	if err := r.db.WithContext(ctx).First(&seeker, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &seeker, nil
}

func (r *jobSeekerRepository) List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[domain.JobSeeker], error) {
	page, err := r.engine.List(ctx, q, scope)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

func (r *jobSeekerRepository) Update(ctx context.Context, seeker *domain.JobSeeker) error {
	if err := r.db.WithContext(ctx).Save(seeker).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *jobSeekerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.JobSeeker{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
