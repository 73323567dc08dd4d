package domain

import (
	"context"

	"github.com/staffdesk/staffdesk/internal/listquery"
)

// Job seeker statuses.
const (
	JobSeekerAvailable = "available"
	JobSeekerPlaced    = "placed"
	JobSeekerInactive  = "inactive"
)

// JobSeeker represents a candidate on the agency's books.
// ResumePath is an opaque document-storage path; the service never opens it.
type JobSeeker struct {
	BaseModel
	FirstName  string `gorm:"column:first_name;size:100;not null" json:"firstName"`
	LastName   string `gorm:"column:last_name;size:100;not null" json:"lastName"`
	Email      string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"size:50" json:"phone"`
	Skills     string `gorm:"size:1000" json:"skills"`
	Status     string `gorm:"size:20;not null;default:available" json:"status"`
	ResumePath string `gorm:"column:resume_path;size:500" json:"resumePath"`
	CreatedBy  uint   `gorm:"column:created_by" json:"createdBy"`
}

// JobSeekerRepository defines the data access interface for job seekers.
type JobSeekerRepository interface {
	Create(ctx context.Context, seeker *JobSeeker) error
	GetByID(ctx context.Context, id uint) (*JobSeeker, error)
	List(ctx context.Context, q listquery.Query, scope listquery.Scope) (*listquery.Page[JobSeeker], error)
	Update(ctx context.Context, seeker *JobSeeker) error
	Delete(ctx context.Context, id uint) error
}

// JobSeekerService defines the business logic interface for job seekers.
type JobSeekerService interface {
	CreateJobSeeker(ctx context.Context, actor Actor, seeker *JobSeeker) (*JobSeeker, error)
	GetJobSeeker(ctx context.Context, actor Actor, id uint) (*JobSeeker, error)
	ListJobSeekers(ctx context.Context, actor Actor, q listquery.Query) (*listquery.Page[JobSeeker], error)
	UpdateJobSeeker(ctx context.Context, actor Actor, id uint, seeker *JobSeeker) (*JobSeeker, error)
	DeleteJobSeeker(ctx context.Context, actor Actor, id uint) error
}
