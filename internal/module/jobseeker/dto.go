package jobseeker

import "github.com/staffdesk/staffdesk/internal/domain"

// CreateJobSeekerRequest represents the input for creating a job seeker.
type CreateJobSeekerRequest struct {
	FirstName  string `json:"firstName" binding:"required,min=1,max=100"`
	LastName   string `json:"lastName" binding:"required,min=1,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=50"`
	Skills     string `json:"skills" binding:"max=1000"`
	Status     string `json:"status" binding:"omitempty,oneof=available placed inactive"`
	ResumePath string `json:"resumePath" binding:"max=500"`
}

// UpdateJobSeekerRequest represents the input for updating a job seeker.
type UpdateJobSeekerRequest struct {
	FirstName  string `json:"firstName" binding:"required,min=1,max=100"`
	LastName   string `json:"lastName" binding:"required,min=1,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=50"`
	Skills     string `json:"skills" binding:"max=1000"`
	Status     string `json:"status" binding:"omitempty,oneof=available placed inactive"`
	ResumePath string `json:"resumePath" binding:"max=500"`
}

func (r *CreateJobSeekerRequest) toDomain() *domain.JobSeeker {
	return &domain.JobSeeker{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Skills:     r.Skills,
		Status:     r.Status,
		ResumePath: r.ResumePath,
	}
}

func (r *UpdateJobSeekerRequest) toDomain() *domain.JobSeeker {
	return &domain.JobSeeker{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Skills:     r.Skills,
		Status:     r.Status,
		ResumePath: r.ResumePath,
	}
}
