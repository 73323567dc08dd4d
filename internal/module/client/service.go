package client

import (
	"context"
	"strings"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
)

// clientService implements domain.ClientService.
type clientService struct {
	repo domain.ClientRepository
}

// NewClientService creates a ClientService with the given repository.
func NewClientService(repo domain.ClientRepository) domain.ClientService {
	return &clientService{repo: repo}
}

// CreateClient validates input, stamps ownership, and persists the client.
func (s *clientService) CreateClient(ctx context.Context, actor domain.Actor, client *domain.Client) (*domain.Client, error) {
	client.CompanyName = strings.TrimSpace(client.CompanyName)
	if client.CompanyName == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "companyName is required", nil)
	}
	client.CreatedBy = actor.ID

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client the actor is allowed to see.
func (s *clientService) GetClient(ctx context.Context, actor domain.Actor, id uint) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && client.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

// ListClients returns one page of clients visible to the actor.
func (s *clientService) ListClients(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.Client], error) {
	return s.repo.List(ctx, q, visibilityScope(actor))
}

// UpdateClient loads the client, checks visibility, applies changes, and saves.
func (s *clientService) UpdateClient(ctx context.Context, actor domain.Actor, id uint, in *domain.Client) (*domain.Client, error) {
	existing, err := s.GetClient(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	companyName := strings.TrimSpace(in.CompanyName)
	if companyName == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "companyName is required", nil)
	}

	existing.CompanyName = companyName
	existing.ContactName = in.ContactName
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.Address = in.Address
	existing.Industry = in.Industry
	existing.Notes = in.Notes

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteClient removes a client the actor is allowed to see.
func (s *clientService) DeleteClient(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := s.GetClient(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// visibilityScope returns nil for admins and an ownership scope otherwise.
func visibilityScope(actor domain.Actor) listquery.Scope {
	if actor.Admin() {
		return nil
	}
	return listquery.OwnedBy("clients.created_by", actor.ID)
}
