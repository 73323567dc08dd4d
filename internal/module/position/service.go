package position

import (
	"context"
	"strings"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/listquery"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// numberPrefix is carried by every generated position reference number.
const numberPrefix = "POS-"

// createAttempts bounds retries when a concurrent writer claims the
// freshly allocated reference number before our insert lands.
const createAttempts = 3

var validStatuses = map[string]bool{
	domain.PositionOpen:   true,
	domain.PositionFilled: true,
	domain.PositionClosed: true,
}

// positionService implements domain.PositionService.
type positionService struct {
	repo  domain.PositionRepository
	alloc *sequence.Allocator
}

// NewPositionService creates a PositionService with the given repository
// and number allocator.
func NewPositionService(repo domain.PositionRepository, alloc *sequence.Allocator) domain.PositionService {
	return &positionService{repo: repo, alloc: alloc}
}

// CreatePosition allocates a reference number from the "positions"
// namespace and persists the position. A uniqueness conflict on the number
// triggers a re-allocation and retry; conflicts on anything else surface
// to the caller unchanged.
func (s *positionService) CreatePosition(ctx context.Context, actor domain.Actor, position *domain.Position) (*domain.Position, error) {
	if err := validatePosition(position); err != nil {
		return nil, err
	}
	if position.Status == "" {
		position.Status = domain.PositionOpen
	}
	position.CreatedBy = actor.ID

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		num, err := s.alloc.Next(ctx, s.repo.ReferenceNumbers())
		if err != nil {
			return nil, err
		}
		position.ReferenceNumber = numberPrefix + num

		err = s.repo.Create(ctx, position)
		if err == nil {
			return position, nil
		}
		if !domain.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *positionService) GetPosition(ctx context.Context, actor domain.Actor, id uint) (*domain.Position, error) {
	position, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && position.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return position, nil
}

func (s *positionService) ListPositions(ctx context.Context, actor domain.Actor, q listquery.Query) (*listquery.Page[domain.Position], error) {
	return s.repo.List(ctx, q, visibilityScope(actor))
}

// UpdatePosition applies changes to a position. The reference number is
// immutable once allocated.
func (s *positionService) UpdatePosition(ctx context.Context, actor domain.Actor, id uint, in *domain.Position) (*domain.Position, error) {
	existing, err := s.GetPosition(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validatePosition(in); err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.ClientID = in.ClientID
	existing.Client = nil
	existing.Description = in.Description
	existing.PayRate = in.PayRate
	existing.BillRate = in.BillRate
	if in.Status != "" {
		existing.Status = in.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *positionService) DeletePosition(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := s.GetPosition(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validatePosition(position *domain.Position) error {
	if strings.TrimSpace(position.Title) == "" {
		return domain.NewAppError(domain.CodeValidation, "title is required", nil)
	}
	if position.ClientID == 0 {
		return domain.NewAppError(domain.CodeValidation, "clientId is required", nil)
	}
	if position.Status != "" && !validStatuses[position.Status] {
		return domain.NewAppError(domain.CodeValidation, "invalid status", nil)
	}
	if position.PayRate.IsNegative() || position.BillRate.IsNegative() {
		return domain.NewAppError(domain.CodeValidation, "rates must not be negative", nil)
	}
	return nil
}

func visibilityScope(actor domain.Actor) listquery.Scope {
	if actor.Admin() {
		return nil
	}
	return listquery.OwnedBy("positions.created_by", actor.ID)
}
