package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	return s.repo.List(ctx, filter)
}

// ListAR returns accounts usable as an order's receivable account.
func (s *Service) ListAR(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx, ListFilter{OnlyAR: true})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	return s.repo.Get(ctx, id)
}

// Exists reports whether id names an account.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, shared.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (Account, error) {
	number := strings.TrimSpace(req.AccountNumber)
	if err := s.ensureNumberFree(ctx, number, uuid.Nil); err != nil {
		return Account{}, err
	}

	a := Account{
		AccountNumber: number,
		Title:         strings.TrimSpace(req.Title),
		Type:          req.Type,
		IsAR:          req.Type == AccountTypeReceivable,
		IsGL:          true,
	}
	if req.IsAR != nil {
		a.IsAR = *req.IsAR
	}
	if req.IsGL != nil {
		a.IsGL = *req.IsGL
	}
	if req.Inactive != nil {
		a.Inactive = *req.Inactive
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (Account, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}

	if req.AccountNumber != nil {
		number := strings.TrimSpace(*req.AccountNumber)
		if err := s.ensureNumberFree(ctx, number, id); err != nil {
			return Account{}, err
		}
		a.AccountNumber = number
	}
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		a.Type = *req.Type
		// A type change re-derives the receivable flag unless the caller sets it.
		a.IsAR = a.Type == AccountTypeReceivable
	}
	if req.IsAR != nil {
		a.IsAR = *req.IsAR
	}
	if req.IsGL != nil {
		a.IsGL = *req.IsGL
	}
	if req.Inactive != nil {
		a.Inactive = *req.Inactive
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureNumberFree(ctx context.Context, number string, self uuid.UUID) error {
	existing, err := s.repo.GetByNumber(ctx, number)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return fmt.Errorf("%w: account number %q is already in use", shared.ErrConflict, number)
	}
	return nil
}
