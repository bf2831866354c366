package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]InventoryItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

// Exists reports whether id names an inventory item.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (InventoryItem, error) {
	item := InventoryItem{
		SKU:            strings.TrimSpace(req.SKU),
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		UnitPrice:      req.UnitPrice,
		QuantityOnHand: nullable(req.QuantityOnHand),
	}
	if err := s.validate(item); err != nil {
		return InventoryItem{}, err
	}
	if err := s.ensureSKUFree(ctx, item.SKU, uuid.Nil); err != nil {
		return InventoryItem{}, err
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (InventoryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return InventoryItem{}, err
	}
	if req.SKU != nil {
		item.SKU = strings.TrimSpace(*req.SKU)
		if err := s.ensureSKUFree(ctx, item.SKU, id); err != nil {
			return InventoryItem{}, err
		}
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.QuantityOnHand != nil {
		item.QuantityOnHand = nullable(req.QuantityOnHand)
	}
	if err := s.validate(item); err != nil {
		return InventoryItem{}, err
	}
	return s.repo.Update(ctx, item)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := s.repo.GetBySKU(ctx, sku)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return fmt.Errorf("%w: SKU %q already exists", shared.ErrConflict, sku)
	}
	return nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
