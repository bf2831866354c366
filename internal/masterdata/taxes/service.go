package taxes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

// AccountChecker confirms a GL account exists.
type AccountChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	accounts AccountChecker
}

func NewService(repo Repository, accounts AccountChecker) *Service {
	return &Service{repo: repo, accounts: accounts}
}

func (s *Service) List(ctx context.Context) ([]Tax, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Tax, error) {
	return s.repo.Get(ctx, id)
}

// Rate returns the percentage rate of a tax, or a wrapped shared.ErrNotFound.
func (s *Service) Rate(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return s.repo.Rate(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateTaxRequest) (Tax, error) {
	tax := Tax{
		TaxType:           strings.TrimSpace(req.TaxType),
		Rate:              req.Rate,
		TaxAuthorityName:  req.TaxAuthorityName,
		BankAccountNumber: req.BankAccountNumber,
		VendorOrCustomer:  req.VendorOrCustomer,
		VendorTaxOffice:   req.VendorTaxOffice,
		GLAccountID:       req.GLAccountID,
	}
	if err := s.validate(tax); err != nil {
		return Tax{}, err
	}
	if err := s.ensureAccount(ctx, tax.GLAccountID); err != nil {
		return Tax{}, err
	}
	return s.repo.Create(ctx, tax)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateTaxRequest) (Tax, error) {
	tax, err := s.repo.Get(ctx, id)
	if err != nil {
		return Tax{}, err
	}
	if req.TaxType != nil {
		tax.TaxType = strings.TrimSpace(*req.TaxType)
	}
	if req.Rate != nil {
		tax.Rate = *req.Rate
	}
	if req.TaxAuthorityName != nil {
		tax.TaxAuthorityName = req.TaxAuthorityName
	}
	if req.BankAccountNumber != nil {
		tax.BankAccountNumber = req.BankAccountNumber
	}
	if req.VendorOrCustomer != nil {
		tax.VendorOrCustomer = *req.VendorOrCustomer
	}
	if req.VendorTaxOffice != nil {
		tax.VendorTaxOffice = req.VendorTaxOffice
	}
	if req.GLAccountID != nil {
		if err := s.ensureAccount(ctx, *req.GLAccountID); err != nil {
			return Tax{}, err
		}
		tax.GLAccountID = *req.GLAccountID
	}
	if err := s.validate(tax); err != nil {
		return Tax{}, err
	}
	return s.repo.Update(ctx, tax)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureAccount(ctx context.Context, id uuid.UUID) error {
	ok, err := s.accounts.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check gl account: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: gl account %s", shared.ErrNotFound, id)
	}
	return nil
}
