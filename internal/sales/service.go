package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/pagination"
)

type salesRepository interface {
	WithTx(tx *gorm.DB) *Repository
	Create(ctx context.Context, sale *models.Sale) error
	ListRecent(ctx context.Context, restaurantID int64, limit int) ([]models.Sale, error)
}

type usageCounters interface {
	WithTx(tx *gorm.DB) *usage.Repository
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateSaleInput is the payload for recording a completed transaction.
type CreateSaleInput struct {
	BranchID    *int64
	StaffUserID int64
	Total       decimal.Decimal
	PaymentType string
}

// Service records POS transactions. The monthly transaction counter is
// bumped inside the same database transaction as the sale insert: the
// counter has no recount path, so the two writes must commit together.
type Service interface {
	CreateSale(ctx context.Context, restaurantID int64, input CreateSaleInput) (*models.Sale, error)
	ListSales(ctx context.Context, restaurantID int64, limit int) ([]models.Sale, error)
}

type service struct {
	tx    txRunner
	repo  salesRepository
	usage usageCounters
	now   func() time.Time
}

// NewService builds the sales service. The clock is injectable so period
// boundaries can be pinned in tests; nil defaults to time.Now.
func NewService(tx txRunner, repo salesRepository, usageRepo usageCounters, now func() time.Time) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if usageRepo == nil {
		return nil, fmt.Errorf("usage repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{tx: tx, repo: repo, usage: usageRepo, now: now}, nil
}

func (s *service) CreateSale(ctx context.Context, restaurantID int64, input CreateSaleInput) (*models.Sale, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if input.StaffUserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff user id is required")
	}
	if input.Total.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total cannot be negative")
	}

	paymentType := input.PaymentType
	if paymentType == "" {
		paymentType = "efectivo"
	}

	sale := &models.Sale{
		RestaurantID: restaurantID,
		BranchID:     input.BranchID,
		StaffUserID:  input.StaffUserID,
		Total:        input.Total,
		PaymentType:  paymentType,
	}

	period := usage.PeriodOf(s.now())
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, sale); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		if err := s.usage.WithTx(tx).Increment(ctx, restaurantID, enums.ResourceTypeTransactions, 1, period); err != nil {
			return fmt.Errorf("bump transaction counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
	}

	return sale, nil
}

func (s *service) ListSales(ctx context.Context, restaurantID int64, limit int) ([]models.Sale, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	rows, err := s.repo.ListRecent(ctx, restaurantID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return rows, nil
}
