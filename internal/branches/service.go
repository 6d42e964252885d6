package branches

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
)

type branchesRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	FindByID(ctx context.Context, restaurantID, branchID int64) (*models.Branch, error)
	ListActive(ctx context.Context, restaurantID int64) ([]models.Branch, error)
	Deactivate(ctx context.Context, restaurantID, branchID int64) (bool, error)
}

// CreateBranchInput is the payload for opening a new location.
type CreateBranchInput struct {
	Name    string
	Address *string
	City    *string
	Phone   *string
}

// Service manages restaurant locations. The branch ceiling is enforced by
// the request layer before CreateBranch runs.
type Service interface {
	CreateBranch(ctx context.Context, restaurantID int64, input CreateBranchInput) (*models.Branch, error)
	GetBranch(ctx context.Context, restaurantID, branchID int64) (*models.Branch, error)
	ListBranches(ctx context.Context, restaurantID int64) ([]models.Branch, error)
	DeactivateBranch(ctx context.Context, restaurantID, branchID int64) error
}

type service struct {
	repo branchesRepository
}

// NewService builds the branch service.
func NewService(repo branchesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateBranch(ctx context.Context, restaurantID int64, input CreateBranchInput) (*models.Branch, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch name is required")
	}

	branch := &models.Branch{
		RestaurantID: restaurantID,
		Name:         name,
		Address:      input.Address,
		City:         input.City,
		Phone:        input.Phone,
		Active:       true,
	}
	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create branch")
	}
	return branch, nil
}

func (s *service) GetBranch(ctx context.Context, restaurantID, branchID int64) (*models.Branch, error) {
	if restaurantID <= 0 || branchID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and branch id are required")
	}

	branch, err := s.repo.FindByID(ctx, restaurantID, branchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch")
	}
	if branch == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
	}
	return branch, nil
}

func (s *service) ListBranches(ctx context.Context, restaurantID int64) ([]models.Branch, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	rows, err := s.repo.ListActive(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branches")
	}
	return rows, nil
}

func (s *service) DeactivateBranch(ctx context.Context, restaurantID, branchID int64) error {
	if restaurantID <= 0 || branchID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and branch id are required")
	}

	deactivated, err := s.repo.Deactivate(ctx, restaurantID, branchID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate branch")
	}
	if !deactivated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "active branch not found")
	}
	return nil
}
