package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkasbib/restopos-backend/pkg/config"
	"github.com/forkasbib/restopos-backend/pkg/db"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/security"
)

const tempPasswordLength = 12

type staffRepository interface {
	Create(ctx context.Context, user *models.StaffUser) error
	FindByID(ctx context.Context, restaurantID, userID int64) (*models.StaffUser, error)
	ListActive(ctx context.Context, restaurantID int64) ([]models.StaffUser, error)
	Deactivate(ctx context.Context, restaurantID, userID int64) (bool, error)
}

// CreateStaffInput is the payload for registering a staff account. An
// empty Password asks the service to generate a temporary one.
type CreateStaffInput struct {
	Name     string
	Username string
	Password string
	Role     enums.StaffRole
	BranchID *int64
}

// CreatedStaff carries the new account plus the temporary password when
// one was generated. The password is only ever returned here.
type CreatedStaff struct {
	User         *models.StaffUser
	TempPassword string
}

// Service manages staff accounts. The user ceiling is enforced by the
// request layer before CreateStaff runs.
type Service interface {
	CreateStaff(ctx context.Context, restaurantID int64, input CreateStaffInput) (*CreatedStaff, error)
	GetStaff(ctx context.Context, restaurantID, userID int64) (*models.StaffUser, error)
	ListStaff(ctx context.Context, restaurantID int64) ([]models.StaffUser, error)
	DeactivateStaff(ctx context.Context, restaurantID, userID int64) error
}

type service struct {
	repo        staffRepository
	passwordCfg config.PasswordConfig
}

// NewService builds the staff service.
func NewService(repo staffRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) CreateStaff(ctx context.Context, restaurantID int64, input CreateStaffInput) (*CreatedStaff, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	if name == "" || username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and username are required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", input.Role))
	}

	password := input.Password
	tempPassword := ""
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temporary password")
		}
		password = generated
		tempPassword = generated
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.StaffUser{
		RestaurantID: restaurantID,
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Role:         input.Role,
		BranchID:     input.BranchID,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") || db.IsUniqueViolation(err, "username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create staff account")
	}

	return &CreatedStaff{User: user, TempPassword: tempPassword}, nil
}

func (s *service) GetStaff(ctx context.Context, restaurantID, userID int64) (*models.StaffUser, error) {
	if restaurantID <= 0 || userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and user id are required")
	}

	user, err := s.repo.FindByID(ctx, restaurantID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find staff account")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "staff account not found")
	}
	return user, nil
}

func (s *service) ListStaff(ctx context.Context, restaurantID int64) ([]models.StaffUser, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	rows, err := s.repo.ListActive(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list staff accounts")
	}
	return rows, nil
}

func (s *service) DeactivateStaff(ctx context.Context, restaurantID, userID int64) error {
	if restaurantID <= 0 || userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and user id are required")
	}

	deactivated, err := s.repo.Deactivate(ctx, restaurantID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate staff account")
	}
	if !deactivated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "active staff account not found")
	}
	return nil
}
