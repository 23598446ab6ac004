package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OrderHistoryLimit is how many recent orders the account page lists.
const OrderHistoryLimit = 10

type AccountConfig struct {
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type AccountService struct {
	users    port.UserRepository
	orders   port.OrderRepository
	validate *validator.Validate
	cost     int
	logger   *zap.Logger

	// dummyHash is compared against when the email is unknown so both failure paths cost the same.
	dummyHash []byte
}

func NewAccountService(users port.UserRepository, orders port.OrderRepository, cfg AccountConfig, logger *zap.Logger) (*AccountService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	return &AccountService{
		users:     users,
		orders:    orders,
		validate:  newValidator(),
		cost:      cost,
		logger:    logger.Named("accounts"),
		dummyHash: dummy,
	}, nil
}

// Account is what the account page shows: the profile and the most recent orders placed with its email.
type Account struct {
	User   domain.User
	Orders []domain.Order
}

func (s *AccountService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = domain.NormalizeEmail(input.Email)

	if err := validateStruct(s.validate, input); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	user, err := s.users.CreateUser(ctx, domain.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.User{}, domain.NewValidationError("email", "an account with this email already exists")
		}
		return domain.User{}, fmt.Errorf("users.CreateUser: %w", err)
	}

	s.logger.Info("account registered", zap.Stringer("userID", user.ID))
	return user, nil
}

// Login returns domain.ErrInvalidCredentials for an unknown email and for a wrong password alike.
func (s *AccountService) Login(ctx context.Context, input domain.LoginInput) (domain.User, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.GetUserByEmail(ctx, input.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
		return domain.User{}, domain.ErrInvalidCredentials
	case err != nil:
		return domain.User{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(input.Password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AccountService) Account(ctx context.Context, userID uuid.UUID) (Account, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return Account{}, fmt.Errorf("users.GetUserByID: %w", err)
	}

	orders, err := s.orders.ListOrdersByEmail(ctx, user.Email, OrderHistoryLimit)
	if err != nil {
		return Account{}, fmt.Errorf("orders.ListOrdersByEmail: %w", err)
	}

	return Account{User: user, Orders: orders}, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.ProfileInput) (domain.User, error) {
	input = domain.ProfileInput{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		ZipCode:   strings.TrimSpace(input.ZipCode),
		Country:   strings.TrimSpace(input.Country),
	}

	if err := validateStruct(s.validate, input); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.UpdateProfile(ctx, domain.User{
		ID:        userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Address:   input.Address(),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("users.UpdateProfile: %w", err)
	}

	return user, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, input domain.PasswordChangeInput) error {
	if err := validateStruct(s.validate, input); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("users.GetUserByID: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(input.CurrentPassword)); err != nil {
		return domain.NewValidationError("currentPassword", "is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("users.UpdatePassword: %w", err)
	}

	s.logger.Info("password changed", zap.Stringer("userID", userID))
	return nil
}
