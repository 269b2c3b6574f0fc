package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

const maxPageLimit = 100

// UserService implements the account ledger.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, domain.ErrPasswordRequired
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Deposit:      0,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter ports.PageFilter) (*ports.UserPage, error) {
	filter = normalizePage(filter)

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.UserPage{
		Items:      users,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Update applies a partial patch. Nil fields are no-ops; non-nil fields are
// applied even at their zero value, so Deposit=0 genuinely clears the
// balance. Callers enforce who may patch what: the profile route strips
// Role before calling so a principal can never self-promote.
func (s *UserService) Update(ctx context.Context, id string, patch ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		if *patch.Username == "" {
			return nil, domain.ErrUsernameRequired
		}
		if *patch.Username != user.Username {
			if _, err := s.repo.FindByUsername(ctx, *patch.Username); err == nil {
				return nil, domain.ErrUsernameTaken
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			user.Username = *patch.Username
		}
	}

	if patch.Password != nil && *patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *patch.Role
	}

	if patch.Deposit != nil {
		if *patch.Deposit < 0 {
			return nil, domain.ErrNegativeDeposit
		}
		user.Deposit = *patch.Deposit
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Deposit(ctx context.Context, userID string, amount int) (*domain.User, error) {
	if amount <= 0 || !domain.AllowedCoin(amount) {
		return nil, domain.ErrInvalidCoin
	}

	user, err := s.repo.AddDeposit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Int("coin", amount).Int("deposit", user.Deposit).Msg("coin deposited")
	return user, nil
}

func (s *UserService) ResetDeposit(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.ResetDeposit(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("deposit reset")
	return user, nil
}

func normalizePage(f ports.PageFilter) ports.PageFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	return f
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
