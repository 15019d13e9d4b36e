package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/e-garderoba/backend/internal/core/domain"
	"github.com/e-garderoba/backend/internal/core/ports"
)

// bcryptCost matches the cost the rest of the system was seeded with.
const bcryptCost = 12

const (
	defaultLimit = 20
	maxLimit     = 100
)

// UserCache abstracts the projection cache (Redis). Cache failures are
// tolerated: a broken cache degrades reads to the repository.
type UserCache interface {
	Get(ctx context.Context, id int64) (*ports.UserView, error)
	Set(ctx context.Context, view *ports.UserView) error
	Invalidate(ctx context.Context, id int64) error
}

// UserService implements the account lifecycle: create, list, read,
// update and delete, with the authorization policy consulted before
// every mutation.
type UserService struct {
	repo   ports.UserRepository
	cache  UserCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache UserCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// Create registers a new account. Admin only; the email must be unused.
func (s *UserService) Create(ctx context.Context, actor domain.Principal, in ports.CreateUserInput) (*ports.UserView, error) {
	if d := domain.CanCreateUser(actor); !d.Allowed {
		s.logger.Debug().Int64("actor_id", actor.ID).Str("reason", d.Reason).Msg("create denied")
		return nil, domain.ErrNoPermission
	}

	taken, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return projectUser(created), nil
}

// List returns one page of users matching filter plus the total match
// count. Manager role or higher required.
func (s *UserService) List(ctx context.Context, actor domain.Principal, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	if d := domain.CanListUsers(actor); !d.Allowed {
		s.logger.Debug().Int64("actor_id", actor.ID).Str("reason", d.Reason).Msg("list denied")
		return nil, domain.ErrNoPermission
	}

	normalizeFilter(&filter)

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, *projectUser(u))
	}
	return &ports.ListUsersResult{Users: views, Total: total}, nil
}

// Get returns a single user by id. Any authenticated actor may read any
// account; this mirrors the long-standing behaviour of the API even
// though list access is manager-gated.
func (s *UserService) Get(ctx context.Context, id int64) (*ports.UserView, error) {
	if view, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("cache read failed, falling back to store")
	} else if view != nil {
		return view, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := projectUser(user)
	if err := s.cache.Set(ctx, view); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("cache write failed")
	}
	return view, nil
}

// Update applies a partial change set to the target account. Checks run
// in a fixed order: existence, then authorization, then email
// uniqueness. Only fields present in the input are touched.
func (s *UserService) Update(ctx context.Context, actor domain.Principal, id int64, in ports.UpdateUserInput) (*ports.UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := domain.UserChanges{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Role:      in.Role,
	}
	if d := domain.CanUpdateUser(actor, user, changes); !d.Allowed {
		s.logger.Debug().
			Int64("actor_id", actor.ID).
			Int64("target_id", id).
			Str("reason", d.Reason).
			Msg("update denied")
		return nil, domain.ErrNoPermission
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := s.repo.ExistsByEmail(ctx, *in.Email)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailExists
		}
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	updated, err := s.repo.Replace(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update user")
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("cache invalidation failed")
	}

	s.logger.Info().Int64("id", id).Int64("actor_id", actor.ID).Msg("user updated")
	return projectUser(updated), nil
}

// Delete removes the target account permanently. The ownership/admin
// test runs on ids alone, before the existence check, so a non-owner
// non-admin is denied even for ids that do not exist.
func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if d := domain.CanDeleteUser(actor, id); !d.Allowed {
		s.logger.Debug().
			Int64("actor_id", actor.ID).
			Int64("target_id", id).
			Str("reason", d.Reason).
			Msg("delete denied")
		return domain.ErrNoPermission
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to delete user")
		return err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("cache invalidation failed")
	}

	s.logger.Info().Int64("id", id).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// normalizeFilter applies pagination defaults and bounds in place.
func normalizeFilter(f *ports.ListUsersFilter) {
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
}

func projectUser(u *domain.User) *ports.UserView {
	return &ports.UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
