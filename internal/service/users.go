package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/booknest/backend/internal/db"
	"github.com/booknest/backend/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type UserAdminStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, update db.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserService struct {
	users UserAdminStore
}

func NewUserService(users UserAdminStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *UserService) List(ctx context.Context, page, limit int) (model.UserListResponse, error) {
	page, limit = clampPage(page, limit)

	users, err := s.users.ListUsers(ctx, limit, (page-1)*limit)
	if err != nil {
		return model.UserListResponse{}, err
	}
	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return model.UserListResponse{}, err
	}

	profiles := make([]model.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}

	return model.UserListResponse{
		Users:      profiles,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

// Update applies a partial profile change. Only the owner or an admin may
// touch a record; role changes by non-admins are dropped, and passwords are
// never updatable through this path.
func (s *UserService) Update(ctx context.Context, actor *model.AuthUser, id uuid.UUID, req model.UpdateUserRequest) (model.Profile, error) {
	if actor.Role != model.RoleAdmin && actor.ID != id {
		return model.Profile{}, ErrForbidden
	}

	update := db.UserUpdate{
		Username: req.Username,
		IsActive: req.IsActive,
	}
	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		update.Email = &lowered
	}
	if req.Role != nil && actor.Role == model.RoleAdmin {
		update.Role = req.Role
	}

	user, err := s.users.UpdateUser(ctx, id, update)
	if err != nil {
		switch {
		case db.IsNoRows(err):
			return model.Profile{}, ErrNotFound
		case db.IsUniqueViolation(err):
			return model.Profile{}, ErrConflict
		}
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *UserService) Delete(ctx context.Context, actor *model.AuthUser, id uuid.UUID) error {
	if actor.Role != model.RoleAdmin && actor.ID != id {
		return ErrForbidden
	}

	deleted, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
