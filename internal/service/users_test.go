package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booknest/backend/internal/db"
	"github.com/booknest/backend/internal/model"
)

type fakeAdminStore struct {
	users map[uuid.UUID]*model.User
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeAdminStore) add(role string) *model.User {
	user := &model.User{
		ID:        uuid.New(),
		Username:  "user-" + uuid.NewString()[:8],
		Email:     uuid.NewString()[:8] + "@x.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeAdminStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminStore) ListUsers(_ context.Context, limit, offset int) ([]model.User, error) {
	var all []model.User
	for _, u := range f.users {
		all = append(all, *u)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeAdminStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeAdminStore) UpdateUser(_ context.Context, id uuid.UUID, update db.UserUpdate) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	return user, nil
}

func (f *fakeAdminStore) DeleteUser(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func asActor(u *model.User) *model.AuthUser {
	return &model.AuthUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func TestUpdateSelfOrAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewUserService(store)

	alice := store.add(model.RoleUser)
	bob := store.add(model.RoleUser)
	admin := store.add(model.RoleAdmin)

	name := "renamed"
	_, err := svc.Update(context.Background(), asActor(bob), alice.ID, model.UpdateUserRequest{Username: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	profile, err := svc.Update(context.Background(), asActor(alice), alice.ID, model.UpdateUserRequest{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", profile.Username)

	_, err = svc.Update(context.Background(), asActor(admin), bob.ID, model.UpdateUserRequest{Username: &name})
	assert.NoError(t, err)
}

func TestUpdateDropsRoleChangeForNonAdmins(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewUserService(store)

	alice := store.add(model.RoleUser)
	admin := store.add(model.RoleAdmin)
	elevated := model.RoleAdmin

	profile, err := svc.Update(context.Background(), asActor(alice), alice.ID, model.UpdateUserRequest{Role: &elevated})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, profile.Role, "self-service role escalation must be ignored")

	profile, err = svc.Update(context.Background(), asActor(admin), alice.ID, model.UpdateUserRequest{Role: &elevated})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, profile.Role)
}

func TestDeleteSelfOrAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewUserService(store)

	alice := store.add(model.RoleUser)
	bob := store.add(model.RoleUser)
	admin := store.add(model.RoleAdmin)

	err := svc.Delete(context.Background(), asActor(bob), alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), asActor(alice), alice.ID))
	require.NoError(t, svc.Delete(context.Background(), asActor(admin), bob.ID))

	err = svc.Delete(context.Background(), asActor(admin), alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersPagination(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewUserService(store)
	for i := 0; i < 12; i++ {
		store.add(model.RoleUser)
	}

	result, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, result.Users, 10, "defaults apply when page/limit are unset")
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
}
