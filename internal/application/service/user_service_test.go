package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sangkips/kwitansi-api/internal/domain/entity"
	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/internal/domain/repository/mocks"
	"github.com/sangkips/kwitansi-api/pkg/apperror"
	"github.com/sangkips/kwitansi-api/pkg/pagination"
)

func newUserService(t *testing.T) (*UserService, *mocks.MockUserRepository) {
	t.Helper()
	repo := mocks.NewMockUserRepository(gomock.NewController(t))
	return NewUserService(repo), repo
}

func TestUserService_ListUsersClampsPaging(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().
		List(gomock.Any(), &pagination.PaginationParams{Page: 1, PerPage: 100}, "budi").
		Return([]entity.User{{DisplayName: "Budi"}}, int64(101), nil)

	out, err := svc.ListUsers(context.Background(), &ListUsersInput{Page: 0, PerPage: 500, Search: "budi"})
	require.NoError(t, err)
	assert.Len(t, out.Users, 1)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.True(t, out.Pagination.HasNext)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("promotes bendahara", func(t *testing.T) {
		svc, repo := newUserService(t)
		user := &entity.User{ID: uuid.New(), Role: enum.UserRoleBendahara}

		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		repo.EXPECT().Update(gomock.Any(), user).Return(nil)

		got, err := svc.UpdateUserRole(ctx, &UpdateUserRoleInput{ActorID: actorID, UserID: user.ID, Role: enum.UserRoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, enum.UserRoleAdmin, got.Role)
	})

	t.Run("keeps the last admin", func(t *testing.T) {
		svc, repo := newUserService(t)
		user := &entity.User{ID: uuid.New(), Role: enum.UserRoleAdmin}

		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		repo.EXPECT().CountAdmins(gomock.Any()).Return(int64(1), nil)

		_, err := svc.UpdateUserRole(ctx, &UpdateUserRoleInput{ActorID: actorID, UserID: user.ID, Role: enum.UserRoleBendahara})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
		assert.Equal(t, enum.UserRoleAdmin, user.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.UpdateUserRole(ctx, &UpdateUserRoleInput{ActorID: actorID, UserID: uuid.New(), Role: "kepala"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo := newUserService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.UpdateUserRole(ctx, &UpdateUserRoleInput{ActorID: actorID, UserID: id, Role: enum.UserRoleAdmin})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses self delete", func(t *testing.T) {
		svc, _ := newUserService(t)
		id := uuid.New()

		err := svc.DeleteUser(ctx, id, id)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("deletes admin when another remains", func(t *testing.T) {
		svc, repo := newUserService(t)
		user := &entity.User{ID: uuid.New(), Role: enum.UserRoleAdmin}

		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		repo.EXPECT().CountAdmins(gomock.Any()).Return(int64(2), nil)
		repo.EXPECT().Delete(gomock.Any(), user.ID).Return(nil)

		require.NoError(t, svc.DeleteUser(ctx, uuid.New(), user.ID))
	})

	t.Run("deletes bendahara without counting admins", func(t *testing.T) {
		svc, repo := newUserService(t)
		user := &entity.User{ID: uuid.New(), Role: enum.UserRoleBendahara}

		repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		repo.EXPECT().Delete(gomock.Any(), user.ID).Return(nil)

		require.NoError(t, svc.DeleteUser(ctx, uuid.New(), user.ID))
	})
}
