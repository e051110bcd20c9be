package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
)

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &models.User{Username: "dup", PasswordHash: "x", Nickname: "Dup"}))
	err := repo.Create(ctx, &models.User{Username: "dup", PasswordHash: "y", Nickname: "Other"})
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
}

func TestUserGetByUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created := mustCreateUser(t, db, "findme", models.RoleAdmin)

	var got models.User
	require.NoError(t, repo.GetByUsername(ctx, "findme", &got))
	require.Equal(t, created.ID, got.ID)
	require.True(t, got.IsAdmin())

	err := repo.GetByUsername(ctx, "nobody", &got)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}
