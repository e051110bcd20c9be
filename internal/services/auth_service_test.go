package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/internal/repository"
	appErr "github.com/topicboard/engine/pkg/errors"
)

var testSecret = []byte("unit-test-secret-0123456789")

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, bcrypt.MinCost)
}

func TestRegisterStoresHashAndDefaultRole(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "newbie", "hunter22", "The Newbie")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, models.RoleUser, user.Role)
	require.NotEqual(t, "hunter22", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "taken", "hunter22", "First")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "taken", "hunter22", "Second")
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))
}

func TestLoginIssuesTokenForSubject(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "logan", "hunter22", "Logan")
	require.NoError(t, err)

	signed, got, err := svc.Login(ctx, "logan", "hunter22")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)
	require.True(t, token.Valid)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, strconv.FormatUint(uint64(user.ID), 10), sub)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "victim", "hunter22", "Victim")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "victim", "wrong-pass")
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	// Unknown usernames fail identically.
	_, _, err = svc.Login(ctx, "ghost", "hunter22")
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}
