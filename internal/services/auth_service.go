package services

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/internal/repository"
	appErr "github.com/topicboard/engine/pkg/errors"
)

// AuthService owns credential handling and token issuance.
type AuthService interface {
	Register(ctx context.Context, username, password, nickname string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	// TokenTTL reports the lifetime stamped into issued tokens.
	TokenTTL() time.Duration
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	ttl        time.Duration
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, secret []byte, ttl time.Duration, bcryptCost int) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, hmacSecret: secret, ttl: ttl, bcryptCost: bcryptCost}
}

func (s *authService) Register(ctx context.Context, username, password, nickname string) (*models.User, error) {
	ph, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	// Role is never taken from the request; admins are seeded out of band.
	user := &models.User{
		Username:     username,
		PasswordHash: string(ph),
		Nickname:     nickname,
		Role:         models.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByUsername(ctx, username, &user); err != nil {
		// Same failure for unknown user and wrong password.
		return "", nil, appErr.New(appErr.CodeInvalid, "invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeInvalid, "invalid username or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"exp": time.Now().Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, &user, nil
}

func (s *authService) TokenTTL() time.Duration { return s.ttl }
