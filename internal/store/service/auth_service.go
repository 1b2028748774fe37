package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/Srinu-likitha/store-management-mvp/internal/config"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/apperr"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

const refreshKeyPrefix = "token:refresh:"

// TokenPair is the login/refresh response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthService issues and rotates JWT token pairs. Refresh tokens are
// one-time use, keyed by jti in redis.
type AuthService struct {
	users *repository.UserRepository
	rdb   *redis.Client
	cfg   *config.Config
}

func NewAuthService(users *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{users: users, rdb: rdb, cfg: cfg}
}

// Login verifies credentials and issues a token pair. The same message is
// returned for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return nil, apperr.Validation("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Validation("User not found")
	}
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token, invalidating the presented one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		return nil, apperr.Unauthorized("Invalid token claims")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, apperr.Unauthorized("Invalid token claims")
	}

	if s.rdb == nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	userID, err := s.rdb.Get(ctx, refreshKeyPrefix+jti).Result()
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	s.rdb.Del(ctx, refreshKeyPrefix+jti)
	return s.issueTokens(ctx, user)
}

// Me loads the current user.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperr.Unauthorized("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":   user.ID,
		"uid":   user.ID,
		"email": user.Email,
		"iss":   s.cfg.JWT.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":   uuid.New().String(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "refresh",
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.RefreshTokenExpire).Unix(),
		"jti":  refreshJti,
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, refreshKeyPrefix+refreshJti, user.ID, s.cfg.JWT.RefreshTokenExpire)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}

// HashPassword produces the bcrypt hash stored on a user row.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
