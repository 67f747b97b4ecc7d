package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"todoapp/internal/api/models"
	"todoapp/internal/api/repository"
	"todoapp/internal/auth"
	"todoapp/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload for an identity token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for authentication business logic:
// registering users, checking credentials, and issuing, verifying and
// revoking identity tokens.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	IssueToken(user *models.User) (string, error)
	VerifyToken(ctx context.Context, tokenString string) (*models.Identity, error)
	Revoke(ctx context.Context, tokenString string) error
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, req *models.ChangePasswordRequest) error
}

type authService struct {
	userRepo repository.UserRepository
	revoked  auth.RevocationStore
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService. revoked may be nil, in which
// case tokens cannot be revoked and VerifyToken skips the denylist check.
func NewAuthService(userRepo repository.UserRepository, revoked auth.RevocationStore, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		revoked:  revoked,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register handles user registration. The password is stored only as a
// bcrypt hash; the role defaults to "user" when the request omits it.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Username:       req.Username,
		IsActive:       true,
		Role:           role,
		HashedPassword: string(hashedPassword),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// Authenticate validates a username/password pair against the stored hash.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrBadPassword
	}

	return user, nil
}

// Login authenticates the request and returns a signed token on success.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return "", err
	}

	tokenString, err := s.IssueToken(user)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "user logged in", "username", user.Username, "user_id", user.ID)
	return tokenString, nil
}

// IssueToken produces a signed JWT embedding the user's id, username and
// role, expiring at now + the configured TTL.
func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks the signature, expiry and revocation state of the
// token and returns the identity it asserts.
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*models.Identity, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return &models.Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Revoke denylists the token until its natural expiry. Revoking an already
// expired token succeeds without touching the store.
func (s *authService) Revoke(ctx context.Context, tokenString string) error {
	if s.revoked == nil {
		return ErrRevocationUnavailable
	}

	claims, err := s.parseClaims(tokenString)
	if errors.Is(err, ErrTokenExpired) {
		return nil
	}
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}

	return s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// GetUser loads the user record behind an identity.
func (s *authService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a hash of
// the new one.
func (s *authService) ChangePassword(ctx context.Context, userID int64, req *models.ChangePasswordRequest) error {
	if err := validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.CurrentPassword)); err != nil {
		return ErrBadPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return err
	}

	slog.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

func (s *authService) parseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
