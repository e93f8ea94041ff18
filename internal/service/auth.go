package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gamezone/internal/model"
	"gamezone/internal/repository"
)

// Claims carries the standard registered claims plus the owner's user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

type Auth struct {
	users    UserDirectory
	tokens   TokenStore
	secret   []byte
	validity time.Duration
}

func NewAuth(users UserDirectory, tokens TokenStore, secret []byte, validity time.Duration) *Auth {
	return &Auth{users: users, tokens: tokens, secret: secret, validity: validity}
}

// Login verifies the password and issues a signed token. The token is also
// recorded in the token store; the store record, not the signature alone, is
// what keeps a session alive.
func (a *Auth) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(a.validity)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID.String(),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := a.tokens.Save(ctx, signed, user.ID.String(), a.validity); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &model.LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}

// Logout revokes the token by deleting its store record.
func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.tokens.Delete(ctx, token)
}

// VerifyToken decides whether a credential is currently valid and resolves
// its owner. Three checks, in order: signature and expiry, revocation
// against the token store, identity resolution. Every credential failure
// comes back as ErrUnauthorized; only storage trouble surfaces differently.
func (a *Auth) VerifyToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		slog.Debug("token rejected", "reason", err)
		return nil, ErrUnauthorized
	}

	// A structurally valid token may still have been revoked by logout.
	if _, err := a.tokens.Find(ctx, tokenString); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("revocation check: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		// Fail closed: a token whose owner no longer exists does not
		// authenticate, even though it decodes and is still in the store.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("identity resolution: %w", err)
	}

	return user, nil
}
