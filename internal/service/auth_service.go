package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/bizdir/internal/model"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/jwt"
	"github.com/xxxsen/bizdir/internal/pkg/password"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
	"github.com/xxxsen/bizdir/internal/repo"
)

type Session struct {
	Token     string           `json:"token"`
	ExpiresAt int64            `json:"expires_at"`
	User      *model.AdminUser `json:"user"`
}

type AuthService struct {
	admins *repo.AdminUserRepo
	signer *jwt.Signer
}

func NewAuthService(admins *repo.AdminUserRepo, signer *jwt.Signer) *AuthService {
	return &AuthService{admins: admins, signer: signer}
}

// CreateAdmin is used by the CLI to bootstrap admin accounts.
func (s *AuthService) CreateAdmin(ctx context.Context, username, plainPassword string) (*model.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, appErr.ErrInvalid
	}
	if err := password.Validate(plainPassword); err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalid, err)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.AdminUser{
		ID:           newID(),
		Username:     username,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.admins.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login reports unknown users and wrong passwords the same way.
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*Session, error) {
	user, err := s.admins.GetByUsername(ctx, strings.TrimSpace(username))
	if appErr.IsNotFound(err) {
		return nil, appErr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, appErr.ErrUnauthorized
		}
		return nil, err
	}
	token, expiresAt, err := s.signer.Sign(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt.Unix(), User: user}, nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id string) (*model.AdminUser, error) {
	return s.admins.GetByID(ctx, id)
}
