package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"docportal/internal/auth"
	"docportal/internal/logger"
	"docportal/internal/model"
	"docportal/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
)

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token string
	User  *model.SessionUser
}

// AuthService signs users in and out and resolves session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string, actor model.Actor) (*LoginResult, error)
	// Logout revokes the session token; it stays revoked until it would have expired.
	Logout(ctx context.Context, session *model.SessionUser, actor model.Actor) error
	// Authenticate returns the session behind a token, or auth.ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*model.SessionUser, error)
	CreateUser(ctx context.Context, username, password, fullName, email string) (*model.User, error)
}

type authService struct {
	users     repository.UserRepository
	activity  repository.ActivityRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
	blacklist auth.Blacklist
	log       *logger.Logger
}

// NewAuthService constructs a new AuthService. activity may be nil.
func NewAuthService(users repository.UserRepository, activity repository.ActivityRepository, hasher *auth.PasswordHasher,
	tokens *auth.TokenManager, blacklist auth.Blacklist, log *logger.Logger) AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &authService{
		users:     users,
		activity:  activity,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		log:       log.Component("auth"),
	}
}

func (s *authService) Login(ctx context.Context, username, password string, actor model.Actor) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, session, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	actor.UserID = u.ID
	recordActivity(ctx, s.activity, s.log, actor, model.ActionLogin, "Signed in: "+u.Username)
	return &LoginResult{Token: token, User: session}, nil
}

func (s *authService) Logout(ctx context.Context, session *model.SessionUser, actor model.Actor) error {
	if session == nil {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	actor.UserID = session.ID
	recordActivity(ctx, s.activity, s.log, actor, model.ActionLogout, "Signed out: "+session.Username)
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.SessionUser, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.blacklist.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, auth.ErrInvalidToken
	}
	return session, nil
}

func (s *authService) CreateUser(ctx context.Context, username, password, fullName, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Email:        strings.TrimSpace(email),
		Active:       true,
	})
}
