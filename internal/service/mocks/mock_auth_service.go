package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docportal/internal/model"
	"docportal/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string, actor model.Actor) (*service.LoginResult, error) {
	args := m.Called(ctx, username, password, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, session *model.SessionUser, actor model.Actor) error {
	args := m.Called(ctx, session, actor)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*model.SessionUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SessionUser), args.Error(1)
}

func (m *MockAuthService) CreateUser(ctx context.Context, username, password, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, username, password, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
