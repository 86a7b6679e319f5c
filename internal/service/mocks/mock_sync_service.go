package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docportal/internal/model"
	"docportal/internal/service"
)

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Config(ctx context.Context, ownerID int64) (*service.SyncConfig, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncConfig), args.Error(1)
}

func (m *MockSyncService) TestConnection(ctx context.Context) (*service.ConnectionResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConnectionResult), args.Error(1)
}

func (m *MockSyncService) Sync(ctx context.Context, actor model.Actor, typ service.SyncType) (*service.SyncResult, error) {
	args := m.Called(ctx, actor, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}

func (m *MockSyncService) Status(ctx context.Context, ownerID int64) (*service.SyncStatus, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncStatus), args.Error(1)
}
