package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docportal/internal/model"
)

type MockSyncStateRepository struct {
	mock.Mock
}

func (m *MockSyncStateRepository) Get(ctx context.Context, ownerID int64) (*model.SyncState, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SyncState), args.Error(1)
}

func (m *MockSyncStateRepository) SaveLastSync(ctx context.Context, ownerID int64, at time.Time) error {
	args := m.Called(ctx, ownerID, at)
	return args.Error(0)
}
