package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docportal/internal/model"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Record(ctx context.Context, a model.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
