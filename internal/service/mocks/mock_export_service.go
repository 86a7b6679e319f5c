package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docportal/internal/export"
	"docportal/internal/model"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, user *model.SessionUser, actor model.Actor, format string) (*export.File, error) {
	args := m.Called(ctx, user, actor, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.File), args.Error(1)
}
