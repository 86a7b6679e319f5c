package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docportal/internal/model"
	"docportal/internal/portal"
	repoMocks "docportal/internal/repository/mocks"
)

type failingPortal struct{}

func (failingPortal) URL() string { return "https://down.example.com" }

func (failingPortal) Ping(context.Context) (*portal.Info, error) { return nil, errors.New("dial tcp: refused") }

func (failingPortal) Fetch(context.Context) ([]model.RemoteDocument, error) {
	return nil, errors.New("dial tcp: refused")
}

func newTestSync(client portal.Client) (SyncService, *repoMocks.MockDocumentRepository, *repoMocks.MockSyncStateRepository, *repoMocks.MockActivityRepository) {
	mDocs := new(repoMocks.MockDocumentRepository)
	mState := new(repoMocks.MockSyncStateRepository)
	mAct := new(repoMocks.MockActivityRepository)
	svc := NewSyncService(client, "demo_api_key_12345", mDocs, mState, mAct, WithClock(fixedClock))
	return svc, mDocs, mState, mAct
}

func TestSyncService_Sync(t *testing.T) {
	sim := portal.NewSimulated("https://portal.example.com/api", fixedClock)

	tests := []struct {
		name       string
		typ        SyncType
		setupMocks func(mDocs *repoMocks.MockDocumentRepository)
		want       SyncResult
	}{
		{
			name: "all imports everything on first run",
			typ:  SyncAll,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByExternalID", mock.Anything, int64(1), mock.Anything).Return(nil, sql.ErrNoRows)
				mDocs.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Document) bool {
					return d.ExternalID != nil && d.StoredPath == "portal/"+*d.ExternalID && d.OwnerID == 1
				})).Return(echoCreate, nil)
			},
			want: SyncResult{Imported: 4, Errors: []string{}, TotalProcessed: 4},
		},
		{
			name: "all updates existing rows",
			typ:  SyncAll,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByExternalID", mock.Anything, int64(1), mock.Anything).Return(&model.Document{ID: 1}, nil)
				mDocs.On("UpdateByExternalID", mock.Anything, mock.Anything).Return(int64(1), nil)
			},
			want: SyncResult{Updated: 4, Errors: []string{}, TotalProcessed: 4},
		},
		{
			name: "new only considers vigente documents and skips existing ones",
			typ:  SyncNew,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByExternalID", mock.Anything, int64(1), "ext-001").Return(&model.Document{ID: 1}, nil)
				mDocs.On("FindByExternalID", mock.Anything, int64(1), "ext-003").Return(nil, sql.ErrNoRows)
				mDocs.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Document) bool {
					return *d.ExternalID == "ext-003" && d.Status == model.StatusVigente
				})).Return(echoCreate, nil)
			},
			want: SyncResult{Imported: 1, Skipped: 1, Errors: []string{}, TotalProcessed: 2},
		},
		{
			name: "updated only considers por_vencer documents",
			typ:  SyncUpdated,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByExternalID", mock.Anything, int64(1), "ext-002").Return(&model.Document{ID: 2}, nil)
				mDocs.On("UpdateByExternalID", mock.Anything, mock.MatchedBy(func(d *model.Document) bool {
					return *d.ExternalID == "ext-002" && d.Status == model.StatusPorVencer
				})).Return(int64(1), nil)
			},
			want: SyncResult{Updated: 1, Errors: []string{}, TotalProcessed: 1},
		},
		{
			name: "row errors are counted and do not stop the run",
			typ:  SyncAll,
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByExternalID", mock.Anything, int64(1), "ext-004").Return(nil, errors.New("db fail"))
				mDocs.On("FindByExternalID", mock.Anything, int64(1), mock.Anything).Return(nil, sql.ErrNoRows)
				mDocs.On("Create", mock.Anything, mock.Anything).Return(echoCreate, nil)
			},
			want: SyncResult{Imported: 3, Errors: []string{"could not save Auditoría Interna 2023.pdf"}, TotalProcessed: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mDocs, mState, mAct := newTestSync(sim)
			tt.setupMocks(mDocs)
			mState.On("SaveLastSync", mock.Anything, int64(1), fixedNow).Return(nil)
			mAct.On("Record", mock.Anything, activityFor(model.ActionSyncPortal)).Return(nil)

			res, err := svc.Sync(context.Background(), actor, tt.typ)

			require.NoError(t, err)
			assert.Equal(t, tt.want, *res)
			mDocs.AssertExpectations(t)
			mState.AssertExpectations(t)
			mAct.AssertExpectations(t)
		})
	}
}

func TestSyncService_SyncFailures(t *testing.T) {
	svc, _, mState, _ := newTestSync(failingPortal{})
	_, err := svc.Sync(context.Background(), actor, SyncAll)
	assert.ErrorIs(t, err, ErrPortalUnavailable)
	mState.AssertNotCalled(t, "SaveLastSync", mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.Sync(context.Background(), actor, SyncType("everything"))
	assert.ErrorIs(t, err, ErrInvalidSyncType)
}

func TestSyncService_ConfigAndStatus(t *testing.T) {
	ctx := context.Background()
	last := fixedNow.Add(-24 * time.Hour)
	svc, mDocs, mState, _ := newTestSync(portal.NewSimulated("https://portal.example.com/api", fixedClock))
	mState.On("Get", ctx, int64(1)).Return(&model.SyncState{OwnerID: 1, LastSyncAt: &last}, nil)
	mDocs.On("CountExternal", ctx, int64(1)).Return(int64(4), nil)

	cfg, err := svc.Config(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com/api", cfg.PortalURL)
	assert.Equal(t, "****2345", cfg.APIKey)
	assert.Equal(t, &last, cfg.LastSync)
	assert.Equal(t, int64(4), cfg.SyncedDocuments)

	st, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.TotalImported)
	assert.False(t, st.AutoSync)
}

func TestSyncService_TestConnection(t *testing.T) {
	ok, _, _, _ := newTestSync(portal.NewSimulated("u", fixedClock))
	res, err := ok.TestConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Connected)
	assert.Equal(t, "2.1.0", res.Portal.Version)

	bad, _, _, _ := newTestSync(failingPortal{})
	res, err = bad.TestConnection(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Connected)
	assert.Nil(t, res.Portal)
}

func TestParseSyncType(t *testing.T) {
	for in, want := range map[string]SyncType{"": SyncAll, "all": SyncAll, "new": SyncNew, "updated": SyncUpdated} {
		got, err := ParseSyncType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSyncType("ALL")
	assert.ErrorIs(t, err, ErrInvalidSyncType)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("abcd"))
	assert.Equal(t, "****bcde", MaskSecret("abcde"))
}
