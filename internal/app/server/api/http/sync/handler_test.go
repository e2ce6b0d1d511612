package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api/http/middleware/auth"
	"notesync/internal/domain/note"
	"notesync/internal/domain/sync"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Sync(ctx context.Context, userID string, req sync.Request) (*sync.Response, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.Response), args.Error(1)
}

func TestHandler_sync(t *testing.T) {
	authCtx := auth.WithUserID(context.Background(), "u1")

	t.Run("forwards batch and returns delta", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		req := sync.Request{
			Notes: []sync.NoteState{{ID: "n1", Title: "hello", UpdatedAt: time.Now()}},
		}
		resp := &sync.Response{
			Notes:         []note.Note{{ID: "n1", UserID: "u1", Title: "hello"}},
			SyncTimestamp: time.Now(),
		}
		svc.On("Sync", mock.Anything, "u1", req).Return(resp, nil)

		out, err := h.sync(authCtx, &syncInput{Body: req})

		require.NoError(t, err)
		assert.Equal(t, *resp, out.Body)
		svc.AssertExpectations(t)
	})

	t.Run("storage failure maps to retryable error", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		svc.On("Sync", mock.Anything, "u1", mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := h.sync(authCtx, &syncInput{})

		assert.Error(t, err)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.sync(context.Background(), &syncInput{})

		assert.Error(t, err)
	})
}
