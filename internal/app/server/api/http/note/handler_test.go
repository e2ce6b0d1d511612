package note

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notesync/internal/app/server/api/http/middleware/auth"
	"notesync/internal/domain/note"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID string, filter note.ListFilter) ([]note.Note, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]note.Note), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, userID, noteID string) (*note.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID string, req note.CreateRequest) (*note.Note, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID, noteID string, req note.UpdateRequest) (*note.Note, error) {
	args := m.Called(ctx, userID, noteID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID, noteID string, hard bool) error {
	args := m.Called(ctx, userID, noteID, hard)
	return args.Error(0)
}

func TestHandler_list(t *testing.T) {
	authCtx := auth.WithUserID(context.Background(), "u1")

	t.Run("returns user notes", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		svc.On("List", mock.Anything, "u1", note.ListFilter{}).
			Return([]note.Note{{ID: "n1", UserID: "u1", Title: "hello"}}, nil)

		out, err := h.list(authCtx, &listInput{})

		require.NoError(t, err)
		require.Len(t, out.Body, 1)
		assert.Equal(t, "n1", out.Body[0].ID)
		svc.AssertExpectations(t)
	})

	t.Run("folder filter is forwarded", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		folderID := "f1"
		svc.On("List", mock.Anything, "u1", note.ListFilter{FolderID: &folderID}).
			Return([]note.Note{}, nil)

		_, err := h.list(authCtx, &listInput{FolderID: "f1"})

		require.NoError(t, err)
		svc.AssertExpectations(t)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.list(context.Background(), &listInput{})

		assert.Error(t, err)
	})
}

func TestHandler_find(t *testing.T) {
	authCtx := auth.WithUserID(context.Background(), "u1")

	t.Run("found", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		svc.On("Find", mock.Anything, "u1", "n1").
			Return(&note.Note{ID: "n1", UserID: "u1"}, nil)

		out, err := h.find(authCtx, &findInput{ID: "n1"})

		require.NoError(t, err)
		assert.Equal(t, "n1", out.Body.ID)
	})

	t.Run("missing note is 404", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		svc.On("Find", mock.Anything, "u1", "missing").
			Return(nil, note.ErrNotFound)

		_, err := h.find(authCtx, &findInput{ID: "missing"})

		assert.Error(t, err)
	})
}

func TestHandler_create(t *testing.T) {
	authCtx := auth.WithUserID(context.Background(), "u1")

	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)

	svc.On("Create", mock.Anything, "u1", note.CreateRequest{Title: "hello", Content: "body"}).
		Return(&note.Note{ID: "n1", UserID: "u1", Title: "hello", Content: "body"}, nil)

	input := &createInput{}
	input.Body.Title = "hello"
	input.Body.Content = "body"

	out, err := h.create(authCtx, input)

	require.NoError(t, err)
	assert.Equal(t, "n1", out.Body.ID)
	svc.AssertExpectations(t)
}

func TestHandler_delete(t *testing.T) {
	authCtx := auth.WithUserID(context.Background(), "u1")

	t.Run("soft delete by default", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		svc.On("Delete", mock.Anything, "u1", "n1", false).Return(nil)

		out, err := h.delete(authCtx, &deleteInput{ID: "n1"})

		require.NoError(t, err)
		assert.Equal(t, "Ok", out.Body.Status)
		svc.AssertExpectations(t)
	})

	t.Run("hard delete is forwarded", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		svc.On("Delete", mock.Anything, "u1", "n1", true).Return(nil)

		_, err := h.delete(authCtx, &deleteInput{ID: "n1", Hard: true})

		require.NoError(t, err)
		svc.AssertExpectations(t)
	})
}
