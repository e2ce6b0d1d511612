package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func TestService_CreateAndValidate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	var storedHash string
	mockRepo.On("Create", mock.Anything, "u-1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	token, err := service.Create(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The repository sees only the hash, never the token itself.
	expected := sha256.Sum256([]byte(token))
	assert.Equal(t, hex.EncodeToString(expected[:]), storedHash)

	mockRepo.On("Validate", mock.Anything, storedHash).Return("u-1", nil)

	userID, err := service.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	mockRepo.AssertExpectations(t)
}
