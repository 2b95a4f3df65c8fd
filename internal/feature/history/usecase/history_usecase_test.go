package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textbook_backend/internal/feature/history/domain/entity"
)

// mockMessageRepository はテスト用のMessageRepositoryモック実装です。
type mockMessageRepository struct {
	AppendFunc func(ctx context.Context, msg *entity.Message) error
	RecentFunc func(ctx context.Context, sessionID string, limit int) ([]entity.Message, error)
}

func (m *mockMessageRepository) Append(ctx context.Context, msg *entity.Message) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, sessionID, limit)
	}
	return nil, nil
}

func TestHistoryUsecase_Append(t *testing.T) {
	t.Run("valid roles are accepted", func(t *testing.T) {
		var stored *entity.Message
		mockRepo := &mockMessageRepository{
			AppendFunc: func(_ context.Context, msg *entity.Message) error {
				stored = msg
				return nil
			},
		}
		uc := NewHistoryUsecase(mockRepo)

		msg, err := uc.Append(context.Background(), "session-1", entity.RoleUser, "What is SLAM?")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "session-1", msg.SessionID)
		assert.Equal(t, entity.RoleUser, msg.Role)

		_, err = uc.Append(context.Background(), "session-1", entity.RoleBot, "SLAM stands for ...")
		assert.NoError(t, err)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		appendCalled := false
		mockRepo := &mockMessageRepository{
			AppendFunc: func(_ context.Context, _ *entity.Message) error {
				appendCalled = true
				return nil
			},
		}
		uc := NewHistoryUsecase(mockRepo)

		_, err := uc.Append(context.Background(), "session-1", "system", "nope")
		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.False(t, appendCalled)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockMessageRepository{
			AppendFunc: func(_ context.Context, _ *entity.Message) error { return expectedErr },
		}
		uc := NewHistoryUsecase(mockRepo)

		_, err := uc.Append(context.Background(), "session-1", entity.RoleUser, "hello")
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestHistoryUsecase_Recent(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero uses default", 0, DefaultLimit},
		{"negative uses default", -3, DefaultLimit},
		{"within range passes through", 10, 10},
		{"above cap is clamped", 500, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			mockRepo := &mockMessageRepository{
				RecentFunc: func(_ context.Context, _ string, limit int) ([]entity.Message, error) {
					gotLimit = limit
					return []entity.Message{}, nil
				},
			}
			uc := NewHistoryUsecase(mockRepo)

			_, err := uc.Recent(context.Background(), "session-1", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)
		})
	}
}
