package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textbook_backend/internal/feature/history/domain/entity"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockHistoryUsecase はテスト用のHistoryUsecaseモック実装です。
type mockHistoryUsecase struct {
	AppendFunc func(ctx context.Context, sessionID, role, content string) (*entity.Message, error)
	RecentFunc func(ctx context.Context, sessionID string, limit int) ([]entity.Message, error)
}

func (m *mockHistoryUsecase) Append(ctx context.Context, sessionID, role, content string) (*entity.Message, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, sessionID, role, content)
	}
	return &entity.Message{SessionID: sessionID, Role: role, Content: content}, nil
}

func (m *mockHistoryUsecase) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, sessionID, limit)
	}
	return nil, nil
}

func newTestRouter(h *HistoryHandler) *gin.Engine {
	r := gin.New()
	r.POST("/chat/history", h.Append)
	r.GET("/chat/history/:session_id", h.Recent)
	return r
}

func TestHistoryHandler_Append(t *testing.T) {
	t.Run("successful append returns 201", func(t *testing.T) {
		h := NewHistoryHandler(&mockHistoryUsecase{})
		r := newTestRouter(h)

		body, _ := json.Marshal(gin.H{
			"session_id": "session-1",
			"role":       "user",
			"content":    "What is a VLA model?",
		})
		req := httptest.NewRequest(http.MethodPost, "/chat/history", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation failures return 400", func(t *testing.T) {
		h := NewHistoryHandler(&mockHistoryUsecase{})
		r := newTestRouter(h)

		tests := []struct {
			name string
			body gin.H
		}{
			{"missing session_id", gin.H{"role": "user", "content": "x"}},
			{"missing content", gin.H{"session_id": "s", "role": "user"}},
			{"unknown role", gin.H{"session_id": "s", "role": "system", "content": "x"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				body, _ := json.Marshal(tt.body)
				req := httptest.NewRequest(http.MethodPost, "/chat/history", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})

	t.Run("usecase failure returns 500", func(t *testing.T) {
		h := NewHistoryHandler(&mockHistoryUsecase{
			AppendFunc: func(_ context.Context, _, _, _ string) (*entity.Message, error) {
				return nil, errors.New("database error")
			},
		})
		r := newTestRouter(h)

		body, _ := json.Marshal(gin.H{"session_id": "s", "role": "user", "content": "x"})
		req := httptest.NewRequest(http.MethodPost, "/chat/history", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHistoryHandler_Recent(t *testing.T) {
	t.Run("returns messages in order", func(t *testing.T) {
		now := time.Now()
		h := NewHistoryHandler(&mockHistoryUsecase{
			RecentFunc: func(_ context.Context, sessionID string, limit int) ([]entity.Message, error) {
				assert.Equal(t, "session-1", sessionID)
				return []entity.Message{
					{SessionID: sessionID, Role: "user", Content: "question", CreatedAt: now},
					{SessionID: sessionID, Role: "bot", Content: "answer", CreatedAt: now},
				}, nil
			},
		})
		r := newTestRouter(h)

		req := httptest.NewRequest(http.MethodGet, "/chat/history/session-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res struct {
			SessionID string `json:"session_id"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Messages, 2)
		assert.Equal(t, "question", res.Messages[0].Content)
		assert.Equal(t, "answer", res.Messages[1].Content)
	})

	t.Run("limit query parameter is forwarded", func(t *testing.T) {
		var gotLimit int
		h := NewHistoryHandler(&mockHistoryUsecase{
			RecentFunc: func(_ context.Context, _ string, limit int) ([]entity.Message, error) {
				gotLimit = limit
				return nil, nil
			},
		})
		r := newTestRouter(h)

		req := httptest.NewRequest(http.MethodGet, "/chat/history/session-1?limit=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, gotLimit)
	})

	t.Run("non-numeric limit returns 400", func(t *testing.T) {
		h := NewHistoryHandler(&mockHistoryUsecase{})
		r := newTestRouter(h)

		req := httptest.NewRequest(http.MethodGet, "/chat/history/session-1?limit=ten", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
