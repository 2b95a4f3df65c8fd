// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"textbook_backend/internal/feature/history/domain/entity"
	"textbook_backend/internal/feature/history/transport/http/dto"
	"textbook_backend/internal/feature/history/usecase"
)

// HistoryUsecase はチャット履歴操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type HistoryUsecase interface {
	// Append はメッセージを履歴に追加します。
	Append(ctx context.Context, sessionID, role, content string) (*entity.Message, error)
	// Recent はセッションの直近メッセージを時系列順で返します。
	Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error)
}

// HistoryHandler はチャット履歴のHTTPリクエストを処理します。
type HistoryHandler struct {
	history HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(history HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Append はメッセージを履歴に保存するAPIです。
// - バリデーションエラー時は400を返却
// - 成功時は201を返却
func (h *HistoryHandler) Append(c *gin.Context) {
	var req dto.AppendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("history append validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.history.Append(c.Request.Context(), req.SessionID, req.Role, req.Content); err != nil {
		if errors.Is(err, usecase.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		slog.Error("history append failed", "error", err, "session_id", req.SessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "ok"})
}

// Recent はセッションの直近メッセージを取得するAPIです。
// limitクエリパラメータで件数を指定できます（デフォルト5件）。
func (h *HistoryHandler) Recent(c *gin.Context) {
	sessionID := c.Param("session_id")

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	msgs, err := h.history.Recent(c.Request.Context(), sessionID, limit)
	if err != nil {
		slog.Error("history fetch failed", "error", err, "session_id", sessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryRes(sessionID, msgs))
}
