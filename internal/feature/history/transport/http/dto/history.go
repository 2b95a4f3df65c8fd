// Package dto はhistoryフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"textbook_backend/internal/feature/history/domain/entity"
)

// AppendReq は/chat/historyのPOSTリクエストボディを表します。
type AppendReq struct {
	SessionID string `json:"session_id" binding:"required,max=64"`
	Role      string `json:"role" binding:"required,oneof=user bot"`
	Content   string `json:"content" binding:"required"`
}

// MessageItem は履歴レスポンス内の1メッセージを表します。
type MessageItem struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryRes は/chat/history/:session_idのレスポンスボディを表します。
type HistoryRes struct {
	SessionID string        `json:"session_id"`
	Messages  []MessageItem `json:"messages"`
}

// NewHistoryRes converts domain messages into their API representation.
func NewHistoryRes(sessionID string, msgs []entity.Message) HistoryRes {
	items := make([]MessageItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, MessageItem{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return HistoryRes{SessionID: sessionID, Messages: items}
}
