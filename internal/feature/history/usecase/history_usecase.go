// Package usecase はhistoryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"textbook_backend/internal/feature/history/domain/entity"
)

const (
	// DefaultLimit は取得する直近メッセージ数のデフォルトです。
	DefaultLimit = 5
	// MaxLimit は一度に取得できるメッセージ数の上限です。
	MaxLimit = 50
)

// ErrInvalidRole is returned when a message role is neither "user" nor "bot".
var ErrInvalidRole = errors.New("invalid message role")

// MessageRepository はチャット履歴の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type MessageRepository interface {
	// Append persists a new message.
	Append(ctx context.Context, msg *entity.Message) error

	// Recent retrieves the last limit messages for a session in
	// chronological order (oldest first). An unknown session yields an
	// empty slice, not an error.
	Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error)
}

// historyUsecase はチャット履歴のビジネスロジックを実装します。
type historyUsecase struct {
	messages MessageRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(messages MessageRepository) *historyUsecase {
	return &historyUsecase{messages: messages}
}

// Append はメッセージを履歴に追加します。roleは"user"または"bot"のみ許可します。
func (u *historyUsecase) Append(ctx context.Context, sessionID, role, content string) (*entity.Message, error) {
	if role != entity.RoleUser && role != entity.RoleBot {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	msg := &entity.Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := u.messages.Append(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Recent はセッションの直近メッセージを時系列順（古い順）で返します。
// limitが0以下の場合はDefaultLimit、MaxLimitを超える場合はMaxLimitに丸めます。
func (u *historyUsecase) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return u.messages.Recent(ctx, sessionID, limit)
}
