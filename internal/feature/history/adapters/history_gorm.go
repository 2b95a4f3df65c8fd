// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"textbook_backend/internal/feature/history/domain/entity"
	"textbook_backend/internal/feature/history/usecase"
)

// historyGorm はMessageRepositoryインターフェースのGORM実装です。
type historyGorm struct {
	db *gorm.DB
}

// historyGormがMessageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MessageRepository = (*historyGorm)(nil)

// NewHistoryGorm は指定されたgorm.DB接続でhistoryGormの新しいインスタンスを生成します。
func NewHistoryGorm(db *gorm.DB) *historyGorm {
	return &historyGorm{db: db}
}

// Append はメッセージをデータベースに追加します。
func (r *historyGorm) Append(ctx context.Context, msg *entity.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// Recent はセッションの直近limit件を取得し、時系列順（古い順）に並べ替えて返します。
// 新しい順でlimit件を取り、その後反転します。
func (r *historyGorm) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Message, error) {
	var msgs []entity.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// 古い順に反転
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
