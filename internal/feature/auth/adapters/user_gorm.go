// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"textbook_backend/internal/feature/auth/domain/entity"
	"textbook_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// userGorm はUserRepositoryインターフェースのGORM実装です。
// 本番はPostgreSQL、テストはインメモリSQLiteで動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// isDuplicateKey reports whether err is a unique-constraint violation,
// either the raw Postgres error or the gorm-translated one (sqlite in tests).
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create はユーザーをデータベースに追加します。
// メールアドレスの一意インデックスに衝突した場合、usecase.ErrEmailAlreadyExistsを返します。
// 存在チェックと挿入は別クエリのため、同時登録のレースはこの制約が最終的に防ぎます。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// 入力は比較前に小文字へ正規化されます（格納値は常に小文字）。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update はパッチに含まれるフィールドだけを適用し、更新後のレコードを返します。
// GORMがupdated_atを自動で更新します。IDが存在しない場合はusecase.ErrUserNotFoundを返します。
// 同一IDへの同時更新はlast-writer-winsです（楽観ロックなし）。
func (r *userGorm) Update(ctx context.Context, id string, patch usecase.UserPatch) (*entity.User, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.SoftwareBackground != nil {
		updates["software_background"] = *patch.SoftwareBackground
	}
	if patch.HardwareBackground != nil {
		updates["hardware_background"] = *patch.HardwareBackground
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, usecase.ErrUserNotFound
		}
	}

	return r.FindByID(ctx, id)
}

// Delete はユーザーを完全に削除し、行が存在したかどうかを返します。
func (r *userGorm) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
