package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"textbook_backend/internal/feature/auth/domain/entity"
	"textbook_backend/internal/platform/password"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// 比較の前にメールアドレスは小文字に正規化されます。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Update applies only the non-nil fields of patch to the user and
	// refreshes UpdatedAt. It returns ErrUserNotFound if the id is unknown.
	Update(ctx context.Context, id string, patch UserPatch) (*entity.User, error)

	// Delete removes the user permanently, reporting whether a row existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// UserPatch is a partial update: only non-nil fields are applied.
type UserPatch struct {
	Name               *string
	SoftwareBackground *string
	HardwareBackground *string
	IsActive           *bool
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Email              string
	Password           string
	Name               *string
	SoftwareBackground *string
	HardwareBackground *string
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Email and password are deliberately not updatable through this path.
type ProfileUpdate struct {
	Name               *string
	SoftwareBackground *string
	HardwareBackground *string
}

// userUsecase は認証とユーザーライフサイクルのビジネスロジックを実装します。
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// normalizeEmail lower-cases and trims an email so lookups and uniqueness
// are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、作成したレコードを返します。
// パスワードの長さ・形式の検証はスキーマ層（transport/http/dto）の責務です。
func (u *userUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)

	// 既存チェック。同時登録のレースはストアのユニーク制約が最終的に防ぎます。
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:                 uuid.NewString(),
		Email:              email,
		HashedPassword:     hashed,
		Name:               in.Name,
		SoftwareBackground: in.SoftwareBackground,
		HardwareBackground: in.HardwareBackground,
		IsActive:           true,
		IsSuperuser:        false,
		IsVerified:         false,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// レースで先を越された場合もErrEmailAlreadyExistsとして扱います。
		return nil, err
	}
	return user, nil
}

// Authenticate はメールアドレスとパスワードでユーザーを認証します。
// 未知のメールアドレス・パスワード不一致・無効化済みアカウントはすべて
// 同一のErrInvalidCredentialsになります（アカウントの存在を漏らさないため）。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *userUsecase) Authenticate(ctx context.Context, email, plain string) (*entity.User, error) {
	user, findErr := u.users.FindByEmail(ctx, normalizeEmail(email))
	if findErr != nil && !errors.Is(findErr, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", findErr)
	}

	// ユーザー未検出時はダミーダイジェストと比較し、bcrypt比較が常に実行されるようにします。
	digest := password.DummyDigest
	if findErr == nil {
		digest = user.HashedPassword
	}
	ok := password.Verify(plain, digest)

	if findErr != nil || !ok || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile patches only the supplied profile fields (name, backgrounds).
func (u *userUsecase) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*entity.User, error) {
	return u.users.Update(ctx, id, UserPatch{
		Name:               in.Name,
		SoftwareBackground: in.SoftwareBackground,
		HardwareBackground: in.HardwareBackground,
	})
}

// Deactivate はアカウントを無効化します（ソフトデリート）。
// 以降の認証はAuthenticateと同様に一様に失敗します。
func (u *userUsecase) Deactivate(ctx context.Context, id string) (*entity.User, error) {
	inactive := false
	return u.users.Update(ctx, id, UserPatch{IsActive: &inactive})
}

// Delete はアカウントを完全に削除します（ハードデリート、取り消し不可）。
func (u *userUsecase) Delete(ctx context.Context, id string) (bool, error) {
	return u.users.Delete(ctx, id)
}
