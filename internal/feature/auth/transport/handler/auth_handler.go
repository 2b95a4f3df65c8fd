// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"textbook_backend/internal/feature/auth/domain/entity"
	"textbook_backend/internal/feature/auth/transport/http/dto"
	"textbook_backend/internal/feature/auth/usecase"
	"textbook_backend/internal/platform/token"
)

// UserUsecase は認証・ユーザーライフサイクル操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// Signup は新規ユーザーを登録し、作成したレコードを返します。
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	// Authenticate はメールアドレスとパスワードでユーザーを認証します。
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	// UpdateProfile は指定されたプロフィールフィールドだけを更新します。
	UpdateProfile(ctx context.Context, id string, in usecase.ProfileUpdate) (*entity.User, error)
	// Delete はアカウントを完全に削除します。
	Delete(ctx context.Context, id string) (bool, error)
}

// TokenIssuer は署名済みアクセストークンの発行インターフェースを定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザーの署名済みトークンを生成します。
	Issue(userID string) (string, error)
	// ExpirySeconds は発行するトークンの有効期間（秒）を返します。
	ExpirySeconds() int
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	users  UserUsecase
	tokens TokenIssuer
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAuthHandler(users UserUsecase, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は400を返却
// - 成功時はアクセストークン付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, err := h.users.Signup(c.Request.Context(), usecase.SignupInput{
		Email:              req.Email,
		Password:           req.Password,
		Name:               req.Name,
		SoftwareBackground: req.SoftwareBackground,
		HardwareBackground: req.HardwareBackground,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup rejected: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "a user with this email already exists"})
			return
		}
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("token issue failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupRes{
		Message:     "User registered successfully",
		User:        dto.NewUserRes(user),
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Signin はログインAPIエンドポイントを処理します。
// 認証失敗の理由（未知のメール・パスワード不一致・無効化済み）は区別せず、常に401を返します。
func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signin validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("signin failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
			return
		}
		slog.Error("signin failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		slog.Error("token issue failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	slog.Info("user signin successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.SigninRes{
		Message:     "Login successful",
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   h.tokens.ExpirySeconds(),
		User:        dto.NewUserRes(user),
	})
}

// Me は認証済みユーザーのプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	user := token.CurrentUser(c)
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateMe は認証済みユーザーのプロフィールを部分更新します。
// 指定されなかったフィールドは変更されません。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user := token.CurrentUser(c)
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, usecase.ProfileUpdate{
		Name:               req.Name,
		SoftwareBackground: req.SoftwareBackground,
		HardwareBackground: req.HardwareBackground,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "user not found"})
			return
		}
		slog.Error("profile update failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(updated))
}

// Signout はサインアウトを処理します。
// トークンはステートレスなのでサーバー側の効果はなく、クライアントがトークンを破棄します。
func (h *AuthHandler) Signout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Signed out successfully", Success: true})
}

// DeleteMe は認証済みユーザーのアカウントを完全に削除します。取り消しはできません。
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	user := token.CurrentUser(c)
	deleted, err := h.users.Delete(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "user not found"})
		return
	}

	slog.Info("account deleted", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Account deleted successfully", Success: true})
}

// VerifyToken はトークンの有効性を確認します。
// ここに到達した時点でResolverが検証を終えているため、成功を返すだけです。
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Token is valid", Success: true})
}
