package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "textbook_backend/internal/feature/auth/transport/handler"
	historyhandler "textbook_backend/internal/feature/history/transport/handler"
	"textbook_backend/internal/platform/http/handler"
	"textbook_backend/internal/platform/token"
	"textbook_backend/internal/shared/ratelimiter"
)

// signinThrottle はクライアントIPごとにサインイン試行を制限するミドルウェアです。
// limiterがnilの場合は何もしません。
func signinThrottle(limiter *ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts"})
			return
		}
		c.Next()
	}
}

// NewRouter はアプリケーションの全ルートを構成したGinエンジンを返します。
func NewRouter(authH *authhandler.AuthHandler, historyH *historyhandler.HistoryHandler,
	resolver *token.Resolver, signinLimiter *ratelimiter.Limiter) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	auth := r.Group("/auth")
	// 新規ユーザー登録
	auth.POST("/signup", authH.Signup)
	// ログイン（アクセストークン発行）。IPごとの試行回数制限つき
	auth.POST("/signin", signinThrottle(signinLimiter), authH.Signin)

	// 認証必須のルート
	protected := auth.Group("")
	protected.Use(resolver.Required())
	{
		protected.GET("/me", authH.Me)
		protected.PATCH("/me", authH.UpdateMe)
		protected.POST("/signout", authH.Signout)
		protected.DELETE("/me", authH.DeleteMe)
		protected.GET("/verify-token", authH.VerifyToken)
	}

	// チャット履歴も認証必須
	chat := r.Group("/chat")
	chat.Use(resolver.Required())
	{
		chat.POST("/history", historyH.Append)
		chat.GET("/history/:session_id", historyH.Recent)
	}

	return r
}
