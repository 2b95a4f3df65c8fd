package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"textbook_backend/internal/app/router"
	authadapters "textbook_backend/internal/feature/auth/adapters"
	authhandler "textbook_backend/internal/feature/auth/transport/handler"
	authusecase "textbook_backend/internal/feature/auth/usecase"
	historyadapters "textbook_backend/internal/feature/history/adapters"
	historyhandler "textbook_backend/internal/feature/history/transport/handler"
	historyusecase "textbook_backend/internal/feature/history/usecase"
	"textbook_backend/internal/platform/cache"
	infradb "textbook_backend/internal/platform/db"
	infraredis "textbook_backend/internal/platform/redis"
	"textbook_backend/internal/platform/token"
	"textbook_backend/internal/shared/ratelimiter"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接使用）
	_ = godotenv.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// トークン設定は起動時に一度だけ読み込み、以後は不変
	tokenCfg := token.LoadConfig()
	if tokenCfg.Secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	codec := token.NewCodec(tokenCfg.Secret, tokenCfg.Expiry)

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	historyRepo := historyadapters.NewHistoryGorm(db)

	// Redisキャッシュでラップ
	cachedHistoryRepo := cache.NewCachingHistoryRepository(rdb, 5*time.Minute, historyRepo, "history")

	// Usecase
	userUC := authusecase.NewUserUsecase(userRepo)
	historyUC := historyusecase.NewHistoryUsecase(cachedHistoryRepo)

	// Handler
	authH := authhandler.NewAuthHandler(userUC, codec)
	historyH := historyhandler.NewHistoryHandler(historyUC)

	// Resolver（保護ルート用）とサインイン試行のレートリミッター
	resolver := token.NewResolver(codec, userRepo)
	signinLimiter := ratelimiter.NewLimiter(10, time.Minute)

	// ルータ生成
	r := router.NewRouter(authH, historyH, resolver, signinLimiter)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
