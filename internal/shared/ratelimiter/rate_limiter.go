// Package ratelimiter は操作の頻度を制限するための固定ウィンドウ型リミッターを提供します。
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter はキーごとに固定ウィンドウで試行回数を制限します。
// ログイン試行のようなリクエスト経路で使うため、上限超過時は待機せず拒否します。
type Limiter struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu      sync.Mutex
	windows map[string]*window

	// now is swapped out in tests.
	now func() time.Time
}

// window holds one key's counter for the current interval.
type window struct {
	count     int
	lastReset time.Time
}

// NewLimiter は新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow はキーの試行がウィンドウの上限内かどうかを返し、上限内なら1回分を消費します。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok {
		w = &window{lastReset: now}
		l.windows[key] = w
	}

	// interval を過ぎたらカウントリセット
	if now.Sub(w.lastReset) >= l.interval {
		w.count = 0
		w.lastReset = now
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}
