package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newTestLimiter は時刻を固定したLimiterと、時刻を進めるための関数を返します。
func newTestLimiter(limit int, interval time.Duration) (*Limiter, func(d time.Duration)) {
	current := time.Unix(1700000000, 0)
	l := NewLimiter(limit, interval)
	l.now = func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return l, advance
}

// TestAllow_WithinLimit は上限以内の試行がすべて許可されることを検証します。
func TestAllow_WithinLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "attempt %d should be allowed", i+1)
	}
}

// TestAllow_OverLimit は上限を超えた試行が拒否されることを検証します。
func TestAllow_OverLimit(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

// TestAllow_PerKeyIsolation はキーごとにカウンタが独立していることを検証します。
func TestAllow_PerKeyIsolation(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// 別キーは影響を受けない
	assert.True(t, l.Allow("10.0.0.2"))
}

// TestAllow_WindowReset はintervalが経過した後にカウンタがリセットされることを検証します。
func TestAllow_WindowReset(t *testing.T) {
	l, advance := newTestLimiter(1, time.Minute)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// ウィンドウ境界の直前ではまだ拒否される
	advance(59 * time.Second)
	assert.False(t, l.Allow("10.0.0.1"))

	advance(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestAllow_ZeroLimitRejectsEverything(t *testing.T) {
	l, _ := newTestLimiter(0, time.Minute)
	assert.False(t, l.Allow("10.0.0.1"))
}
