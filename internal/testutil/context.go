package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds store and loader calls in tests.
const DefaultTimeout = 10 * time.Second

// Context возвращает context с DefaultTimeout, который отменяется при завершении теста.
func Context(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	t.Cleanup(cancel)
	return ctx
}

// Cancelled возвращает уже отменённый context, для проверки ранней остановки.
func Cancelled(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
