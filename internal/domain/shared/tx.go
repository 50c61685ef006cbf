package shared

import "context"

// TxRunner executes a function within a storage transaction when the
// underlying deployment supports one. Implementations that cannot open a
// transaction run the function directly, so callers must tolerate the
// enclosed operations applying non-atomically.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTxRunner runs the function without any transaction. Used in tests
// and as a fallback for standalone deployments.
type NopTxRunner struct{}

// WithinTransaction implements TxRunner
func (NopTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
