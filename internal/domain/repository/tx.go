package repository

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction travels in the context, so every repository call made within fn
// joins the same unit of work; any error rolls the whole unit back. Nested
// calls join the enclosing transaction.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
