package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager runs fn inside a transaction on the primary.
type TxManager interface {
	RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error
}
