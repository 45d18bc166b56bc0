// Package journal keeps an append-only audit trail of emitted alerts.
// It is write-only: debounce state is never restored from it.
package journal

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"
)

// Recorder stores one row per emitted transition.
type Recorder interface {
	Record(ctx context.Context, alert models.Alert, delivered bool) error
}

// Nop is used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, models.Alert, bool) error { return nil }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS signal_alerts (
	id          BIGSERIAL PRIMARY KEY,
	symbol      TEXT             NOT NULL,
	interval    TEXT             NOT NULL,
	transition  TEXT             NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	take_profit TEXT             NOT NULL,
	stop_loss   TEXT             NOT NULL,
	delivered   BOOLEAN          NOT NULL,
	payload     JSONB            NOT NULL,
	created_at  TIMESTAMPTZ      NOT NULL DEFAULT now()
)`

const insertSQL = `
INSERT INTO signal_alerts (symbol, interval, transition, price, take_profit, stop_loss, delivered, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Postgres implements Recorder on top of a pgx transaction manager.
type Postgres struct {
	db db.TxManager
}

func NewPostgres(tm db.TxManager) *Postgres {
	return &Postgres{db: tm}
}

// EnsureSchema creates the alerts table if it is missing.
func (p *Postgres) EnsureSchema(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "journal.EnsureSchema")
		}
	}()
	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, schemaSQL)
		return err
	})
}

func (p *Postgres) Record(ctx context.Context, alert models.Alert, delivered bool) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "journal.Record")
		}
	}()

	payload, err := sonic.Marshal(alert)
	if err != nil {
		return err
	}
	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertSQL,
			alert.Symbol,
			alert.Interval,
			string(alert.Transition),
			alert.Price,
			alert.TakeProfit,
			alert.StopLoss,
			delivered,
			payload,
		)
		return err
	})
}
