package journal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx only implements Exec; any other pgx.Tx method panics.
type fakeTx struct {
	pgx.Tx
	calls []execCall
	err   error
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

type fakeTxManager struct {
	tx *fakeTx
}

func (m *fakeTxManager) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, m.tx)
}

func TestPostgresRecord(t *testing.T) {
	tx := &fakeTx{}
	p := NewPostgres(&fakeTxManager{tx: tx})

	alert := models.Alert{
		Symbol:     "BTCUSDT",
		Interval:   "1hour",
		Transition: models.EnteredBuy,
		Price:      100,
		TakeProfit: "102.000000",
		StopLoss:   "99.000000",
		Oscillator: -0.8,
	}
	require.NoError(t, p.Record(context.Background(), alert, true))

	require.Len(t, tx.calls, 1)
	call := tx.calls[0]
	assert.True(t, strings.Contains(call.sql, "INSERT INTO signal_alerts"))
	require.Len(t, call.args, 8)
	assert.Equal(t, "BTCUSDT", call.args[0])
	assert.Equal(t, "ENTERED_BUY", call.args[2])
	assert.Equal(t, true, call.args[6])

	var decoded models.Alert
	require.NoError(t, sonic.Unmarshal(call.args[7].([]byte), &decoded))
	assert.Equal(t, alert, decoded)
}

func TestPostgresRecordError(t *testing.T) {
	tx := &fakeTx{err: errors.New("connection reset")}
	err := NewPostgres(&fakeTxManager{tx: tx}).Record(context.Background(), models.Alert{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal.Record")
}

func TestPostgresEnsureSchema(t *testing.T) {
	tx := &fakeTx{}
	require.NoError(t, NewPostgres(&fakeTxManager{tx: tx}).EnsureSchema(context.Background()))
	require.Len(t, tx.calls, 1)
	assert.Contains(t, tx.calls[0].sql, "CREATE TABLE IF NOT EXISTS signal_alerts")
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Record(context.Background(), models.Alert{}, true))
}
