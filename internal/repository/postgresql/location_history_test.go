package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTx captures the SQL issued against a transaction.
type recordingTx struct {
	pgx.Tx
	queries []string
}

func (r *recordingTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	r.queries = append(r.queries, sql)
	return emptyRow{}
}

type emptyRow struct{}

func (emptyRow) Scan(dest ...interface{}) error { return pgx.ErrNoRows }

func TestHistoryRepository_ForUpdateLocksRow(t *testing.T) {
	tx := &recordingTx{}
	ctx := context.WithValue(context.Background(), "tx", tx)
	repo := NewHistoryRepository(nil)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := repo.GetByUserAndDayForUpdate(ctx, "user-1", day)
	require.ErrorIs(t, err, location.ErrHistoryNotFound)
	require.Len(t, tx.queries, 1)
	assert.Contains(t, tx.queries[0], "FOR UPDATE")

	_, err = repo.GetByUserAndDay(ctx, "user-1", day)
	require.ErrorIs(t, err, location.ErrHistoryNotFound)
	require.Len(t, tx.queries, 2)
	assert.NotContains(t, tx.queries[1], "FOR UPDATE")
}

func TestHistoryRepository_UpsertUsesTransactionQuerier(t *testing.T) {
	tx := &recordingTx{}
	ctx := context.WithValue(context.Background(), "tx", tx)
	repo := NewHistoryRepository(nil)

	_, err := repo.Upsert(ctx, location.DailyTotals{UserID: "user-1"})
	require.Error(t, err)
	require.Len(t, tx.queries, 1)
	assert.Contains(t, tx.queries[0], "ON CONFLICT (user_id, day)")
}
