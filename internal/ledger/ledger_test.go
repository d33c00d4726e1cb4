package ledger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
)

func openTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")
	l, err := Open(context.Background(), path, logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, path
}

func buildTx(t *testing.T, description string, amount string, ts time.Time) models.Transaction {
	t.Helper()
	tx, err := models.NewTransactionBuilder().
		WithDescription(description).
		WithAmount(decimal.RequireFromString(amount)).
		WithCategory(3, "Food").
		WithTimestamp(ts).
		Build()
	require.NoError(t, err)
	return tx
}

func TestLedger_SaveAndList(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	older := buildTx(t, "coffee", "3.50", base)
	newer := buildTx(t, "lunch", "12.10", base.Add(90*time.Minute))
	require.NoError(t, l.Save(ctx, older))
	require.NoError(t, l.Save(ctx, newer))

	list, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	got := list[1]
	assert.Equal(t, "coffee", got.Description)
	assert.True(t, decimal.RequireFromString("3.5").Equal(got.Amount))
	assert.Equal(t, models.TransactionTypeDebit, got.Type)
	assert.Equal(t, 3, got.CategoryID)
	assert.Equal(t, "Food", got.Category)
	assert.True(t, base.Equal(got.Timestamp))
}

func TestLedger_OrderingWithSubsecondTimestamps(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 5, 0, time.UTC)

	whole := buildTx(t, "a", "1", base)
	fraction := buildTx(t, "b", "1", base.Add(500*time.Millisecond))
	require.NoError(t, l.Save(ctx, fraction))
	require.NoError(t, l.Save(ctx, whole))

	list, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fraction.ID, list[0].ID)
}

func TestLedger_RecordFromAnalysis(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()

	tx, err := l.Record(ctx, "taxi", models.TransactionAnalysis{
		Description: "taxi",
		Type:        models.TransactionTypeDebit,
		CategoryID:  4,
		Category:    "Transportation",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.True(t, tx.Amount.IsZero(), "nil amount is saved as zero")

	got, err := l.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "taxi", got.Input)
	assert.Equal(t, 4, got.CategoryID)
}

func TestLedger_DeleteAndClear(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()
	now := time.Now()

	first := buildTx(t, "one", "1", now)
	require.NoError(t, l.Save(ctx, first))
	require.NoError(t, l.Save(ctx, buildTx(t, "two", "2", now)))
	require.NoError(t, l.Save(ctx, buildTx(t, "three", "3", now)))

	require.NoError(t, l.Delete(ctx, first.ID))
	assert.ErrorIs(t, l.Delete(ctx, first.ID), ErrTransactionNotFound)
	_, err := l.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	n, err := l.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := l.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLedger_RejectsInvalidTransactions(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()

	assert.Error(t, l.Save(ctx, models.Transaction{Description: "no id", Type: models.TransactionTypeDebit}))
	assert.Error(t, l.Save(ctx, models.Transaction{ID: "x", Description: "bad type", Type: "refund"}))

	tx := buildTx(t, "dup", "1", time.Now())
	require.NoError(t, l.Save(ctx, tx))
	assert.Error(t, l.Save(ctx, tx), "duplicate ids are rejected")
}

func TestLedger_ReopenKeepsData(t *testing.T) {
	l, path := openTestLedger(t)
	ctx := context.Background()
	tx := buildTx(t, "persisted", "7.25", time.Now())
	require.NoError(t, l.Save(ctx, tx))
	require.NoError(t, l.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.25", got.Amount.String())
}

func TestLedger_ConcurrentSaves(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Record(ctx, "snack", models.TransactionAnalysis{Description: "snack", Amount: models.Float64(float64(i)), Type: models.TransactionTypeDebit})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := l.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 10)
}
