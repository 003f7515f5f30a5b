package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/core/services"
)

func TestReportService_DaySummary(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	ledger := services.NewLedgerService(store, bankID, testOptions()...)
	sessions := services.NewDaySessionService(store, bankID, testOptions()...)
	reports := services.NewReportService(store, bankID, testOptions()...)

	_, err := sessions.OpenDay(ctx, dec("100"))
	require.NoError(t, err)
	ledger.RecordTransaction(ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "60", Discount: "5", PaymentMethod: domain.PaymentCash})
	ledger.RecordTransaction(ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "40", PaymentMethod: domain.PaymentCard})
	ledger.RecordTransaction(ctx, domain.TransactionDraft{Type: domain.Expense, Amount: "10", PaymentMethod: domain.PaymentCash})

	summary, err := reports.DaySummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", summary.Date)
	assert.Equal(t, 3, summary.TransactionCount)
	assert.True(t, dec("100").Equal(summary.TotalsByType[domain.Sale]))
	assert.True(t, dec("10").Equal(summary.TotalsByType[domain.Expense]))
	assert.True(t, dec("40").Equal(summary.TotalsByMethod[domain.PaymentCard]))
	assert.True(t, dec("5").Equal(summary.DiscountTotal))
	require.NotNil(t, summary.Session)
	assert.True(t, dec("150").Equal(summary.ExpectedClosing), "got %s", summary.ExpectedClosing)
	assert.True(t, summary.Variance.IsZero())

	_, err = reports.DaySummary(ctx, "yesterday")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	empty, err := reports.DaySummary(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Zero(t, empty.TransactionCount)
	assert.Nil(t, empty.Session)
}

func TestReportService_ExportTransactionsXLSX(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	ledger := services.NewLedgerService(store, bankID, testOptions()...)
	reports := services.NewReportService(store, bankID, testOptions()...)

	ledger.RecordTransaction(ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "60", PaymentMethod: domain.PaymentCash, Note: "walk-in"})
	ledger.RecordTransaction(ctx, domain.TransactionDraft{Type: domain.Expense, Amount: "15", PaymentMethod: domain.PaymentBank})
	lastWeek := fixedNow.AddDate(0, 0, -7)
	ledger.RecordTransaction(ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "99", PaymentMethod: domain.PaymentCash, Date: &lastWeek})

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	data, err := reports.ExportTransactionsXLSX(ctx, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus the two transactions of the day")
	assert.Equal(t, "ID", rows[0][0])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, len(domain.AllTransactionTypes())+1)
	assert.Equal(t, []string{"SALE", "60"}, summary[1])

	_, err = reports.ExportTransactionsXLSX(ctx, from, from)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
