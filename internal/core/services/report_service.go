package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
)

type reportService struct {
	BaseService
	store         *state.Store
	bankAccountID string
}

// NewReportService creates the reporting service over store.
func NewReportService(store *state.Store, bankAccountID string, options ...ServiceOption) portssvc.ReportSvc {
	if bankAccountID == "" {
		bankAccountID = domain.DefaultBankAccountID
	}
	return &reportService{BaseService: newBaseService(options...), store: store, bankAccountID: bankAccountID}
}

var _ portssvc.ReportSvc = (*reportService)(nil)

func (s *reportService) DaySummary(ctx context.Context, date string) (*domain.DaySummary, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := domain.ParseDateKey(date, s.location); err != nil {
		return nil, ErrInvalidDate
	}
	summary := &domain.DaySummary{
		Date:           date,
		TotalsByType:   make(map[domain.TransactionType]decimal.Decimal),
		TotalsByMethod: make(map[domain.PaymentMethod]decimal.Decimal),
	}
	s.store.View(func(st *domain.AppState) {
		for _, tx := range st.Transactions {
			if s.DateKey(tx.Date) != date {
				continue
			}
			summary.TransactionCount++
			summary.TotalsByType[tx.Type] = summary.TotalsByType[tx.Type].Add(tx.Amount)
			summary.TotalsByMethod[tx.PaymentMethod] = summary.TotalsByMethod[tx.PaymentMethod].Add(tx.Amount)
			summary.DiscountTotal = summary.DiscountTotal.Add(tx.Discount)
		}
		if existing := st.DaySession(date); existing != nil {
			session := *existing
			live := session.OpeningBalance.Add(CashMovement(st.Transactions, date, s.bankAccountID, s.DateKey))
			if session.Status == domain.SessionOpen {
				session.ExpectedClosing = live
			}
			summary.Session = &session
			summary.ExpectedClosing = session.ExpectedClosing
			summary.Variance = session.Variance()
		}
	})
	return summary, nil
}

func (s *reportService) ExportTransactionsXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}
	filter := domain.TransactionFilter{}
	if !from.IsZero() {
		filter.From = &from
	}
	if !to.IsZero() {
		filter.To = &to
	}
	var txs []domain.Transaction
	s.store.View(func(st *domain.AppState) {
		for _, tx := range st.Transactions {
			if filter.Matches(tx) {
				txs = append(txs, tx)
			}
		}
	})

	f := excelize.NewFile()
	defer f.Close()

	for _, name := range []string{transactionsSheet, summarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("error creating sheet: %w", err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(transactionsSheet); err == nil {
		f.SetActiveSheet(index)
	}

	headers := []any{"ID", "Date", "Type", "Payment Method", "Amount", "Discount", "Account", "Destination", "Customer", "Vendor", "Items", "Note"}
	if err := f.SetSheetRow(transactionsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(transactionsSheet, 1, 1, headerStyle)
	}

	totals := make(map[domain.TransactionType]decimal.Decimal)
	for i, tx := range txs {
		row := []any{
			tx.ID,
			tx.Date.In(s.location).Format("2006-01-02 15:04:05"),
			string(tx.Type),
			string(tx.PaymentMethod),
			tx.Amount.InexactFloat64(),
			tx.Discount.InexactFloat64(),
			tx.AccountID,
			tx.DestinationAccountID,
			tx.CustomerID,
			tx.VendorID,
			len(tx.Items),
			tx.Note,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
		}
		totals[tx.Type] = totals[tx.Type].Add(tx.Amount)
	}
	_ = f.SetColWidth(transactionsSheet, "A", "L", 18)

	summaryHeader := []any{"Type", "Total"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return nil, fmt.Errorf("error writing summary header: %w", err)
	}
	for i, txType := range domain.AllTransactionTypes() {
		row := []any{string(txType), totals[txType].InexactFloat64()}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing summary row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	s.LogInfo(ctx, "Transactions exported", slog.Int("rows", len(txs)))
	return buf.Bytes(), nil
}
