package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

type DaySessionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *state.Store
	ledger   portssvc.LedgerSvcFacade
	sessions portssvc.DaySessionSvcFacade
}

func (s *DaySessionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = seededStore()
	s.ledger = services.NewLedgerService(s.store, bankID, testOptions()...)
	s.sessions = services.NewDaySessionService(s.store, bankID, testOptions()...)
}

func TestDaySessionService(t *testing.T) {
	suite.Run(t, new(DaySessionServiceTestSuite))
}

func (s *DaySessionServiceTestSuite) TestOpenDay_SetsCashBalance() {
	setBalance(s.store, domain.CashAccountID, dec("75"))

	session, err := s.sessions.OpenDay(s.ctx, dec("1000"))
	s.Require().NoError(err)
	s.Equal("2024-03-10", session.Date)
	s.Equal(domain.SessionOpen, session.Status)
	s.True(dec("1000").Equal(session.ExpectedClosing))
	s.True(dec("1000").Equal(balance(s.store, domain.CashAccountID)), "the opening float replaces the drawer balance")
}

func (s *DaySessionServiceTestSuite) TestOpenDay_RejectsNegativeFloat() {
	_, err := s.sessions.OpenDay(s.ctx, dec("-1"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DaySessionServiceTestSuite) TestOpenDay_ReopenReplacesSession() {
	_, err := s.sessions.OpenDay(s.ctx, dec("100"))
	s.Require().NoError(err)
	_, err = s.sessions.OpenDay(s.ctx, dec("250"))
	s.Require().NoError(err)

	list, err := s.sessions.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.True(dec("250").Equal(list[0].OpeningBalance))
}

func (s *DaySessionServiceTestSuite) TestExpectedClosing_TracksCashFlow() {
	_, err := s.sessions.OpenDay(s.ctx, dec("1000"))
	s.Require().NoError(err)

	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "500", PaymentMethod: domain.PaymentCash})
	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{Type: domain.Expense, Amount: "200", PaymentMethod: domain.PaymentCash, AccountID: domain.CashAccountID})
	// card and bank flows never reach the drawer
	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "80", PaymentMethod: domain.PaymentCard})

	expected, err := s.sessions.ExpectedClosing(s.ctx, "")
	s.Require().NoError(err)
	s.True(dec("1300").Equal(expected), "got %s", expected)
	s.True(dec("1300").Equal(balance(s.store, domain.CashAccountID)))

	current, err := s.sessions.CurrentSession(s.ctx)
	s.Require().NoError(err)
	s.True(dec("1300").Equal(current.ExpectedClosing), "an open session reports the live figure")
}

func (s *DaySessionServiceTestSuite) TestExpectedClosing_TransfersMoveTheDrawer() {
	_, err := s.sessions.OpenDay(s.ctx, dec("500"))
	s.Require().NoError(err)

	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{
		Type: domain.Transfer, Amount: "120", PaymentMethod: domain.PaymentCash,
		AccountID: domain.CashAccountID, DestinationAccountID: bankID,
	})

	expected, err := s.sessions.ExpectedClosing(s.ctx, "2024-03-10")
	s.Require().NoError(err)
	s.True(dec("380").Equal(expected))
}

func (s *DaySessionServiceTestSuite) TestExpectedClosing_IgnoresOtherDates() {
	_, err := s.sessions.OpenDay(s.ctx, dec("100"))
	s.Require().NoError(err)

	yesterday := fixedNow.Add(-24 * time.Hour)
	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "40", PaymentMethod: domain.PaymentCash, Date: &yesterday})

	expected, err := s.sessions.ExpectedClosing(s.ctx, "2024-03-10")
	s.Require().NoError(err)
	s.True(dec("100").Equal(expected))
}

func (s *DaySessionServiceTestSuite) TestExpectedClosing_Errors() {
	_, err := s.sessions.ExpectedClosing(s.ctx, "10/03/2024")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.sessions.ExpectedClosing(s.ctx, "2024-03-09")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *DaySessionServiceTestSuite) TestCloseDay_SnapshotsVariance() {
	_, err := s.sessions.OpenDay(s.ctx, dec("1000"))
	s.Require().NoError(err)
	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "500", PaymentMethod: domain.PaymentCash})

	closed, err := s.sessions.CloseDay(s.ctx, dec("1490"))
	s.Require().NoError(err)
	s.Equal(domain.SessionClosed, closed.Status)
	s.True(dec("1500").Equal(closed.ExpectedClosing))
	s.Require().NotNil(closed.ActualClosing)
	s.True(dec("-10").Equal(closed.Variance()))
	s.NotNil(closed.ClosedAt)

	// later activity does not rewrite a closed reconciliation
	s.ledger.RecordTransaction(s.ctx, domain.TransactionDraft{Type: domain.Sale, Amount: "5", PaymentMethod: domain.PaymentCash})
	again, err := s.sessions.GetSession(s.ctx, "2024-03-10")
	s.Require().NoError(err)
	s.True(dec("1500").Equal(again.ExpectedClosing))
}

func (s *DaySessionServiceTestSuite) TestCloseDay_WithoutOpenSession() {
	_, err := s.sessions.CloseDay(s.ctx, dec("0"))
	s.ErrorIs(err, services.ErrNoOpenSession)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.sessions.OpenDay(s.ctx, dec("10"))
	s.Require().NoError(err)
	_, err = s.sessions.CloseDay(s.ctx, dec("10"))
	s.Require().NoError(err)

	_, err = s.sessions.CloseDay(s.ctx, dec("10"))
	s.ErrorIs(err, services.ErrNoOpenSession, "a closed day cannot be closed twice")
}

func (s *DaySessionServiceTestSuite) TestRequireOpenDay() {
	s.ErrorIs(s.sessions.RequireOpenDay(s.ctx), services.ErrNoOpenSession)

	_, err := s.sessions.OpenDay(s.ctx, dec("10"))
	s.Require().NoError(err)
	s.NoError(s.sessions.RequireOpenDay(s.ctx))

	_, err = s.sessions.CloseDay(s.ctx, dec("10"))
	s.Require().NoError(err)
	s.ErrorIs(s.sessions.RequireOpenDay(s.ctx), services.ErrNoOpenSession)
}

func (s *DaySessionServiceTestSuite) TestListSessions_NewestFirst() {
	_ = s.store.Update(func(st *domain.AppState) error {
		st.DaySessions = append(st.DaySessions,
			domain.DaySession{Date: "2024-03-08", Status: domain.SessionClosed},
			domain.DaySession{Date: "2024-03-09", Status: domain.SessionClosed},
		)
		return nil
	})
	_, err := s.sessions.OpenDay(s.ctx, dec("10"))
	s.Require().NoError(err)

	list, err := s.sessions.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"2024-03-10", "2024-03-09", "2024-03-08"}, []string{list[0].Date, list[1].Date, list[2].Date})
}
