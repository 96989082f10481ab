package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/patronstatus"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/paymentgateway"
	"github.com/AntonStoeckl/library-catalog-go/testutil/observability/testdoubles"
)

var deskNow = time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)

func Test_Desk_AddedBookIsFoundByISBN(t *testing.T) {
	// setup
	ctx := context.Background()
	desk, _ := newMemoryDesk(t)

	// act
	added := desk.addBook.Handle(ctx, addbook.BuildCommand("  Dune ", "Frank Herbert", "9780441172719", 1))
	found, err := desk.findByISBN(ctx, "9780441172719")

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeSuccess, added.Outcome)
	assert.Equal(t, "Book \"Dune\" has been successfully added to the catalog.", added.Message)
	assert.Equal(t, "9780441172719", found.ISBN)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, 1, found.TotalCopies)
	assert.Equal(t, 1, found.AvailableCopies)
}

func Test_Desk_LastCopyIsLentOnce_AndReturnedWithoutFee(t *testing.T) {
	// setup
	ctx := context.Background()
	desk, _ := newMemoryDesk(t)

	// arrange
	require.True(t, desk.addBook.Handle(ctx, addbook.BuildCommand("Dune", "Frank Herbert", "9780441172719", 1)).Succeeded())
	dune, err := desk.findByISBN(ctx, "9780441172719")
	require.NoError(t, err)

	// act
	first := desk.borrowBook.Handle(ctx, borrowbook.BuildCommand("111111", dune.BookID, deskNow))
	second := desk.borrowBook.Handle(ctx, borrowbook.BuildCommand("222222", dune.BookID, deskNow))
	returned := desk.returnBook.Handle(ctx, returnbook.BuildCommand("111111", dune.BookID, deskNow.Add(3*day)))
	again := desk.borrowBook.Handle(ctx, borrowbook.BuildCommand("222222", dune.BookID, deskNow.Add(3*day)))

	// assert
	assert.Equal(t, "Successfully borrowed \"Dune\". Due date: 2026-01-15.", first.Message)
	assert.Equal(t, core.OutcomeBusinessRuleViolation, second.Outcome)
	assert.Equal(t, "This book is currently not available.", second.Message)
	assert.Equal(t, "Successfully returned \"Dune\". No late fees.", returned.Message)
	assert.Equal(t, "Successfully borrowed \"Dune\". Due date: 2026-01-18.", again.Message)
}

func Test_DeskRun_ChargesTheOverdueReturn_AndReportsTheRemainingLoan(t *testing.T) {
	// setup
	ctx := context.Background()
	desk, logs := newMemoryDesk(t)

	// act
	report, err := desk.Run(ctx, deskNow)

	// assert
	require.NoError(t, err)
	assert.True(t, logs.HasLogWithMessage(slog.LevelInfo, logMsgStep+"return").
		WithAttrValue(logAttrMessage, "Successfully returned \"The Go Programming Language\". Late fee: $3.00 (6 days overdue).").
		Assert())
	assert.True(t, logs.HasLogWithMessage(slog.LevelInfo, logMsgStep+"borrow the last copy").
		WithAttrValue(logAttrMessage, "This book is currently not available.").
		Assert())
	assert.True(t, logs.HasLogWithMessage(slog.LevelInfo, logMsgStep+"pay late fees").
		WithAttrValue(logAttrOutcome, string(core.OutcomeSuccess)).
		WithAttr(logAttrTxID).
		Assert())
	assert.True(t, logs.HasLogWithMessage(slog.LevelInfo, logMsgStep+"refund twice").
		WithAttrValue(logAttrOutcome, string(core.OutcomeGatewayDecline)).
		Assert())

	assert.Equal(t, patronAlice, report.PatronID)
	require.Len(t, report.CurrentlyBorrowed, 1)
	assert.Equal(t, "Dune", report.CurrentlyBorrowed[0].Title)
	assert.Equal(t, 1, report.BooksBorrowedCount)
	assert.True(t, report.TotalLateFees.Equal(decimal.Zero))
	require.Len(t, report.BorrowingHistory, 2)
	assert.Equal(t, patronstatus.StatusBorrowed, report.BorrowingHistory[0].Status)
	assert.Equal(t, patronstatus.StatusReturned, report.BorrowingHistory[1].Status)
}

func newMemoryDesk(t *testing.T) (*Desk, *testdoubles.LogHandlerSpy) {
	t.Helper()

	ctx := context.Background()
	logs := testdoubles.NewLogHandlerSpy(false)
	cfg := Config{Engine: engineMemory}

	obs, err := newObservers(ctx, cfg, logs)
	require.NoError(t, err)

	store, closeStore, err := openStore(ctx, cfg, obs)
	require.NoError(t, err)
	t.Cleanup(closeStore)

	gateway, err := paymentgateway.NewGateway()
	require.NoError(t, err)

	desk, err := NewDesk(store, gateway, obs, slog.New(logs))
	require.NoError(t, err)

	return desk, logs
}
