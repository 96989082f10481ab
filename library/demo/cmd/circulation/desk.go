package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/paylatefees"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/refundlatefee"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/latefee"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/patronstatus"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/searchbooks"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/paymentgateway"
)

const (
	patronAlice = "100001"
	patronBob   = "100002"

	logMsgStep       = "desk: "
	logAttrRequestID = "request_id"
	logAttrOutcome   = "outcome"
	logAttrMessage   = "message"
	logAttrTxID      = "transaction_id"
	logAttrCount     = "count"
	logAttrFee       = "fee"
	logAttrDays      = "days_overdue"
)

const day = 24 * time.Hour

// Desk is the library front desk: every feature, wrapped with observability.
type Desk struct {
	addBook       *observable.CommandWrapper[addbook.Command]
	borrowBook    *observable.CommandWrapper[borrowbook.Command]
	returnBook    *observable.CommandWrapper[returnbook.Command]
	payLateFees   *observable.CommandWrapper[paylatefees.Command]
	refundLateFee *observable.CommandWrapper[refundlatefee.Command]
	searchBooks   *observable.QueryWrapper[searchbooks.Query, searchbooks.SearchResult]
	lateFee       *observable.QueryWrapper[latefee.Query, latefee.LateFee]
	patronStatus  *observable.QueryWrapper[patronstatus.Query, patronstatus.Report]
	logger        *slog.Logger
}

// NewDesk wires all feature handlers to the store and the payment gateway.
func NewDesk(store catalog.Store, gateway *paymentgateway.Gateway, obs observers, logger *slog.Logger) (*Desk, error) {
	var (
		d    = &Desk{logger: logger}
		errs = make([]error, 8)
	)

	d.addBook, errs[0] = wrapCommand[addbook.Command](addbook.NewCommandHandler(store), obs)
	d.borrowBook, errs[1] = wrapCommand[borrowbook.Command](
		borrowbook.NewCommandHandler(store, borrowbook.WithContextualLogger(obs.contextualLogger)), obs)
	d.returnBook, errs[2] = wrapCommand[returnbook.Command](
		returnbook.NewCommandHandler(store, returnbook.WithContextualLogger(obs.contextualLogger)), obs)
	d.payLateFees, errs[3] = wrapCommand[paylatefees.Command](paylatefees.NewCommandHandler(store, gateway), obs)
	d.refundLateFee, errs[4] = wrapCommand[refundlatefee.Command](refundlatefee.NewCommandHandler(gateway), obs)
	d.searchBooks, errs[5] = wrapQuery[searchbooks.Query, searchbooks.SearchResult](searchbooks.NewQueryHandler(store), obs)
	d.lateFee, errs[6] = wrapQuery[latefee.Query, latefee.LateFee](latefee.NewQueryHandler(store), obs)
	d.patronStatus, errs[7] = wrapQuery[patronstatus.Query, patronstatus.Report](patronstatus.NewQueryHandler(store), obs)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return d, nil
}

// Run plays one day at the desk and returns Alice's final status report.
// Loans are backdated relative to now, so one of them is overdue when it comes back.
func (d *Desk) Run(ctx context.Context, now time.Time) (patronstatus.Report, error) {
	isbnGo := uniqueISBN(now, 1)
	isbnDune := uniqueISBN(now, 2)

	d.command(ctx, "add book", d.addBook.Handle(ctx, addbook.BuildCommand("The Go Programming Language", "Alan Donovan", isbnGo, 2)))
	d.command(ctx, "add book", d.addBook.Handle(ctx, addbook.BuildCommand("  Dune ", "Frank Herbert", isbnDune, 1)))
	d.command(ctx, "add book twice", d.addBook.Handle(ctx, addbook.BuildCommand("Dune", "Frank Herbert", isbnDune, 1)))
	d.command(ctx, "add book without title", d.addBook.Handle(ctx, addbook.BuildCommand(" ", "Nobody", isbnDune, 1)))

	goBook, err := d.findByISBN(ctx, isbnGo)
	if err != nil {
		return patronstatus.Report{}, err
	}

	dune, err := d.findByISBN(ctx, isbnDune)
	if err != nil {
		return patronstatus.Report{}, err
	}

	if _, err = d.search(ctx, "programming", "title"); err != nil {
		return patronstatus.Report{}, err
	}

	d.command(ctx, "borrow", d.borrowBook.Handle(ctx, borrowbook.BuildCommand(patronAlice, goBook.BookID, now.Add(-20*day))))
	d.command(ctx, "borrow", d.borrowBook.Handle(ctx, borrowbook.BuildCommand(patronAlice, dune.BookID, now.Add(-2*day))))
	d.command(ctx, "borrow the last copy", d.borrowBook.Handle(ctx, borrowbook.BuildCommand(patronBob, dune.BookID, now)))
	d.command(ctx, "borrow with a bad card", d.borrowBook.Handle(ctx, borrowbook.BuildCommand("42", goBook.BookID, now)))

	fee, err := d.lateFee.Handle(ctx, latefee.BuildQuery(patronAlice, goBook.BookID, now))
	if err != nil {
		return patronstatus.Report{}, err
	}

	d.logger.InfoContext(ctx, logMsgStep+"late fee", logAttrFee, core.FormatMoney(fee.FeeAmount), logAttrDays, fee.DaysOverdue)

	d.command(ctx, "return", d.returnBook.Handle(ctx, returnbook.BuildCommand(patronAlice, goBook.BookID, now)))
	d.command(ctx, "return twice", d.returnBook.Handle(ctx, returnbook.BuildCommand(patronAlice, goBook.BookID, now)))

	payment := d.payLateFees.Handle(ctx, paylatefees.BuildCommand(patronAlice, goBook.BookID, now))
	d.command(ctx, "pay late fees", payment)
	d.command(ctx, "pay without fees", d.payLateFees.Handle(ctx, paylatefees.BuildCommand(patronAlice, dune.BookID, now)))

	if payment.Succeeded() {
		partial := decimal.RequireFromString("1.00")
		d.command(ctx, "refund", d.refundLateFee.Handle(ctx, refundlatefee.BuildCommand(payment.TransactionID, partial)))
		d.command(ctx, "refund twice", d.refundLateFee.Handle(ctx, refundlatefee.BuildCommand(payment.TransactionID, partial)))
	}

	d.command(ctx, "refund unknown", d.refundLateFee.Handle(ctx, refundlatefee.BuildCommand("abc", decimal.NewFromInt(1))))

	return d.patronStatus.Handle(ctx, patronstatus.BuildQuery(patronAlice, now))
}

func (d *Desk) findByISBN(ctx context.Context, isbn string) (searchbooks.BookInfo, error) {
	result, err := d.search(ctx, isbn, "isbn")
	if err != nil {
		return searchbooks.BookInfo{}, err
	}

	if result.Count != 1 {
		return searchbooks.BookInfo{}, fmt.Errorf("expected exactly one book with isbn %s, found %d", isbn, result.Count)
	}

	return result.Books[0], nil
}

func (d *Desk) search(ctx context.Context, term, kind string) (searchbooks.SearchResult, error) {
	result, err := d.searchBooks.Handle(ctx, searchbooks.BuildQuery(term, kind))
	if err != nil {
		return searchbooks.SearchResult{}, err
	}

	d.logger.InfoContext(ctx, logMsgStep+"search by "+kind, logAttrCount, result.Count)

	return result, nil
}

func (d *Desk) command(ctx context.Context, step string, result core.Result) {
	args := []any{
		logAttrRequestID, uuid.NewString(),
		logAttrOutcome, string(result.Outcome),
		logAttrMessage, result.Message,
	}

	if result.TransactionID != "" {
		args = append(args, logAttrTxID, result.TransactionID)
	}

	d.logger.InfoContext(ctx, logMsgStep+step, args...)
}

// uniqueISBN derives a 13 digit ISBN from now, so repeated runs against the same database do not collide.
func uniqueISBN(now time.Time, n int) string {
	return fmt.Sprintf("978%09d%d", now.UnixNano()%1_000_000_000, n%10)
}
