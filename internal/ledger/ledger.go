// Package ledger aggregates coin transactions. Every function is a pure reduction over a
// newest-first transaction list.
package ledger

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/utils"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Summary bundles the dashboard figures.
type Summary struct {
	Balance           int
	EarnedToday       int
	SpentToday        int
	TotalEarned       int
	TotalSpent        int
	TransactionsToday int
}

// isUndo reports whether t reverses an earlier credit. Undo entries count against earnings and
// never as spending.
func isUndo(t models.CoinTransaction) bool {
	return t.Type == models.HabitUndo || t.Type == models.TaskUndo
}

func earns(t models.CoinTransaction) bool { return t.Amount > 0 || isUndo(t) }

func spends(t models.CoinTransaction) bool { return t.Amount < 0 && !isUndo(t) }

// day filters transactions to the clock's current calendar date in timezone.
type day struct {
	today string
	tz    string
}

func newDay(timezone string, clock utils.Clock) day {
	today, err := utils.GetTodayInTimezone(clock, timezone)
	if err != nil {
		today, _ = utils.GetTodayInTimezone(clock, "UTC")
		timezone = "UTC"
	}
	return day{today: today, tz: timezone}
}

func (d day) contains(t models.CoinTransaction) bool {
	ts, err := utils.ParseStoredTimestamp(t.Timestamp)
	if err != nil {
		return false
	}
	loc, err := utils.LoadLocation(d.tz)
	if err != nil {
		return false
	}
	return utils.CalendarDate(ts, loc) == d.today
}

// EarnedToday sums today's credits, netting out same-day undos.
func EarnedToday(txs []models.CoinTransaction, timezone string, clock utils.Clock) int {
	d := newDay(timezone, clock)
	total := 0
	for _, t := range txs {
		if earns(t) && d.contains(t) {
			total += t.Amount
		}
	}
	return total
}

// TotalEarned sums all credits net of undos.
func TotalEarned(txs []models.CoinTransaction) int {
	total := 0
	for _, t := range txs {
		if earns(t) {
			total += t.Amount
		}
	}
	return total
}

// TotalSpent is the absolute sum of every debit that is not an undo.
func TotalSpent(txs []models.CoinTransaction) int {
	total := 0
	for _, t := range txs {
		if spends(t) {
			total += t.Amount
		}
	}
	return -total
}

// SpentToday is TotalSpent restricted to today.
func SpentToday(txs []models.CoinTransaction, timezone string, clock utils.Clock) int {
	d := newDay(timezone, clock)
	total := 0
	for _, t := range txs {
		if spends(t) && d.contains(t) {
			total += t.Amount
		}
	}
	return -total
}

// TransactionsToday counts every transaction dated today.
func TransactionsToday(txs []models.CoinTransaction, timezone string, clock utils.Clock) int {
	d := newDay(timezone, clock)
	count := 0
	for _, t := range txs {
		if d.contains(t) {
			count++
		}
	}
	return count
}

// Balance is the signed sum of all amounts.
func Balance(txs []models.CoinTransaction) int {
	total := 0
	for _, t := range txs {
		total += t.Amount
	}
	return total
}

// Summarize computes every aggregate at once.
func Summarize(txs []models.CoinTransaction, timezone string, clock utils.Clock) Summary {
	return Summary{
		Balance:           Balance(txs),
		EarnedToday:       EarnedToday(txs, timezone, clock),
		SpentToday:        SpentToday(txs, timezone, clock),
		TotalEarned:       TotalEarned(txs),
		TotalSpent:        TotalSpent(txs),
		TransactionsToday: TransactionsToday(txs, timezone, clock),
	}
}

// Prepend returns a new list with t first. The input is not modified.
func Prepend(txs []models.CoinTransaction, t models.CoinTransaction) []models.CoinTransaction {
	out := make([]models.CoinTransaction, 0, len(txs)+1)
	out = append(out, t)
	return append(out, txs...)
}

// UpdateNote returns a copy of txs with the note of transaction id replaced.
func UpdateNote(txs []models.CoinTransaction, id, note string) ([]models.CoinTransaction, error) {
	i := slices.IndexFunc(txs, func(t models.CoinTransaction) bool { return t.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	out := slices.Clone(txs)
	out[i].Note = note
	return out, nil
}
