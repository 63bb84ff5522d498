package cli

import (
	"fmt"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/ledger"
	"github.com/dohsimpson/habittrove/internal/utils"
)

type CoinsCmd struct {
	Limit int `help:"Number of recent transactions to show." default:"10"`
}

func (c *CoinsCmd) Run(ctx *Context) error {
	tz, err := ctx.ResolveTimezone()
	if err != nil {
		return err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return err
	}
	coins, err := ctx.Store.LoadCoins()
	if err != nil {
		return fmt.Errorf("failed to load coins: %w", err)
	}

	sum := ledger.Summarize(coins.Transactions, tz, ctx.Clock)
	ctx.println(titleStyle.Render("Coins"))
	ctx.printf("  Balance:        %d\n", coins.Balance)
	ctx.printf("  Earned today:   %d\n", sum.EarnedToday)
	ctx.printf("  Spent today:    %d\n", sum.SpentToday)
	ctx.printf("  Total earned:   %d\n", sum.TotalEarned)
	ctx.printf("  Total spent:    %d\n", sum.TotalSpent)
	ctx.printf("  Today:          %d transactions\n", sum.TransactionsToday)
	if sum.Balance != coins.Balance {
		ctx.println(overdueStyle.Render(fmt.Sprintf("  Stored balance differs from ledger total (%d)", sum.Balance)))
	}

	if c.Limit <= 0 || len(coins.Transactions) == 0 {
		return nil
	}

	ctx.println()
	ctx.println(titleStyle.Render("Recent transactions"))
	for i, tx := range coins.Transactions {
		if i >= c.Limit {
			break
		}
		when := tx.Timestamp
		if t, err := utils.ParseStoredTimestamp(tx.Timestamp); err == nil {
			when = utils.FormatForDisplay(t, loc, constants.DisplayFormat)
		}
		ctx.printf("  %+5d  %-18s %s  %s\n", tx.Amount, tx.Type, when, tx.Description)
		if tx.Note != "" {
			ctx.println(mutedStyle.Render("         note: " + tx.Note))
		}
		ctx.println(mutedStyle.Render("         id: " + tx.ID))
	}
	return nil
}

type NoteCmd struct {
	ID   string `arg:"" help:"Transaction ID."`
	Note string `arg:"" help:"Note text. Pass an empty string to clear it."`
}

func (c *NoteCmd) Run(ctx *Context) error {
	coins, err := ctx.Store.LoadCoins()
	if err != nil {
		return fmt.Errorf("failed to load coins: %w", err)
	}

	txs, err := ledger.UpdateNote(coins.Transactions, c.ID, c.Note)
	if err != nil {
		return err
	}
	coins.Transactions = txs
	if err := ctx.Store.SaveCoins(coins); err != nil {
		return fmt.Errorf("failed to save coins: %w", err)
	}

	ctx.printf("✓ Note updated for transaction %s\n", c.ID)
	return nil
}
