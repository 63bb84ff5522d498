package ledger

import (
	"fmt"

	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/utils"
)

// CompletionTransaction credits h's reward for one completion.
func CompletionTransaction(h models.Habit, userID string, clock utils.Clock) models.CoinTransaction {
	typ, verb := models.HabitCompletion, "Completed habit"
	if h.IsTask() {
		typ, verb = models.TaskCompletion, "Completed task"
	}
	return newTransaction(h, userID, clock, h.CoinReward, typ, verb)
}

// UndoTransaction reverses one completion credit of h.
func UndoTransaction(h models.Habit, userID string, clock utils.Clock) models.CoinTransaction {
	typ, verb := models.HabitUndo, "Undid habit completion"
	if h.IsTask() {
		typ, verb = models.TaskUndo, "Undid task completion"
	}
	return newTransaction(h, userID, clock, -h.CoinReward, typ, verb)
}

func newTransaction(h models.Habit, userID string, clock utils.Clock, amount int, typ models.TransactionType, verb string) models.CoinTransaction {
	return models.CoinTransaction{
		ID:            utils.NewID(),
		Amount:        amount,
		Type:          typ,
		Description:   fmt.Sprintf("%s: %s", verb, h.Name),
		Timestamp:     utils.FormatForStorage(utils.OrSystem(clock).Now()),
		RelatedItemID: h.ID,
		UserID:        userID,
	}
}
