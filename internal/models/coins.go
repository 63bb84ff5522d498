package models

// TransactionType is the business reason for a coin transaction.
type TransactionType string

const (
	HabitCompletion  TransactionType = "HABIT_COMPLETION"
	HabitUndo        TransactionType = "HABIT_UNDO"
	TaskCompletion   TransactionType = "TASK_COMPLETION"
	TaskUndo         TransactionType = "TASK_UNDO"
	WishRedemption   TransactionType = "WISH_REDEMPTION"
	ManualAdjustment TransactionType = "MANUAL_ADJUSTMENT"
)

// CoinTransaction is an immutable ledger entry. Positive amounts are credits.
type CoinTransaction struct {
	ID            string          `json:"id"`
	Amount        int             `json:"amount"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	Timestamp     string          `json:"timestamp"` // UTC ISO-8601
	RelatedItemID string          `json:"relatedItemId,omitempty"`
	Note          string          `json:"note,omitempty"`
	UserID        string          `json:"userId,omitempty"`
}

// CoinsData is the content of coins.json. Transactions are ordered newest first.
type CoinsData struct {
	Balance      int               `json:"balance"`
	Transactions []CoinTransaction `json:"transactions"`
}
