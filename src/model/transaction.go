package model

import "time"

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// Transaction is a standalone deposit or withdrawal, independent of trades.
// Amount is signed: positive for deposits, negative for withdrawals.
type Transaction struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Amount float64   `gorm:"not null" json:"amount"`
	Date   time.Time `json:"date"`
	Type   string    `gorm:"size:10;not null" json:"type"`
}

// TableName allows you to control the exact table name for transactions.
func (Transaction) TableName() string {
	return "transactions"
}
