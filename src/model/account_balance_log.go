package model

import "time"

// AccountBalanceLog keeps one row per calendar day with the account balance as
// of that day's last processed trade. Written through on every trade append,
// read only by the charting surface.
type AccountBalanceLog struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Balance float64   `gorm:"not null" json:"balance"`
}

// TableName allows you to control the exact table name for balance logs.
func (AccountBalanceLog) TableName() string {
	return "account_balance_logs"
}
