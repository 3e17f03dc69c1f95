package model

// Market is a traded market category (Forex, Stocks, ...) referenced by trades.
type Market struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

// TableName allows you to control the exact table name for markets.
func (Market) TableName() string {
	return "markets"
}
