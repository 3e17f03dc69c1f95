package model

// TradeSetup is a named trading pattern/strategy tag applied to a trade.
type TradeSetup struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName allows you to control the exact table name for trade setups.
func (TradeSetup) TableName() string {
	return "trade_setups"
}
