package model

import "time"

const (
	TradeDirectionLong  = "long"
	TradeDirectionShort = "short"
)

// Trade is one buy/sell cycle with its planned and realized risk figures plus
// the running account-balance/cumulative-P&L chain computed at insertion time.
type Trade struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DateEntered time.Time  `json:"date_entered"`
	DateExited  *time.Time `json:"date_exited,omitempty"`
	Asset       string     `gorm:"size:50;not null" json:"asset"`

	// Reference data relations. Deleting a market or setup is allowed and
	// leaves the trade dangling; readers substitute "Unknown".
	MarketID uint    `gorm:"index;not null" json:"market_id"`
	Market   *Market `json:"market,omitempty"`

	Direction string `gorm:"size:10;not null" json:"direction"`

	TradeSetupID uint        `gorm:"index;not null" json:"trade_setup_id"`
	TradeSetup   *TradeSetup `json:"trade_setup,omitempty"`

	NumberOfConfluences int `json:"number_of_confluences"`

	PlannedRR     float64  `json:"planned_rr"`
	PlannedReturn float64  `json:"planned_return"`
	ActualRR      *float64 `json:"actual_rr,omitempty"`
	ActualReturn  *float64 `json:"actual_return,omitempty"`
	Risk          float64  `json:"risk"`
	PositionSize  float64  `json:"position_size"`

	// Derived at insertion time, never recomputed afterwards.
	ROIOnPosition           *float64 `json:"roi_on_position,omitempty"`
	AccountChange           *float64 `json:"account_change,omitempty"`
	AccountChangePercentage *float64 `json:"account_change_percentage,omitempty"`
	CumulativePnL           *float64 `json:"cumulative_pnl,omitempty"`
	AccountBalance          *float64 `json:"account_balance,omitempty"`

	PreTradeNotes      string `gorm:"type:text" json:"pre_trade_notes,omitempty"`
	PostTradeNotes     string `gorm:"type:text" json:"post_trade_notes,omitempty"`
	FeelingsAfterTrade string `gorm:"type:text" json:"feelings_after_trade,omitempty"`
}

// TableName allows you to control the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}

// MarketName resolves the related market name, substituting "Unknown" when the
// relation is dangling (markets may be deleted out from under trades).
func (t *Trade) MarketName() string {
	if t.Market == nil {
		return "Unknown"
	}
	return t.Market.Name
}

// SetupName resolves the related setup name, substituting "Unknown" when the
// relation is dangling.
func (t *Trade) SetupName() string {
	if t.TradeSetup == nil {
		return "Unknown"
	}
	return t.TradeSetup.Name
}
