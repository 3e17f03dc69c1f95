package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"tradingjournal/src/model"
)

// StartingBalance seeds the account balance chain before any trade exists.
const StartingBalance = 1000

// Input carries one trade append request after validation and defaulting.
// Risk defaults to 1 and the return figures to 0 upstream, so the zero value
// here is never computed against directly.
type Input struct {
	DateEntered time.Time
	DateExited  *time.Time

	Asset               string
	MarketID            uint
	Direction           string
	TradeSetupID        uint
	NumberOfConfluences int
	PositionSize        float64

	Risk          float64
	PlannedReturn float64
	ActualReturn  float64

	// Result is the realized profit/loss applied to the balance chain.
	// It is deliberately independent of ActualReturn, which only feeds the
	// actual risk/reward ratio.
	Result float64

	PreTradeNotes      string
	PostTradeNotes     string
	FeelingsAfterTrade string
}

// Chain is the running balance state a trade append builds on.
type Chain struct {
	Balance       decimal.Decimal
	CumulativePnL decimal.Decimal
}

// OpeningChain returns the chain state before the first trade.
func OpeningChain() Chain {
	return Chain{
		Balance:       decimal.NewFromInt(StartingBalance),
		CumulativePnL: decimal.Zero,
	}
}

// ChainFrom reads the chain state off the most recently inserted trade.
// Missing stored fields fall back to the opening state.
func ChainFrom(last *model.Trade) Chain {
	if last == nil {
		return OpeningChain()
	}

	chain := OpeningChain()
	if last.AccountBalance != nil {
		chain.Balance = decimal.NewFromFloat(*last.AccountBalance)
	}
	if last.CumulativePnL != nil {
		chain.CumulativePnL = decimal.NewFromFloat(*last.CumulativePnL)
	}
	return chain
}

// RiskReward returns ret/risk, guarded against a non-positive risk.
func RiskReward(ret, risk float64) float64 {
	if risk <= 0 {
		return 0
	}
	return ret / risk
}

// Compute derives all stored trade fields from the input and the previous
// chain state, returning the trade row to persist and the chain state the
// next append in the same batch must build on.
func Compute(in Input, prev Chain) (model.Trade, Chain) {
	plannedRR := RiskReward(in.PlannedReturn, in.Risk)
	actualRR := RiskReward(in.ActualReturn, in.Risk)

	result := decimal.NewFromFloat(in.Result)
	next := Chain{
		Balance:       prev.Balance.Add(result),
		CumulativePnL: prev.CumulativePnL.Add(result),
	}

	roi := 0.0
	if in.Risk > 0 {
		roi = in.Result / in.Risk * 100
	}

	changePct := 0.0
	if !prev.Balance.IsZero() {
		changePct, _ = result.
			Div(prev.Balance).
			Mul(decimal.NewFromInt(100)).
			Float64()
	}

	accountChange := in.Result
	actualReturn := in.ActualReturn
	cumulativePnL := next.CumulativePnL.InexactFloat64()
	accountBalance := next.Balance.InexactFloat64()

	trade := model.Trade{
		DateEntered:             in.DateEntered,
		DateExited:              in.DateExited,
		Asset:                   in.Asset,
		MarketID:                in.MarketID,
		Direction:               in.Direction,
		TradeSetupID:            in.TradeSetupID,
		NumberOfConfluences:     in.NumberOfConfluences,
		PlannedRR:               plannedRR,
		PlannedReturn:           in.PlannedReturn,
		ActualRR:                &actualRR,
		ActualReturn:            &actualReturn,
		Risk:                    in.Risk,
		PositionSize:            in.PositionSize,
		ROIOnPosition:           &roi,
		AccountChange:           &accountChange,
		AccountChangePercentage: &changePct,
		CumulativePnL:           &cumulativePnL,
		AccountBalance:          &accountBalance,
		PreTradeNotes:           in.PreTradeNotes,
		PostTradeNotes:          in.PostTradeNotes,
		FeelingsAfterTrade:      in.FeelingsAfterTrade,
	}

	return trade, next
}
