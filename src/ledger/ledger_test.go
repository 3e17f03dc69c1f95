package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradingjournal/src/model"
)

func tradeWith(balance, pnl *float64) *model.Trade {
	return &model.Trade{
		ID:             1,
		Asset:          "EURUSD",
		AccountBalance: balance,
		CumulativePnL:  pnl,
	}
}

func TestRiskReward(t *testing.T) {
	tests := []struct {
		name string
		ret  float64
		risk float64
		want float64
	}{
		{name: "normal ratio", ret: 3, risk: 1.5, want: 2},
		{name: "zero risk guards to zero", ret: 100, risk: 0, want: 0},
		{name: "negative risk guards to zero", ret: 100, risk: -2, want: 0},
		{name: "negative return", ret: -50, risk: 25, want: -2},
		{name: "zero return", ret: 0, risk: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskReward(tt.ret, tt.risk); got != tt.want {
				t.Fatalf("RiskReward(%v, %v) = %v, want %v", tt.ret, tt.risk, got, tt.want)
			}
		})
	}
}

func TestComputeChainsBalances(t *testing.T) {
	entered := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

	first := Input{
		DateEntered:         entered,
		Asset:               "EURUSD",
		MarketID:            1,
		Direction:           "long",
		TradeSetupID:        1,
		NumberOfConfluences: 3,
		PositionSize:        10000,
		Risk:                25,
		PlannedReturn:       50,
		ActualReturn:        50,
		Result:              50,
	}

	trade, chain := Compute(first, OpeningChain())

	if trade.AccountBalance == nil || *trade.AccountBalance != 1050 {
		t.Fatalf("first trade balance = %v, want 1050", trade.AccountBalance)
	}
	if trade.CumulativePnL == nil || *trade.CumulativePnL != 50 {
		t.Fatalf("first trade cumulative pnl = %v, want 50", trade.CumulativePnL)
	}
	if trade.PlannedRR != 2 {
		t.Fatalf("planned rr = %v, want 2", trade.PlannedRR)
	}
	if trade.ActualRR == nil || *trade.ActualRR != 2 {
		t.Fatalf("actual rr = %v, want 2", trade.ActualRR)
	}
	if trade.ROIOnPosition == nil || *trade.ROIOnPosition != 200 {
		t.Fatalf("roi on position = %v, want 200", trade.ROIOnPosition)
	}
	if trade.AccountChange == nil || *trade.AccountChange != 50 {
		t.Fatalf("account change = %v, want 50", trade.AccountChange)
	}
	if trade.AccountChangePercentage == nil || *trade.AccountChangePercentage != 5 {
		t.Fatalf("account change pct = %v, want 5", trade.AccountChangePercentage)
	}

	second := first
	second.Result = -20
	second.ActualReturn = -20

	trade2, chain2 := Compute(second, chain)

	if trade2.AccountBalance == nil || *trade2.AccountBalance != 1030 {
		t.Fatalf("second trade balance = %v, want 1030", trade2.AccountBalance)
	}
	if trade2.CumulativePnL == nil || *trade2.CumulativePnL != 30 {
		t.Fatalf("second trade cumulative pnl = %v, want 30", trade2.CumulativePnL)
	}
	if !chain2.Balance.Equal(decimal.NewFromInt(1030)) {
		t.Fatalf("chain balance = %s, want 1030", chain2.Balance)
	}
	if !chain2.CumulativePnL.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("chain cumulative pnl = %s, want 30", chain2.CumulativePnL)
	}
}

func TestComputeSequence(t *testing.T) {
	// Property: after N appends with results r1..rn, the i-th balance is
	// 1000 + sum(r1..ri) and cumulative pnl is sum(r1..ri).
	results := []float64{50, -20, 12.5, 0, -42.5, 100}

	chain := OpeningChain()
	sum := 0.0
	for i, result := range results {
		in := Input{
			DateEntered:  time.Now(),
			Asset:        "BTCUSDT",
			MarketID:     1,
			TradeSetupID: 1,
			Direction:    "short",
			Risk:         1,
			Result:       result,
		}

		var trade struct {
			balance float64
			pnl     float64
		}
		computed, next := Compute(in, chain)
		trade.balance = *computed.AccountBalance
		trade.pnl = *computed.CumulativePnL

		sum += result
		if trade.balance != 1000+sum {
			t.Fatalf("trade %d balance = %v, want %v", i, trade.balance, 1000+sum)
		}
		if trade.pnl != sum {
			t.Fatalf("trade %d cumulative pnl = %v, want %v", i, trade.pnl, sum)
		}
		chain = next
	}
}

func TestComputeGuards(t *testing.T) {
	in := Input{
		DateEntered:   time.Now(),
		Asset:         "GER40",
		MarketID:      2,
		TradeSetupID:  2,
		Direction:     "long",
		Risk:          0,
		PlannedReturn: 75,
		ActualReturn:  30,
		Result:        30,
	}

	trade, _ := Compute(in, OpeningChain())

	if trade.PlannedRR != 0 {
		t.Fatalf("planned rr with zero risk = %v, want 0", trade.PlannedRR)
	}
	if *trade.ActualRR != 0 {
		t.Fatalf("actual rr with zero risk = %v, want 0", *trade.ActualRR)
	}
	if *trade.ROIOnPosition != 0 {
		t.Fatalf("roi with zero risk = %v, want 0", *trade.ROIOnPosition)
	}
}

func TestComputeZeroPreviousBalance(t *testing.T) {
	prev := Chain{Balance: decimal.Zero, CumulativePnL: decimal.Zero}

	in := Input{
		DateEntered:  time.Now(),
		Asset:        "XAUUSD",
		MarketID:     1,
		TradeSetupID: 1,
		Direction:    "long",
		Risk:         1,
		Result:       10,
	}

	trade, _ := Compute(in, prev)

	if *trade.AccountChangePercentage != 0 {
		t.Fatalf("account change pct with zero previous balance = %v, want 0", *trade.AccountChangePercentage)
	}
	if *trade.AccountBalance != 10 {
		t.Fatalf("balance = %v, want 10", *trade.AccountBalance)
	}
}

func TestChainFrom(t *testing.T) {
	if got := ChainFrom(nil); !got.Balance.Equal(decimal.NewFromInt(StartingBalance)) {
		t.Fatalf("empty ledger chain balance = %s, want %d", got.Balance, StartingBalance)
	}

	balance := 1234.5
	pnl := 234.5
	last := tradeWith(&balance, &pnl)
	got := ChainFrom(last)
	if !got.Balance.Equal(decimal.NewFromFloat(1234.5)) {
		t.Fatalf("chain balance = %s, want 1234.5", got.Balance)
	}
	if !got.CumulativePnL.Equal(decimal.NewFromFloat(234.5)) {
		t.Fatalf("chain pnl = %s, want 234.5", got.CumulativePnL)
	}

	// Stored nulls fall back to the opening state.
	got = ChainFrom(tradeWith(nil, nil))
	if !got.Balance.Equal(decimal.NewFromInt(StartingBalance)) {
		t.Fatalf("chain balance with null stored fields = %s, want %d", got.Balance, StartingBalance)
	}
	if !got.CumulativePnL.IsZero() {
		t.Fatalf("chain pnl with null stored fields = %s, want 0", got.CumulativePnL)
	}
}
