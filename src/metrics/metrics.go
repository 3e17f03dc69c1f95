// Package metrics derives summary statistics from the trade ledger. It keeps
// no state of its own: every call recomputes from the trades it is handed, in
// insertion order. The account balance here is intentionally rebuilt from the
// starting balance plus realized returns, independent of the per-trade stored
// chain, because withdrawals patch the stored chain but are invisible to the
// realized returns.
package metrics

import (
	"tradingjournal/src/ledger"
	"tradingjournal/src/model"
)

// Summary is the aggregate view over all trades.
type Summary struct {
	TotalTrades                    int     `json:"total_trades"`
	WinRate                        float64 `json:"win_rate"`
	CumulativePnL                  float64 `json:"cumulative_pnl"`
	AveragePlannedRR               float64 `json:"average_planned_rr"`
	AverageActualRR                float64 `json:"average_actual_rr"`
	AccountBalance                 float64 `json:"account_balance"`
	AccountBalanceChange           float64 `json:"account_balance_change"`
	AverageAccountChangePercentage float64 `json:"average_account_change_percentage"`
	LargestWin                     float64 `json:"largest_win"`
	LargestLoss                    float64 `json:"largest_loss"`
	MostCommonSetup                string  `json:"most_common_setup"`
	MostTradedMarket               string  `json:"most_traded_market"`
}

// Compute scans the given trades (expected in ascending id order) and returns
// the aggregate summary. Returns nil when there are no trades at all, so
// callers can answer with an explicit empty-data message instead of zeros.
func Compute(trades []model.Trade) *Summary {
	if len(trades) == 0 {
		return nil
	}

	total := len(trades)

	var (
		wins           int
		cumulativePnL  float64
		sumPlannedRR   float64
		sumActualRR    float64
		sumChangePct   float64
		accountBalance = float64(ledger.StartingBalance)
	)

	largestWin := 0.0
	largestLoss := 0.0
	seenReturn := false

	for _, trade := range trades {
		sumPlannedRR += trade.PlannedRR
		if trade.ActualRR != nil {
			sumActualRR += *trade.ActualRR
		}
		if trade.AccountChangePercentage != nil {
			sumChangePct += *trade.AccountChangePercentage
		}

		if trade.ActualReturn == nil {
			continue
		}
		ret := *trade.ActualReturn
		cumulativePnL += ret
		accountBalance += ret
		if ret > 0 {
			wins++
		}
		if !seenReturn || ret > largestWin {
			largestWin = ret
		}
		if !seenReturn || ret < largestLoss {
			largestLoss = ret
		}
		seenReturn = true
	}

	return &Summary{
		TotalTrades:                    total,
		WinRate:                        float64(wins) / float64(total) * 100,
		CumulativePnL:                  cumulativePnL,
		AveragePlannedRR:               sumPlannedRR / float64(total),
		AverageActualRR:                sumActualRR / float64(total),
		AccountBalance:                 accountBalance,
		AccountBalanceChange:           accountBalance - ledger.StartingBalance,
		AverageAccountChangePercentage: sumChangePct / float64(total),
		LargestWin:                     largestWin,
		LargestLoss:                    largestLoss,
		MostCommonSetup:                modeName(trades, (*model.Trade).SetupName),
		MostTradedMarket:               modeName(trades, (*model.Trade).MarketName),
	}
}

// modeName returns the most frequent resolved name, ties broken by whichever
// name reached the maximum first in encounter order.
func modeName(trades []model.Trade, name func(*model.Trade) string) string {
	counts := make(map[string]int, len(trades))
	var order []string

	for i := range trades {
		n := name(&trades[i])
		if _, ok := counts[n]; !ok {
			order = append(order, n)
		}
		counts[n]++
	}

	best := "None"
	bestCount := 0
	for _, n := range order {
		if counts[n] > bestCount {
			best = n
			bestCount = counts[n]
		}
	}
	return best
}
