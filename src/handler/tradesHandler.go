package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradingjournal/src/ledger"
	"tradingjournal/src/model"
	"tradingjournal/src/repository"
)

// timestampLayout is the ISO 8601 layout trade timestamps arrive and leave in.
const timestampLayout = "2006-01-02T15:04:05"

type tradeAppender interface {
	Append(ctx context.Context, inputs []ledger.Input) ([]uint, error)
}

type tradeLister interface {
	FindAll(ctx context.Context) ([]model.Trade, error)
}

type tradeDeleter interface {
	DeleteByID(ctx context.Context, id uint) error
}

type tradeRequest struct {
	DateEntered         *string  `json:"date_entered"`
	DateExited          *string  `json:"date_exited"`
	Asset               *string  `json:"asset"`
	MarketID            *uint    `json:"market_id"`
	Direction           *string  `json:"direction"`
	TradeSetupID        *uint    `json:"trade_setup_id"`
	NumberOfConfluences *int     `json:"number_of_confluences"`
	PositionSize        *float64 `json:"position_size"`
	Risk                *float64 `json:"risk"`
	PlannedReturn       *float64 `json:"planned_return"`
	ActualReturn        *float64 `json:"actual_return"`
	Result              *float64 `json:"result"`
	PreTradeNotes       string   `json:"pre_trade_notes"`
	PostTradeNotes      string   `json:"post_trade_notes"`
	FeelingsAfterTrade  string   `json:"feelings_after_trade"`
}

// toInput validates required fields and applies defaults: entry time falls
// back to now, exit stays open, risk defaults to 1 and the return figures
// to 0.
func (req *tradeRequest) toInput(now time.Time) (ledger.Input, error) {
	var in ledger.Input

	switch {
	case req.Asset == nil:
		return in, errors.New("Missing required field: 'asset'")
	case req.MarketID == nil:
		return in, errors.New("Missing required field: 'market_id'")
	case req.Direction == nil:
		return in, errors.New("Missing required field: 'direction'")
	case req.TradeSetupID == nil:
		return in, errors.New("Missing required field: 'trade_setup_id'")
	case req.NumberOfConfluences == nil:
		return in, errors.New("Missing required field: 'number_of_confluences'")
	case req.PositionSize == nil:
		return in, errors.New("Missing required field: 'position_size'")
	}

	in.DateEntered = now
	if req.DateEntered != nil && *req.DateEntered != "" {
		parsed, err := time.Parse(timestampLayout, *req.DateEntered)
		if err != nil {
			return in, fmt.Errorf("invalid 'date_entered': expected %s", timestampLayout)
		}
		in.DateEntered = parsed
	}
	if req.DateExited != nil && *req.DateExited != "" {
		parsed, err := time.Parse(timestampLayout, *req.DateExited)
		if err != nil {
			return in, fmt.Errorf("invalid 'date_exited': expected %s", timestampLayout)
		}
		in.DateExited = &parsed
	}

	in.Asset = *req.Asset
	in.MarketID = *req.MarketID
	in.Direction = *req.Direction
	in.TradeSetupID = *req.TradeSetupID
	in.NumberOfConfluences = *req.NumberOfConfluences
	in.PositionSize = *req.PositionSize

	in.Risk = 1
	if req.Risk != nil {
		in.Risk = *req.Risk
	}
	if req.PlannedReturn != nil {
		in.PlannedReturn = *req.PlannedReturn
	}
	if req.ActualReturn != nil {
		in.ActualReturn = *req.ActualReturn
	}
	if req.Result != nil {
		in.Result = *req.Result
	}

	in.PreTradeNotes = req.PreTradeNotes
	in.PostTradeNotes = req.PostTradeNotes
	in.FeelingsAfterTrade = req.FeelingsAfterTrade

	return in, nil
}

// AddTradesHandler accepts a single trade object or a list of them. The whole
// batch is appended atomically: a validation failure on any item means
// nothing is persisted.
func AddTradesHandler(repo tradeAppender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, isList, err := readBody(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		var requests []tradeRequest
		if isList {
			if err := json.Unmarshal(body, &requests); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
				return
			}
		} else {
			var single tradeRequest
			if err := json.Unmarshal(body, &single); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
				return
			}
			requests = []tradeRequest{single}
		}
		if len(requests) == 0 {
			respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
			return
		}

		now := time.Now().UTC()
		inputs := make([]ledger.Input, 0, len(requests))
		for i := range requests {
			input, err := requests[i].toInput(now)
			if err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			inputs = append(inputs, input)
		}

		ids, err := repo.Append(r.Context(), inputs)
		if err != nil {
			logger.WithError(err).Error("failed to append trades")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		if isList {
			respondJSON(w, http.StatusCreated, map[string]interface{}{
				"message":   "Trades added successfully",
				"trade_ids": ids,
			})
			return
		}

		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message":  "Trade added successfully",
			"trade_id": ids[0],
		})
	}
}

// tradeRecord is the resolved wire shape of a trade: relation ids replaced by
// names, timestamps formatted, derived fields passed through.
type tradeRecord struct {
	ID                      uint     `json:"id"`
	DateEntered             *string  `json:"date_entered"`
	DateExited              *string  `json:"date_exited"`
	Asset                   string   `json:"asset"`
	MarketName              string   `json:"market_name"`
	Direction               string   `json:"direction"`
	TradeSetupName          string   `json:"trade_setup_name"`
	NumberOfConfluences     int      `json:"number_of_confluences"`
	PlannedRR               float64  `json:"planned_rr"`
	PlannedReturn           float64  `json:"planned_return"`
	ActualRR                *float64 `json:"actual_rr"`
	ActualReturn            *float64 `json:"actual_return"`
	Risk                    float64  `json:"risk"`
	PositionSize            float64  `json:"position_size"`
	ROIOnPosition           *float64 `json:"roi_on_position"`
	AccountChange           *float64 `json:"account_change"`
	AccountChangePercentage *float64 `json:"account_change_percentage"`
	CumulativePnL           *float64 `json:"cumulative_pnl"`
	AccountBalance          *float64 `json:"account_balance"`
	PreTradeNotes           string   `json:"pre_trade_notes"`
	PostTradeNotes          string   `json:"post_trade_notes"`
	FeelingsAfterTrade      string   `json:"feelings_after_trade"`
}

func toTradeRecord(trade *model.Trade) tradeRecord {
	record := tradeRecord{
		ID:                      trade.ID,
		Asset:                   trade.Asset,
		MarketName:              trade.MarketName(),
		Direction:               trade.Direction,
		TradeSetupName:          trade.SetupName(),
		NumberOfConfluences:     trade.NumberOfConfluences,
		PlannedRR:               trade.PlannedRR,
		PlannedReturn:           trade.PlannedReturn,
		ActualRR:                trade.ActualRR,
		ActualReturn:            trade.ActualReturn,
		Risk:                    trade.Risk,
		PositionSize:            trade.PositionSize,
		ROIOnPosition:           trade.ROIOnPosition,
		AccountChange:           trade.AccountChange,
		AccountChangePercentage: trade.AccountChangePercentage,
		CumulativePnL:           trade.CumulativePnL,
		AccountBalance:          trade.AccountBalance,
		PreTradeNotes:           trade.PreTradeNotes,
		PostTradeNotes:          trade.PostTradeNotes,
		FeelingsAfterTrade:      trade.FeelingsAfterTrade,
	}

	if !trade.DateEntered.IsZero() {
		entered := trade.DateEntered.Format(timestampLayout)
		record.DateEntered = &entered
	}
	if trade.DateExited != nil {
		exited := trade.DateExited.Format(timestampLayout)
		record.DateExited = &exited
	}
	return record
}

// GetTradesHandler lists all trades in id order with market and setup names
// resolved.
func GetTradesHandler(repo tradeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list trades")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		records := make([]tradeRecord, len(trades))
		for i := range trades {
			records[i] = toTradeRecord(&trades[i])
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// DeleteTradeHandler deletes a trade by the path id. Later trades' balances
// are not recomputed.
func DeleteTradeHandler(repo tradeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid trade id")
			return
		}

		if err := repo.DeleteByID(r.Context(), uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "Trade not found")
				return
			}
			logger.WithError(err).Error("failed to delete trade")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Trade deleted successfully"})
	}
}

// DefaultAddTradesHandler wires the handler to the production repository implementation.
func DefaultAddTradesHandler() http.HandlerFunc {
	return AddTradesHandler(repository.NewTradeRepository())
}

// DefaultGetTradesHandler wires the handler to the production repository implementation.
func DefaultGetTradesHandler() http.HandlerFunc {
	return GetTradesHandler(repository.NewTradeRepository())
}

// DefaultDeleteTradeHandler wires the handler to the production repository implementation.
func DefaultDeleteTradeHandler() http.HandlerFunc {
	return DeleteTradeHandler(repository.NewTradeRepository())
}
