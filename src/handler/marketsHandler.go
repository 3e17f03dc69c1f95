package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradingjournal/src/model"
	"tradingjournal/src/repository"
)

type marketCreator interface {
	CreateAll(ctx context.Context, markets []*model.Market) error
}

type marketLister interface {
	FindAll(ctx context.Context) ([]model.Market, error)
}

type marketDeleter interface {
	DeleteByID(ctx context.Context, id uint) error
}

type marketRequest struct {
	Name *string `json:"name"`
}

// AddMarketsHandler accepts a single market object or a list of them and
// persists the batch atomically, answering with the generated id(s).
func AddMarketsHandler(repo marketCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, isList, err := readBody(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		var requests []marketRequest
		if isList {
			if err := json.Unmarshal(body, &requests); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
				return
			}
		} else {
			var single marketRequest
			if err := json.Unmarshal(body, &single); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
				return
			}
			requests = []marketRequest{single}
		}

		markets := make([]*model.Market, 0, len(requests))
		for _, req := range requests {
			if req.Name == nil || *req.Name == "" {
				if isList {
					respondError(w, http.StatusBadRequest, "Each market object must include a 'name' field")
				} else {
					respondError(w, http.StatusBadRequest, "Market 'name' is required")
				}
				return
			}
			markets = append(markets, &model.Market{Name: *req.Name})
		}
		if len(markets) == 0 {
			respondError(w, http.StatusBadRequest, "Market 'name' is required")
			return
		}

		if err := repo.CreateAll(r.Context(), markets); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondError(w, http.StatusConflict, "market name already exists")
				return
			}
			logger.WithError(err).Error("failed to create markets")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		if isList {
			ids := make([]uint, len(markets))
			for i, market := range markets {
				ids[i] = market.ID
			}
			respondJSON(w, http.StatusCreated, map[string]interface{}{
				"message":    "Markets added successfully",
				"market_ids": ids,
			})
			return
		}

		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message":   "Market added successfully",
			"market_id": markets[0].ID,
		})
	}
}

// GetMarketsHandler lists all markets.
func GetMarketsHandler(repo marketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		markets, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list markets")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		respondJSON(w, http.StatusOK, markets)
	}
}

// DeleteMarketHandler deletes a market by the id query parameter.
func DeleteMarketHandler(repo marketDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid market id")
			return
		}

		if err := repo.DeleteByID(r.Context(), uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "Market not found")
				return
			}
			logger.WithError(err).Error("failed to delete market")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Market deleted successfully"})
	}
}

// DefaultAddMarketsHandler wires the handler to the production repository implementation.
func DefaultAddMarketsHandler() http.HandlerFunc {
	return AddMarketsHandler(repository.NewMarketRepository())
}

// DefaultGetMarketsHandler wires the handler to the production repository implementation.
func DefaultGetMarketsHandler() http.HandlerFunc {
	return GetMarketsHandler(repository.NewMarketRepository())
}

// DefaultDeleteMarketHandler wires the handler to the production repository implementation.
func DefaultDeleteMarketHandler() http.HandlerFunc {
	return DeleteMarketHandler(repository.NewMarketRepository())
}
