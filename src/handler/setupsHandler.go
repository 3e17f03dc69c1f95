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

type setupCreator interface {
	CreateAll(ctx context.Context, setups []*model.TradeSetup) error
}

type setupLister interface {
	FindAll(ctx context.Context) ([]model.TradeSetup, error)
}

type setupDeleter interface {
	DeleteByID(ctx context.Context, id uint) error
}

type setupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddSetupsHandler accepts a single setup object or a list of them; both name
// and description are required for every item.
func AddSetupsHandler(repo setupCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, isList, err := readBody(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		var requests []setupRequest
		if isList {
			if err := json.Unmarshal(body, &requests); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
				return
			}
		} else {
			var single setupRequest
			if err := json.Unmarshal(body, &single); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid data format. Expected a JSON object or list.")
				return
			}
			requests = []setupRequest{single}
		}

		setups := make([]*model.TradeSetup, 0, len(requests))
		for _, req := range requests {
			if req.Name == nil || *req.Name == "" || req.Description == nil || *req.Description == "" {
				if isList {
					respondError(w, http.StatusBadRequest, "Each setup object must include 'name' and 'description' fields")
				} else {
					respondError(w, http.StatusBadRequest, "Both 'name' and 'description' are required")
				}
				return
			}
			setups = append(setups, &model.TradeSetup{Name: *req.Name, Description: *req.Description})
		}
		if len(setups) == 0 {
			respondError(w, http.StatusBadRequest, "Both 'name' and 'description' are required")
			return
		}

		if err := repo.CreateAll(r.Context(), setups); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondError(w, http.StatusConflict, "trade setup name already exists")
				return
			}
			logger.WithError(err).Error("failed to create trade setups")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		if isList {
			ids := make([]uint, len(setups))
			for i, setup := range setups {
				ids[i] = setup.ID
			}
			respondJSON(w, http.StatusCreated, map[string]interface{}{
				"message":   "Trade setups added successfully",
				"setup_ids": ids,
			})
			return
		}

		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message":  "Trade setup added successfully",
			"setup_id": setups[0].ID,
		})
	}
}

// GetSetupsHandler lists all trade setups.
func GetSetupsHandler(repo setupLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setups, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list trade setups")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		respondJSON(w, http.StatusOK, setups)
	}
}

// DeleteSetupHandler deletes a setup by the id query parameter.
func DeleteSetupHandler(repo setupDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid trade setup id")
			return
		}

		if err := repo.DeleteByID(r.Context(), uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "Trade setup not found")
				return
			}
			logger.WithError(err).Error("failed to delete trade setup")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Trade setup deleted successfully"})
	}
}

// DefaultAddSetupsHandler wires the handler to the production repository implementation.
func DefaultAddSetupsHandler() http.HandlerFunc {
	return AddSetupsHandler(repository.NewSetupRepository())
}

// DefaultGetSetupsHandler wires the handler to the production repository implementation.
func DefaultGetSetupsHandler() http.HandlerFunc {
	return GetSetupsHandler(repository.NewSetupRepository())
}

// DefaultDeleteSetupHandler wires the handler to the production repository implementation.
func DefaultDeleteSetupHandler() http.HandlerFunc {
	return DeleteSetupHandler(repository.NewSetupRepository())
}
