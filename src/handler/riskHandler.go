package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tradingjournal/src/risk"
)

type riskRequest struct {
	RiskPercentage *float64 `json:"risk_percentage"`
}

// SetRiskHandler updates the account-wide risk fraction. Valid values are in
// (0, 1]; the value lives in memory only and resets on restart.
func SetRiskHandler(settings *risk.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req riskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RiskPercentage == nil {
			respondError(w, http.StatusBadRequest, "risk_percentage is required and must be a number")
			return
		}

		if err := settings.SetFraction(*req.RiskPercentage); err != nil {
			respondError(w, http.StatusBadRequest, "Risk percentage must be between 0 and 1")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Risk percentage set to %v%%", *req.RiskPercentage*100),
		})
	}
}

// GetRiskHandler reports the current risk fraction.
func GetRiskHandler(settings *risk.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]float64{
			"risk_percentage": settings.Fraction(),
		})
	}
}
