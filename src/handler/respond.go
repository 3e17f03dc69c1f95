package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	logger "github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// readBody buffers the request body and reports whether it is a JSON list.
// The journal's add endpoints accept either a single object or a list of
// them under the same route.
func readBody(r *http.Request) (body []byte, isList bool, err error) {
	body, err = io.ReadAll(r.Body)
	if err != nil {
		return nil, false, err
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return body, len(trimmed) > 0 && trimmed[0] == '[', nil
}

// parseAmount coerces the loosely-typed "amount" field callers send: JSON
// numbers and numeric strings are both accepted.
func parseAmount(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		amount, err := strconv.ParseFloat(v, 64)
		return amount, err == nil
	default:
		return 0, false
	}
}
