package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	respondJSON(w, status, map[string]any{"error": err.Error()})
}

// respondActionError maps the domain and upstream error kinds onto HTTP
// statuses. Upstream envelope errors keep their original status code so the
// browser client sees the same signal it would get talking to μLearn directly.
func respondActionError(w http.ResponseWriter, err error) {
	var apiErr *mulearn.APIError
	switch {
	case errors.Is(err, hiredesk.ErrNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, hiredesk.ErrMissingApplicationID):
		respondError(w, http.StatusConflict, err)
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		msg := "upstream request failed"
		if len(apiErr.Messages) > 0 {
			msg = apiErr.Messages[0]
		}
		respondJSON(w, status, map[string]any{"error": msg})
	default:
		respondError(w, http.StatusBadGateway, err)
	}
}
