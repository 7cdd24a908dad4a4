package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, logger zerolog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func errorResponse(w http.ResponseWriter, logger zerolog.Logger, status int, message string) {
	jsonResponse(w, logger, status, ErrorResponse{Error: message})
}

// validationResponse writes a 400 naming every failed field
func validationResponse(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errorResponse(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}

	jsonResponse(w, logger, http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Details: strings.Join(fields, "; "),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}
