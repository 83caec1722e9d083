package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dinefinder/internal/apperr"
	"dinefinder/internal/domain/reviews"
)

const maxBodyBytes = 1_048_576 // 1mb

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// readJSON decodes a single JSON body into dst, rejecting unknown fields.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// classifyDecodeError turns a decoder error into a Validation error when the
// body was well-formed JSON that does not fit dst. Syntax errors and
// truncated bodies are returned unchanged.
func classifyDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field == "rating" {
			return apperr.Validation(apperr.CodeInvalidRating,
				"rating must be an integer between %d and %d", reviews.MinRating, reviews.MaxRating).Wrap(err)
		}
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Validation(apperr.CodeInvalidInput,
			"%s must be of type %s", field, typeErr.Type.String()).Wrap(err)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		name := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return apperr.Validation(apperr.CodeInvalidInput, "unknown field %s", name).Wrap(err)
	}
	return err
}

// readPayload decodes and validates dst. On failure it writes the error
// response and returns false.
func (app *application) readPayload(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := readJSON(w, r, dst); err != nil {
		app.decodeErrorResponse(w, r, err)
		return false
	}
	if err := apperr.ValidateStruct(dst); err != nil {
		app.errorResponse(w, r, err)
		return false
	}
	return true
}

// decodeErrorResponse reports a body that could not be decoded. Well-formed
// JSON of the wrong shape is a validation failure, anything else is
// malformed input.
func (app *application) decodeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if classified := classifyDecodeError(err); apperr.Is(classified, apperr.KindValidation) {
		app.errorResponse(w, r, classified)
		return
	}
	app.badRequestResponse(w, r, fmt.Errorf("malformed request body: %w", err))
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Status  int    `json:"status"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	}

	return writeJSON(w, status, &envelope{
		Success: false,
		Status:  status,
		Code:    code,
		Message: message,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Data any `json:"data"`
	}
	return writeJSON(w, status, &envelope{Data: data})
}
