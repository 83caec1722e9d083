package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"dinefinder/internal/apperr"
)

const (
	codeBadRequest   = "bad_request"
	codeNotFound     = "not_found"
	codeRateLimited  = "rate_limited"
	codeInternal     = "internal_error"
	codeUnauthorized = apperr.CodeUnauthorized
)

func (app *application) logClientError(r *http.Request, msg string, err error) {
	app.logger.Warnw(msg,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err.Error(),
	)
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err.Error(),
	)

	writeJSONError(w, http.StatusInternalServerError, codeInternal, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logClientError(r, "bad request", err)

	writeJSONError(w, http.StatusBadRequest, codeBadRequest, err.Error())
}

func (app *application) validationErrorResponse(w http.ResponseWriter, r *http.Request, code string, err error) {
	app.logClientError(r, "validation error", err)

	writeJSONError(w, http.StatusUnprocessableEntity, code, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, code string, err error) {
	app.logClientError(r, "not found", err)

	writeJSONError(w, http.StatusNotFound, code, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, code string, err error) {
	app.logClientError(r, "conflict", err)

	writeJSONError(w, http.StatusConflict, code, err.Error())
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, code string, err error) {
	app.logClientError(r, "forbidden", err)

	writeJSONError(w, http.StatusForbidden, code, err.Error())
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logClientError(r, "unauthorized error", err)

	w.Header().Set("WWW-Authenticate", `Bearer`)
	writeJSONError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logClientError(r, "unauthorized basic error", err)

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	writeJSONError(w, http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded, retry after: "+strconv.Itoa(secs)+"s")
}

// errorResponse maps a classified domain error to its status code. Anything
// unclassified is a 500.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		app.internalServerError(w, r, err)
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		app.validationErrorResponse(w, r, appErr.Code, appErr)
	case apperr.KindNotFound:
		app.notFoundResponse(w, r, appErr.Code, appErr)
	case apperr.KindConflict:
		app.conflictResponse(w, r, appErr.Code, appErr)
	case apperr.KindPermissionDenied:
		app.forbiddenResponse(w, r, appErr.Code, appErr)
	case apperr.KindUnauthorized:
		app.unauthorizedErrorResponse(w, r, appErr)
	default:
		app.internalServerError(w, r, err)
	}
}
