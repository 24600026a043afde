package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

func (a *Api) logError(_ *http.Request, err error) {
	a.logger.Errorw("server error", "error", err)
}

func (a *Api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	data := map[string]interface{}{"error": message}

	if err := a.writeJSON(w, status, data, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	a.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (a *Api) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	a.logger.Debugw("client error", "err", message)
	a.errorResponse(w, r, status, message)
}

func (a *Api) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	a.clientErrorResponse(w, r, http.StatusNotFound, message)
}

func (a *Api) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	a.clientErrorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (a *Api) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (a *Api) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

// serviceErrorResponse maps the engine's error taxonomy onto HTTP statuses.
// Rule and date validation failures are client errors surfaced verbatim.
func (a *Api) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrSeriesNotFound),
		errors.Is(err, model.ErrTemplateNotFound),
		errors.Is(err, model.ErrNoRecord):
		a.clientErrorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidRecurrenceRule),
		errors.Is(err, model.ErrInvalidOccurrenceDate),
		errors.Is(err, timeutil.ErrMalformedDate),
		errors.Is(err, timeutil.ErrUnknownTimeZone):
		a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrAlreadyExists):
		a.clientErrorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrTimeout):
		a.logError(r, err)
		a.errorResponse(w, r, http.StatusGatewayTimeout, "the operation timed out")
	default:
		a.serverErrorResponse(w, r, err)
	}
}
