package api

import (
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

func (a *Api) createSeriesHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Slug          string        `json:"slug"`
		Name          string        `json:"name"`
		Description   string        `json:"description"`
		UserID        int64         `json:"user_id"`
		GroupID       *int64        `json:"group_id"`
		Rule          *ruleReq      `json:"rule"`
		TemplateEvent *string       `json:"template_event"`
		Timezone      string        `json:"timezone"`
		Overrides     *overridesReq `json:"overrides"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(len(req.Name) != 0, "name", "name must be provided")
	v.Check(req.UserID != 0, "user_id", "user_id must be provided")
	v.Check(req.Rule != nil, "rule", "rule must be provided")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	rule, err := mapToRule(req.Rule)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	series, err := a.seriesService.Create(r.Context(), &model.SeriesCreate{
		Slug:              req.Slug,
		Name:              req.Name,
		Description:       req.Description,
		UserID:            req.UserID,
		GroupID:           req.GroupID,
		Rule:              rule,
		TemplateEventSlug: req.TemplateEvent,
		Timezone:          req.Timezone,
		Overrides:         mapToOverrides(req.Overrides),
	})
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create series: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, a.mapToSeriesResp(series), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getSeriesHandler(w http.ResponseWriter, r *http.Request) {
	series, err := a.seriesService.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get series: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, a.mapToSeriesResp(series), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateSeriesHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Name        *string       `json:"name"`
		Description *string       `json:"description"`
		Rule        *ruleReq      `json:"rule"`
		Timezone    *string       `json:"timezone"`
		Overrides   *overridesReq `json:"overrides"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	update := &model.SeriesUpdate{
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
		Overrides:   mapToOverrides(req.Overrides),
	}
	if req.Rule != nil {
		rule, err := mapToRule(req.Rule)
		if err != nil {
			a.badRequestResponse(w, r, err)
			return
		}
		update.Rule = &rule
	}

	series, err := a.seriesService.Update(r.Context(), chi.URLParam(r, "slug"), update)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update series: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, a.mapToSeriesResp(series), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteSeriesHandler(w http.ResponseWriter, r *http.Request) {
	mode := model.DeleteModeCascade
	switch r.URL.Query().Get("mode") {
	case "", "cascade":
	case "detach":
		mode = model.DeleteModeDetach
	default:
		a.badRequestResponse(w, r, fmt.Errorf("mode must be cascade or detach"))
		return
	}

	if err := a.seriesService.Delete(r.Context(), chi.URLParam(r, "slug"), mode); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete series: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
