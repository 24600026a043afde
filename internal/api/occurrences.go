package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SergeyKozhin/events-platform-backend/internal/business/occurrences"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/go-chi/chi/v5"
)

func (a *Api) getUpcomingOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	count := 0
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			a.badRequestResponse(w, r, fmt.Errorf("count must be a positive integer"))
			return
		}
		count = n
	}
	includePast := r.URL.Query().Get("include_past") == "true"

	list, err := a.occurrencesService.GetUpcoming(r.Context(), chi.URLParam(r, "slug"), count, includePast)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get upcoming occurrences: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToOccurrenceListResp(list), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getOrCreateOccurrenceHandler(w http.ResponseWriter, r *http.Request) {
	event, err := a.occurrencesService.GetOrCreate(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "date"))
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get or create occurrence: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) materializeNextHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if v := r.URL.Query().Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			a.badRequestResponse(w, r, fmt.Errorf("n must be a positive integer"))
			return
		}

		events, err := a.occurrencesService.MaterializeNextN(r.Context(), slug, n)
		if err != nil {
			a.serviceErrorResponse(w, r, fmt.Errorf("materialize next %d: %w", n, err))
			return
		}

		resp := make([]*eventResp, len(events))
		for i, e := range events {
			resp[i] = mapToEventResp(e)
		}
		if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	event, err := a.occurrencesService.MaterializeNext(r.Context(), slug)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("materialize next: %w", err))
		return
	}
	if event == nil {
		// Nothing left to materialize in the near term.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateFutureOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Location        *string  `json:"location"`
		Capacity        *int     `json:"capacity"`
		RequireApproval *bool    `json:"require_approval"`
		Categories      []string `json:"categories"`

		// Deprecated aliases, still accepted from older clients.
		TemplateLocation *string `json:"template_location"`
		TemplateCapacity *int    `json:"template_capacity"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	updated, err := a.occurrencesService.UpdateFutureOccurrences(
		r.Context(),
		chi.URLParam(r, "slug"),
		chi.URLParam(r, "date"),
		occurrences.PropertyChanges{
			EventUpdate: model.EventUpdate{
				Name:            req.Name,
				Description:     req.Description,
				Location:        req.Location,
				Capacity:        req.Capacity,
				RequireApproval: req.RequireApproval,
				Categories:      req.Categories,
			},
			TemplateLocation: req.TemplateLocation,
			TemplateCapacity: req.TemplateCapacity,
		},
	)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update future occurrences: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, map[string]int{"updated": updated}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
