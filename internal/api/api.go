package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/events-platform-backend/internal/business/occurrences"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	seriesService      seriesService
	occurrencesService occurrencesService
}

type seriesService interface {
	Create(ctx context.Context, info *model.SeriesCreate) (*model.Series, error)
	Get(ctx context.Context, slug string) (*model.Series, error)
	Update(ctx context.Context, slug string, info *model.SeriesUpdate) (*model.Series, error)
	Delete(ctx context.Context, slug string, mode model.DeleteMode) error
	Describe(rule recurrence.Rule) string
}

type occurrencesService interface {
	GetOrCreate(ctx context.Context, seriesSlug, date string) (*model.Event, error)
	GetUpcoming(ctx context.Context, seriesSlug string, count int, includePast bool) (*model.OccurrenceList, error)
	MaterializeNext(ctx context.Context, seriesSlug string) (*model.Event, error)
	MaterializeNextN(ctx context.Context, seriesSlug string, n int) ([]*model.Event, error)
	UpdateFutureOccurrences(ctx context.Context, seriesSlug, fromDate string, changes occurrences.PropertyChanges) (int, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	series seriesService,
	occurrences occurrencesService,
) *Api {
	a := &Api{
		logger:             logger,
		seriesService:      series,
		occurrencesService: occurrences,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/series", func(r chi.Router) {
		r.Post("/", a.createSeriesHandler)
		r.Get("/{slug}", a.getSeriesHandler)
		r.Patch("/{slug}", a.updateSeriesHandler)
		r.Delete("/{slug}", a.deleteSeriesHandler)

		r.Get("/{slug}/occurrences", a.getUpcomingOccurrencesHandler)
		r.Post("/{slug}/occurrences/{date}", a.getOrCreateOccurrenceHandler)
		r.Post("/{slug}/materialize-next", a.materializeNextHandler)
		r.Patch("/{slug}/future-from/{date}", a.updateFutureOccurrencesHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
