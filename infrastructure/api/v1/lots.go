package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/loftylabs/marketplace/application/service"
	"github.com/loftylabs/marketplace/domain/lot"
	"github.com/loftylabs/marketplace/infrastructure/api/middleware"
	"github.com/loftylabs/marketplace/internal/log"
)

// Lots exposes the auction lot query engine over HTTP.
type Lots struct {
	lots   *service.Lots
	logger *log.Logger
}

// NewLots creates a new Lots handler.
func NewLots(lots *service.Lots, logger *log.Logger) *Lots {
	return &Lots{lots: lots, logger: logger}
}

// RegisterRoutes mounts the public lot routes.
func (h *Lots) RegisterRoutes(r chi.Router) {
	r.Get("/api/auction-lot", h.list)
	r.Post("/api/auction-lot-list", h.listFromBody)
	r.Post("/api/auction-lot-map", h.mapFromBody)
}

// RegisterAdminRoutes mounts the admin-only lot routes.
func (h *Lots) RegisterAdminRoutes(r chi.Router) {
	r.Get("/api/admin/auction-lot/{id}", h.detail)
}

func (h *Lots) list(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	h.respondPage(w, r, q, baseQueryString(r.URL.Path, r.URL.Query()))
}

func (h *Lots) listFromBody(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, h.logger,
			middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err))
		return
	}

	q, err := req.toQuery(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	entities, err := h.lots.List(r.Context(), q)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if entities == nil {
		entities = []lot.Entity{}
	}
	WriteJSON(w, http.StatusOK, entities)
}

// respondPage fetches the page and its total concurrently and writes the
// envelope.
func (h *Lots) respondPage(w http.ResponseWriter, r *http.Request, q lot.Query, baseQuery string) {
	var (
		entities []lot.Entity
		total    int
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		entities, err = h.lots.List(ctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.lots.Count(ctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	envelope := BuildEnvelope(entities, total, baseQuery, Paging{
		Offset: q.Offset(),
		Limit:  q.Limit(),
	})
	WriteJSON(w, http.StatusOK, envelope)
}

func (h *Lots) mapFromBody(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, h.logger,
			middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err))
		return
	}

	q, err := req.toQuery(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	entities, err := h.lots.Map(r.Context(), q)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, entities)
}

func (h *Lots) detail(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	q = q.WithLotID(chi.URLParam(r, "id"))

	entity, err := h.lots.Detail(r.Context(), q)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if entity == nil {
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: "auction lot not found"})
		return
	}
	WriteJSON(w, http.StatusOK, entity)
}
