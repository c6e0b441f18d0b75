package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/loftylabs/marketplace/domain/lot"
	"github.com/loftylabs/marketplace/infrastructure/api/middleware"
	"github.com/loftylabs/marketplace/internal/config"
)

// TenantHeader names the header anonymous callers use to address a
// tenant. Authenticated callers are scoped by their token instead.
const TenantHeader = "X-Tenant-ID"

// tenantFromRequest resolves the tenant scope: the authenticated user's
// tenant wins over the header.
func tenantFromRequest(r *http.Request) (string, error) {
	tenantID := middleware.UserFromContext(r.Context()).TenantID()
	if tenantID == "" {
		tenantID = r.Header.Get(TenantHeader)
	}
	if tenantID == "" {
		return "", middleware.NewAPIError(http.StatusBadRequest, "missing tenant", nil)
	}
	return tenantID, nil
}

// queryFromRequest builds a lot query from URL parameters. Parameters:
// fieldsets (space-delimited), o/offset, n/limit, orderBy and order
// (comma-separated, positional), auctionId, lotIds (comma-separated).
func queryFromRequest(r *http.Request) (lot.Query, error) {
	user := middleware.UserFromContext(r.Context())

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		return lot.Query{}, err
	}

	params := r.URL.Query()

	fieldsets, err := lot.ParseFieldsets(params.Get("fieldsets"))
	if err != nil {
		return lot.Query{}, err
	}

	q := lot.NewQuery(tenantID).
		WithFieldsets(fieldsets).
		WithUser(user).
		WithPage(
			intParam(params.Get("o"), params.Get("offset"), 0),
			intParam(params.Get("n"), params.Get("limit"), config.DefaultPageLimit),
		)

	if auctionID := params.Get("auctionId"); auctionID != "" {
		q = q.WithAuctionID(auctionID)
	}
	if lotIDs := splitList(params.Get("lotIds")); len(lotIDs) > 0 {
		q = q.WithLotIDs(lotIDs)
	}
	if orderBy := splitList(params.Get("orderBy")); len(orderBy) > 0 {
		q = q.WithOrder(orderBy, splitList(params.Get("order")))
	}

	return q, nil
}

// listRequest is the POST body accepted by the list and map routes.
// Explicit lot id lists too long for a query string travel here.
type listRequest struct {
	Fieldsets string   `json:"fieldsets"`
	LotIDs    []string `json:"lotIds"`
	AuctionID string   `json:"auctionId"`
	Offset    int      `json:"offset"`
	Limit     int      `json:"limit"`
	OrderBy   []string `json:"orderBy"`
	Order     []string `json:"order"`
}

func (req listRequest) toQuery(r *http.Request) (lot.Query, error) {
	user := middleware.UserFromContext(r.Context())

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		return lot.Query{}, err
	}

	fieldsets, err := lot.ParseFieldsets(req.Fieldsets)
	if err != nil {
		return lot.Query{}, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = config.DefaultPageLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	q := lot.NewQuery(tenantID).
		WithFieldsets(fieldsets).
		WithUser(user).
		WithPage(offset, limit)

	if req.AuctionID != "" {
		q = q.WithAuctionID(req.AuctionID)
	}
	if len(req.LotIDs) > 0 {
		q = q.WithLotIDs(req.LotIDs)
	}
	if len(req.OrderBy) > 0 {
		q = q.WithOrder(req.OrderBy, req.Order)
	}

	return q, nil
}

// intParam returns the first parsable value of primary or alias, else
// the fallback. Negative values fall back too.
func intParam(primary, alias string, fallback int) int {
	for _, raw := range []string{primary, alias} {
		if raw == "" {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
