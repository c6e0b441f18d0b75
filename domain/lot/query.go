package lot

import (
	"github.com/loftylabs/marketplace/domain/auth"
	"github.com/loftylabs/marketplace/internal/config"
)

// Filter narrows the set of lots a query addresses. TenantID is always
// required; the remaining members are optional.
type Filter struct {
	TenantID  string
	AuctionID string
	LotIDs    []string
	LotID     string
	AsUserID  string
}

// Query captures one caller request against the lot engine: the requested
// projection, the filter, the caller's identity, and paging. Query is an
// immutable value; the With methods return modified copies.
type Query struct {
	fieldsets Fieldsets
	where     Filter
	user      auth.User
	offset    int
	limit     int
	orderBy   []string
	orders    []string
}

// NewQuery builds a query for the given tenant with the default summary
// projection and the default page size.
func NewQuery(tenantID string) Query {
	return Query{
		fieldsets: NewFieldsets(FieldsetSummary),
		where:     Filter{TenantID: tenantID},
		limit:     config.DefaultPageLimit,
	}
}

// WithFieldsets returns a copy projecting the given fieldsets.
func (q Query) WithFieldsets(fs Fieldsets) Query {
	q.fieldsets = fs
	return q
}

// WithUser returns a copy carrying the caller's identity. The caller's
// row id is also recorded on the filter so visibility predicates and the
// winning-bid privacy rule can reference it.
func (q Query) WithUser(u auth.User) Query {
	q.user = u
	// Only customers carry a bidder identity; staff act on behalf of the
	// house and never match customer-scoped joins.
	if u.IsCustomer() {
		q.where.AsUserID = u.ID()
	}
	return q
}

// WithAuctionID returns a copy filtered to one auction.
func (q Query) WithAuctionID(id string) Query {
	q.where.AuctionID = id
	return q
}

// WithLotIDs returns a copy filtered to an explicit lot id list.
func (q Query) WithLotIDs(ids []string) Query {
	q.where.LotIDs = ids
	return q
}

// WithLotID returns a copy addressing a single lot.
func (q Query) WithLotID(id string) Query {
	q.where.LotID = id
	return q
}

// WithPage returns a copy with the given offset and limit.
func (q Query) WithPage(offset, limit int) Query {
	q.offset = offset
	q.limit = limit
	return q
}

// WithOrder returns a copy sorted by the given fields and directions.
// Fields and directions are matched positionally; a missing direction
// defaults to ascending at planning time.
func (q Query) WithOrder(fields, directions []string) Query {
	q.orderBy = fields
	q.orders = directions
	return q
}

// Fieldsets returns the requested projection.
func (q Query) Fieldsets() Fieldsets { return q.fieldsets }

// Where returns the filter.
func (q Query) Where() Filter { return q.where }

// User returns the caller's identity; the zero User for anonymous calls.
func (q Query) User() auth.User { return q.user }

// IsAdmin reports whether the caller holds an administrative role.
func (q Query) IsAdmin() bool { return q.user.IsAdmin() }

// Offset returns the page offset.
func (q Query) Offset() int { return q.offset }

// Limit returns the page size.
func (q Query) Limit() int { return q.limit }

// OrderBy returns the requested sort fields.
func (q Query) OrderBy() []string { return q.orderBy }

// Orders returns the requested sort directions.
func (q Query) Orders() []string { return q.orders }

// Validate rejects malformed queries before any plan is built. A lot id
// filter larger than the cap is refused outright rather than truncated.
func (q Query) Validate() error {
	if err := q.fieldsets.Validate(); err != nil {
		return err
	}
	if n := len(q.where.LotIDs); n > config.MaxLotIDFilter {
		return &TooManyLotIDsError{Count: n, Max: config.MaxLotIDFilter}
	}
	return nil
}
