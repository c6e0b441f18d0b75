package lot

import "context"

// Store is the executor contract the engine composes against. An
// implementation runs plans verbatim; it never inspects fieldsets or
// rewrites predicates.
type Store interface {
	// ExecutePlan runs a row-fetching plan and returns flat rows keyed
	// by the plan's column aliases.
	ExecutePlan(ctx context.Context, plan Plan) ([]RawRow, error)

	// Count runs a count plan.
	Count(ctx context.Context, plan Plan) (int, error)

	// BidCounts tallies live bids per lot for the given bid types.
	BidCounts(ctx context.Context, tenantID string, lotIDs, types []string) ([]BidCount, error)

	// HighestLiveBids returns the caller's highest live bid per lot.
	// Scoping to the caller keeps other bidders' amounts invisible.
	HighestLiveBids(ctx context.Context, tenantID, customerID string, lotIDs []string) ([]map[string]any, error)

	// HighestAbsenteeBids returns the highest confirmed absentee bid per
	// lot across all bidders.
	HighestAbsenteeBids(ctx context.Context, tenantID string, lotIDs []string) ([]map[string]any, error)

	// Images returns image references for the given lots in display order.
	Images(ctx context.Context, tenantID string, lotIDs []string) ([]Image, error)

	// Categories returns category assignments grouped by lot id.
	Categories(ctx context.Context, tenantID string, lotIDs []string) (map[string][]Category, error)
}
