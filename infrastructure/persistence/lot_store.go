package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/loftylabs/marketplace/domain/lot"
	"github.com/loftylabs/marketplace/internal/database"
)

// LotStore executes lot query plans against the database. It understands
// plans, not fieldsets; all composition decisions are made upstream by
// the planner.
type LotStore struct {
	db           database.Database
	imageBaseURL string
}

// NewLotStore creates a new LotStore. imageBaseURL must carry a trailing
// slash; image URLs are derived from it.
func NewLotStore(db database.Database, imageBaseURL string) LotStore {
	return LotStore{db: db, imageBaseURL: imageBaseURL}
}

// ExecutePlan runs a row-fetching plan and returns the flat rows.
func (s LotStore) ExecutePlan(ctx context.Context, plan lot.Plan) ([]lot.RawRow, error) {
	sql, args := buildPlanSQL(plan)

	var rows []map[string]any
	if err := s.db.Session(ctx).Raw(sql, args...).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}

	out := make([]lot.RawRow, len(rows))
	for i, row := range rows {
		out[i] = lot.RawRow(row)
	}
	return out, nil
}

// Count runs a count plan. The filtered join tree is wrapped in a
// subquery so the tally is unaffected by projection or paging.
func (s LotStore) Count(ctx context.Context, plan lot.Plan) (int, error) {
	inner, args := buildCountSQL(plan)
	sql := "SELECT COUNT(*) FROM (" + inner + ") AS result_set"

	var count int
	if err := s.db.Session(ctx).Raw(sql, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}
	return count, nil
}

// BidCounts tallies uncancelled live bids per lot and bid type. Rejected
// bids still count; only cancellation removes a bid from the tally.
func (s LotStore) BidCounts(ctx context.Context, tenantID string, lotIDs, types []string) ([]lot.BidCount, error) {
	if len(lotIDs) == 0 || len(types) == 0 {
		return nil, nil
	}

	var rows []struct {
		AuctionLotID string `gorm:"column:auction_lot_id"`
		Type         string `gorm:"column:type"`
		Count        int    `gorm:"column:count"`
	}
	err := s.db.Session(ctx).Raw(`
		SELECT "auction_lot_id", "type", COUNT(*) AS "count"
		FROM "live_bid"
		WHERE "tenant_id" = ? AND "auction_lot_id" IN ? AND "type" IN ?
		  AND "cancelled" = FALSE
		GROUP BY "auction_lot_id", "type"`,
		tenantID, lotIDs, types,
	).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}

	counts := make([]lot.BidCount, len(rows))
	for i, r := range rows {
		counts[i] = lot.BidCount{LotID: r.AuctionLotID, Type: r.Type, Count: r.Count}
	}
	return counts, nil
}

// HighestLiveBids returns the caller's highest live bid per lot, across
// all of the caller's registrations. Ties break to the earliest bid.
// Implemented with a window rank so the same statement runs on both
// supported drivers.
func (s LotStore) HighestLiveBids(ctx context.Context, tenantID, customerID string, lotIDs []string) ([]map[string]any, error) {
	if len(lotIDs) == 0 || customerID == "" {
		return nil, nil
	}

	var rows []map[string]any
	err := s.db.Session(ctx).Raw(`
		SELECT "row_id", "amount", "type", "registration_id", "auction_lot_id", "created_at"
		FROM (
			SELECT "live_bid".*,
			       ROW_NUMBER() OVER (
			           PARTITION BY "live_bid"."auction_lot_id"
			           ORDER BY "live_bid"."amount" DESC, "live_bid"."created_at" ASC
			       ) AS "bid_rank"
			FROM "live_bid"
			JOIN "auction_registration" ON "auction_registration"."row_id" = "live_bid"."registration_id"
			WHERE "live_bid"."tenant_id" = ? AND "auction_registration"."customer_id" = ?
			  AND "live_bid"."auction_lot_id" IN ?
			  AND "live_bid"."cancelled" = FALSE AND "live_bid"."rejected" = FALSE
		) AS "ranked"
		WHERE "bid_rank" = 1`,
		tenantID, customerID, lotIDs,
	).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}
	return rows, nil
}

// HighestAbsenteeBids returns the highest confirmed uncancelled absentee
// bid per lot across all bidders.
func (s LotStore) HighestAbsenteeBids(ctx context.Context, tenantID string, lotIDs []string) ([]map[string]any, error) {
	if len(lotIDs) == 0 {
		return nil, nil
	}

	var rows []map[string]any
	err := s.db.Session(ctx).Raw(`
		SELECT "row_id", "max_bid", "type", "confirmed", "registration_id", "auction_lot_id", "created_at"
		FROM (
			SELECT "absentee_bid".*,
			       ROW_NUMBER() OVER (
			           PARTITION BY "auction_lot_id"
			           ORDER BY "max_bid" DESC, "created_at" ASC
			       ) AS "bid_rank"
			FROM "absentee_bid"
			WHERE "tenant_id" = ? AND "auction_lot_id" IN ?
			  AND "confirmed" = TRUE AND "cancelled" = FALSE
		) AS "ranked"
		WHERE "bid_rank" = 1`,
		tenantID, lotIDs,
	).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}
	return rows, nil
}

// Images returns image references for the given lots, in display order,
// with caller-ready URLs derived from the configured image base.
func (s LotStore) Images(ctx context.Context, tenantID string, lotIDs []string) ([]lot.Image, error) {
	if len(lotIDs) == 0 {
		return nil, nil
	}

	var models []AuctionLotImageModel
	err := s.db.Session(ctx).
		Where("tenant_id = ? AND auction_lot_id IN ?", tenantID, lotIDs).
		Order("auction_lot_id, image_index").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}

	images := make([]lot.Image, len(models))
	for i, m := range models {
		images[i] = lot.Image{
			RowID:        m.RowID,
			AuctionLotID: m.AuctionLotID,
			Caption:      m.Caption,
			ThumbnailURL: s.imageURL(m.RowID, "thumbnail"),
			DetailURL:    s.imageURL(m.RowID, "detail"),
		}
	}
	return images, nil
}

// Categories returns category assignments grouped by lot id.
func (s LotStore) Categories(ctx context.Context, tenantID string, lotIDs []string) (map[string][]lot.Category, error) {
	if len(lotIDs) == 0 {
		return nil, nil
	}

	var rows []struct {
		AuctionLotID string `gorm:"column:auction_lot_id"`
		RowID        string `gorm:"column:row_id"`
		Name         string `gorm:"column:name"`
	}
	err := s.db.Session(ctx).Raw(`
		SELECT "auction_lot_category"."auction_lot_id", "category"."row_id", "category"."name"
		FROM "auction_lot_category"
		JOIN "category" ON "category"."row_id" = "auction_lot_category"."category_id"
		WHERE "category"."tenant_id" = ? AND "auction_lot_category"."auction_lot_id" IN ?
		ORDER BY "category"."name"`,
		tenantID, lotIDs,
	).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lot.ErrQueryExecution, err)
	}

	out := make(map[string][]lot.Category)
	for _, r := range rows {
		out[r.AuctionLotID] = append(out[r.AuctionLotID], lot.Category{RowID: r.RowID, Name: r.Name})
	}
	return out, nil
}

func (s LotStore) imageURL(imageID, variant string) string {
	return s.imageBaseURL + "images/" + imageID + "/" + variant + ".jpg"
}

// buildPlanSQL renders a row-fetching plan to a single SELECT. Join args
// precede predicate args, matching placeholder order in the statement.
func buildPlanSQL(plan lot.Plan) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	for i, c := range plan.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `%q.%q AS %q`, c.Alias, c.Column, c.Key())
	}
	b.WriteString(` FROM "auction_lot"`)

	args = writeJoinsAndWhere(&b, plan, args)

	if len(plan.Orders) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(plan.Orders, ", "))
	}
	if plan.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", plan.Limit)
	}
	if plan.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", plan.Offset)
	}

	return b.String(), args
}

// buildCountSQL renders the filtered join tree of a count plan, selecting
// only the base key. The caller wraps it in COUNT(*).
func buildCountSQL(plan lot.Plan) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString(`SELECT "auction_lot"."row_id" FROM "auction_lot"`)
	args = writeJoinsAndWhere(&b, plan, args)
	return b.String(), args
}

func writeJoinsAndWhere(b *strings.Builder, plan lot.Plan, args []any) []any {
	for _, j := range plan.Joins {
		b.WriteString(" ")
		b.WriteString(j.SQL)
		args = append(args, j.Args...)
	}
	if len(plan.Predicates) > 0 {
		b.WriteString(" WHERE ")
		for i, p := range plan.Predicates {
			if i > 0 {
				b.WriteString(" AND ")
			}
			b.WriteString(p.SQL)
			args = append(args, p.Args...)
		}
	}
	return args
}
