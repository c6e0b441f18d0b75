package service

import (
	"context"

	"github.com/loftylabs/marketplace/domain/lot"
	"github.com/loftylabs/marketplace/internal/log"
)

// Lots composes, executes, and enriches auction lot queries. It owns the
// enrichment pipeline; the planner and assembler stay pure and the store
// only ever sees finished plans.
type Lots struct {
	store     lot.Store
	planner   lot.Planner
	assembler lot.Assembler
	logger    *log.Logger
}

// NewLots creates a new Lots service. serverBaseURL feeds the entity
// links the assembler derives and must be slash-terminated.
func NewLots(store lot.Store, serverBaseURL string, logger *log.Logger) *Lots {
	return &Lots{
		store:     store,
		planner:   lot.NewPlanner(lot.NewCatalog()),
		assembler: lot.NewAssembler(serverBaseURL),
		logger:    logger,
	}
}

// List returns one page of assembled, enriched entities.
func (s *Lots) List(ctx context.Context, q lot.Query) ([]lot.Entity, error) {
	plan, err := s.planner.PlanList(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ExecutePlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	entities := s.assembler.Assemble(rows, plan.Shape, q)
	if err := s.enrich(ctx, q, entities, false); err != nil {
		return nil, err
	}
	return entities, nil
}

// Count returns the total number of lots the query matches, ignoring
// paging.
func (s *Lots) Count(ctx context.Context, q lot.Query) (int, error) {
	plan, err := s.planner.PlanCount(q)
	if err != nil {
		return 0, err
	}
	return s.store.Count(ctx, plan)
}

// Map returns the query's entities keyed by lot id instead of paged.
func (s *Lots) Map(ctx context.Context, q lot.Query) (map[string]lot.Entity, error) {
	entities, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make(map[string]lot.Entity, len(entities))
	for _, e := range entities {
		out[e.RowID()] = e
	}
	return out, nil
}

// Detail returns a single assembled, enriched entity, or nil when no
// visible lot matches the id.
func (s *Lots) Detail(ctx context.Context, q lot.Query) (lot.Entity, error) {
	plan, err := s.planner.PlanDetail(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ExecutePlan(ctx, plan)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	entities := s.assembler.Assemble(rows[:1], plan.Shape, q)
	if err := s.enrich(ctx, q, entities, true); err != nil {
		return nil, err
	}
	return entities[0], nil
}

// enrich runs the gated enrichment stages over assembled entities. Each
// stage issues at most one query, only when its gate is open and there
// are lots to enrich. Merges overwrite the neutral values the assembler
// seeded, so re-running a stage cannot change the result. detail marks
// the single-lot path, which alone carries category assignments.
func (s *Lots) enrich(ctx context.Context, q lot.Query, entities []lot.Entity, detail bool) error {
	if len(entities) == 0 {
		return nil
	}

	fs := q.Fieldsets()
	tenantID := q.Where().TenantID
	lotIDs := make([]string, 0, len(entities))
	for _, e := range entities {
		if id := e.RowID(); id != "" {
			lotIDs = append(lotIDs, id)
		}
	}

	var bidTypes []string
	if fs.Has(lot.FieldsetLiveBidLiveCount) {
		bidTypes = append(bidTypes, lot.BidTypeLive)
	}
	if fs.Has(lot.FieldsetLiveBidTimedCount) {
		bidTypes = append(bidTypes, lot.BidTypeTimed)
	}
	if len(bidTypes) > 0 {
		counts, err := s.store.BidCounts(ctx, tenantID, lotIDs, bidTypes)
		if err != nil {
			return err
		}
		lot.MergeBidCounts(entities, counts)
		s.logger.DebugContext(ctx, "enriched bid counts", "lots", len(lotIDs), "rows", len(counts))
	}

	// The live-bid stage is caller-scoped: without an identity there is
	// nothing to fetch and no query is issued.
	if fs.Has(lot.FieldsetHighestLiveBid) && q.Where().AsUserID != "" {
		bids, err := s.store.HighestLiveBids(ctx, tenantID, q.Where().AsUserID, lotIDs)
		if err != nil {
			return err
		}
		lot.MergeHighestLiveBids(entities, bids)
	}

	// Absentee maximums expose what every bidder committed to, so only
	// admins get the stage.
	if q.IsAdmin() && fs.HasAny(lot.FieldsetSummary, lot.FieldsetDetail) {
		bids, err := s.store.HighestAbsenteeBids(ctx, tenantID, lotIDs)
		if err != nil {
			return err
		}
		lot.MergeHighestAbsenteeBids(entities, bids)
	}

	if fs.HasAny(lot.FieldsetReserveStatus, lot.FieldsetDetail, lot.FieldsetTimedAuction) {
		images, err := s.store.Images(ctx, tenantID, lotIDs)
		if err != nil {
			return err
		}
		lot.MergeImages(entities, images)
	}

	if detail {
		categories, err := s.store.Categories(ctx, tenantID, lotIDs)
		if err != nil {
			return err
		}
		lot.MergeCategories(entities, categories)
	}

	return nil
}
