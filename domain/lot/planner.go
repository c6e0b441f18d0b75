package lot

import "fmt"

// Predicate is one WHERE fragment with its bound arguments. Fragments
// are combined with AND by the executor.
type Predicate struct {
	SQL  string
	Args []any
}

// ShapeGroup describes the columns one table alias contributes to a row,
// used by the assembler to demultiplex flat rows into nested objects.
type ShapeGroup struct {
	Alias   string
	Columns []string
}

// RowShape is the plan's row layout descriptor. Groups are keyed by
// table alias; the assembler decides nesting from the alias alone.
type RowShape struct {
	Groups []ShapeGroup
}

// Group returns the shape group for the given alias, if present.
func (s RowShape) Group(alias string) (ShapeGroup, bool) {
	for _, g := range s.Groups {
		if g.Alias == alias {
			return g, true
		}
	}
	return ShapeGroup{}, false
}

// Plan is one executable query composition: the deduplicated projection,
// ordered joins, predicates, sort order, and paging. A count plan
// collapses the projection and drops sort and paging.
type Plan struct {
	Columns    []ColumnSpec
	Joins      []JoinClause
	Predicates []Predicate
	Orders     []string
	Limit      int
	Offset     int
	Count      bool
	Shape      RowShape
}

// Planner turns validated queries into plans. It is stateless; the
// catalog supplies the fieldset-to-column mapping.
type Planner struct {
	catalog Catalog
}

// NewPlanner returns a planner over the given catalog.
func NewPlanner(catalog Catalog) Planner {
	return Planner{catalog: catalog}
}

// PlanList builds the row-fetching plan for a list query.
func (p Planner) PlanList(q Query) (Plan, error) {
	if err := q.Validate(); err != nil {
		return Plan{}, err
	}

	columns := dedupColumns(p.catalog.Columns(q))
	orders, err := p.orders(q)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Columns:    columns,
		Joins:      dedupJoins(p.catalog.Joins(q, false)),
		Predicates: p.predicates(q),
		Orders:     orders,
		Limit:      q.Limit(),
		Offset:     q.Offset(),
		Shape:      shapeOf(columns),
	}, nil
}

// PlanCount builds the matching count plan for a list query. The
// projection collapses to a count, sort and paging are dropped, and only
// joins referenced by predicates survive.
func (p Planner) PlanCount(q Query) (Plan, error) {
	if err := q.Validate(); err != nil {
		return Plan{}, err
	}
	return Plan{
		Joins:      dedupJoins(p.catalog.Joins(q, true)),
		Predicates: p.predicates(q),
		Count:      true,
	}, nil
}

// PlanDetail builds the plan for a single-lot lookup. The lot id
// predicate replaces paging; at most one row can match.
func (p Planner) PlanDetail(q Query) (Plan, error) {
	if q.Where().LotID == "" {
		return Plan{}, fmt.Errorf("%w: missing lot id", ErrInvalidInput)
	}
	if err := q.Validate(); err != nil {
		return Plan{}, err
	}

	columns := dedupColumns(p.catalog.Columns(q))
	preds := p.predicates(q)
	preds = append(preds, Predicate{
		SQL:  `"auction_lot"."row_id" = ?`,
		Args: []any{q.Where().LotID},
	})

	return Plan{
		Columns:    columns,
		Joins:      dedupJoins(p.catalog.Joins(q, false)),
		Predicates: preds,
		Limit:      1,
		Shape:      shapeOf(columns),
	}, nil
}

func (p Planner) predicates(q Query) []Predicate {
	w := q.Where()
	preds := []Predicate{
		{SQL: `"auction_lot"."tenant_id" = ?`, Args: []any{w.TenantID}},
		{SQL: `"auction_lot"."status" NOT IN (?, ?)`, Args: []any{StatusWithdrawn, StatusDraft}},
	}

	if w.AuctionID != "" {
		preds = append(preds, Predicate{
			SQL:  `"auction_lot"."auction_id" = ?`,
			Args: []any{w.AuctionID},
		})
	}
	if len(w.LotIDs) > 0 {
		preds = append(preds, Predicate{
			SQL:  `"auction_lot"."row_id" IN ?`,
			Args: []any{w.LotIDs},
		})
	}

	// Visibility applies to everyone but administrators. The winner-only
	// branches exist only for identified callers: before sale any signed-in
	// bidder may see such lots, after sale only the winning customer.
	// Anonymous callers see unrestricted lots alone.
	if !q.IsAdmin() {
		if hasIdentity(q) {
			preds = append(preds, Predicate{
				SQL: `("auction_lot"."visibility" IS NULL OR "auction_lot"."visibility" = ?` +
					` OR ("auction_lot"."visibility" = ? AND "auction_lot"."status" <> ?)` +
					` OR ("auction_lot"."visibility" = ? AND "auction_lot"."status" = ? AND "winning_registration"."customer_id" = ?))`,
				Args: []any{
					VisibilityAll,
					VisibilityWinnerOnly, StatusSold,
					VisibilityWinnerOnly, StatusSold, w.AsUserID,
				},
			})
		} else {
			preds = append(preds, Predicate{
				SQL:  `("auction_lot"."visibility" IS NULL OR "auction_lot"."visibility" = ?)`,
				Args: []any{VisibilityAll},
			})
		}
	}

	return preds
}

// orderColumns maps caller-facing sort field names to plan-level order
// expressions. lot_number expands to a compound sort so extension
// suffixes tie-break within a number.
var orderColumns = map[string][]string{
	"artist_name":        {`"auction_lot"."artist"`},
	"title":              {`"auction_lot"."title"`},
	"extended_end_time":  {`"auction_lot"."extended_end_time"`},
	"most_recent_change": {`"winning_bid"."updated_at"`},
	"current_bid":        {`"winning_bid"."amount"`},
	"lot_number":         {`"auction_lot"."lot_number"`, `"auction_lot"."lot_number_extension"`},
}

func (p Planner) orders(q Query) ([]string, error) {
	fields := q.OrderBy()
	dirs := q.Orders()

	var out []string
	for i, field := range fields {
		exprs, ok := orderColumns[field]
		if !ok {
			// Unmapped fields pass through verbatim as raw sort
			// expressions. Callers own sanitisation of anything they
			// feed this escape hatch.
			exprs = []string{field}
		}

		dir := "ASC"
		if i < len(dirs) {
			switch dirs[i] {
			case "", "asc", "ASC":
			case "desc", "DESC":
				dir = "DESC"
			default:
				return nil, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, dirs[i])
			}
		}

		for _, expr := range exprs {
			out = append(out, expr+" "+dir)
		}
	}
	return out, nil
}

func dedupColumns(columns []ColumnSpec) []ColumnSpec {
	seen := make(map[string]struct{}, len(columns))
	out := make([]ColumnSpec, 0, len(columns))
	for _, c := range columns {
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupJoins(joins []JoinClause) []JoinClause {
	seen := make(map[string]struct{}, len(joins))
	out := make([]JoinClause, 0, len(joins))
	for _, j := range joins {
		if _, dup := seen[j.Key]; dup {
			continue
		}
		seen[j.Key] = struct{}{}
		out = append(out, j)
	}
	return out
}

func shapeOf(columns []ColumnSpec) RowShape {
	var shape RowShape
	index := make(map[string]int)
	for _, c := range columns {
		i, ok := index[c.Alias]
		if !ok {
			i = len(shape.Groups)
			index[c.Alias] = i
			shape.Groups = append(shape.Groups, ShapeGroup{Alias: c.Alias})
		}
		shape.Groups[i].Columns = append(shape.Groups[i].Columns, c.Column)
	}
	return shape
}
