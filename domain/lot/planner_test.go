package lot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftylabs/marketplace/domain/auth"
)

func customerUser(id string) auth.User {
	return auth.NewUser(id, "tenant-1", auth.KindCustomer, nil, nil)
}

func adminUser(id string) auth.User {
	return auth.NewUser(id, "tenant-1", auth.KindStaff, []string{"admin"}, nil)
}

func TestPlanList_DeduplicatesColumns(t *testing.T) {
	planner := NewPlanner(NewCatalog())

	// summary and detail both project the lot summary columns.
	q := NewQuery("tenant-1").WithFieldsets(NewFieldsets(FieldsetSummary, FieldsetDetail))
	plan, err := planner.PlanList(q)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, c := range plan.Columns {
		seen[c.Key()]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "column %s projected more than once", key)
	}
}

func TestPlanList_ShapeCoversEveryColumn(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	plan, err := planner.PlanList(NewQuery("tenant-1"))
	require.NoError(t, err)

	total := 0
	for _, g := range plan.Shape.Groups {
		total += len(g.Columns)
	}
	assert.Equal(t, len(plan.Columns), total)

	base, ok := plan.Shape.Group(AliasLot)
	require.True(t, ok)
	assert.Contains(t, base.Columns, "row_id")
}

func TestPlanCount_Collapses(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	q := NewQuery("tenant-1").
		WithFieldsets(NewFieldsets(FieldsetSummary)).
		WithOrder([]string{"title"}, []string{"desc"}).
		WithPage(60, 30)

	plan, err := planner.PlanCount(q)
	require.NoError(t, err)

	assert.True(t, plan.Count)
	assert.Empty(t, plan.Columns)
	assert.Empty(t, plan.Orders)
	assert.Zero(t, plan.Limit)
	assert.Zero(t, plan.Offset)
	// Anonymous count needs no joins: the visibility predicate has no
	// winner branch without an identity.
	assert.Empty(t, plan.Joins)
}

func TestPlanCount_KeepsPredicateJoins(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	q := NewQuery("tenant-1").WithUser(customerUser("cust-1"))

	plan, err := planner.PlanCount(q)
	require.NoError(t, err)

	keys := joinKeys(plan)
	assert.Contains(t, keys, AliasWinningReg)
	assert.NotContains(t, keys, AliasArtist)
	assert.NotContains(t, keys, AliasAuction)
}

func TestPredicates_TenantAndStatusAlwaysApply(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	plan, err := planner.PlanList(NewQuery("tenant-1"))
	require.NoError(t, err)

	require.NotEmpty(t, plan.Predicates)
	assert.Equal(t, `"auction_lot"."tenant_id" = ?`, plan.Predicates[0].SQL)
	assert.Equal(t, []any{"tenant-1"}, plan.Predicates[0].Args)
	assert.Contains(t, plan.Predicates[1].SQL, "NOT IN")
	assert.Equal(t, []any{StatusWithdrawn, StatusDraft}, plan.Predicates[1].Args)
}

func TestPredicates_VisibilityByCaller(t *testing.T) {
	planner := NewPlanner(NewCatalog())

	t.Run("anonymous sees unrestricted lots only", func(t *testing.T) {
		plan, err := planner.PlanList(NewQuery("tenant-1"))
		require.NoError(t, err)
		vis := visibilityPredicate(t, plan)
		assert.NotContains(t, vis.SQL, "winning_registration")
		// No winner-only branch at all: an unsold winner_only lot must
		// stay invisible without an identity.
		assert.Equal(t, []any{VisibilityAll}, vis.Args)
	})

	t.Run("customer gets winner branch with own id", func(t *testing.T) {
		plan, err := planner.PlanList(NewQuery("tenant-1").WithUser(customerUser("cust-1")))
		require.NoError(t, err)
		vis := visibilityPredicate(t, plan)
		assert.Contains(t, vis.SQL, `"winning_registration"."customer_id" = ?`)
		assert.Contains(t, vis.Args, "cust-1")
	})

	t.Run("admin bypasses visibility entirely", func(t *testing.T) {
		plan, err := planner.PlanList(NewQuery("tenant-1").WithUser(adminUser("staff-1")))
		require.NoError(t, err)
		for _, p := range plan.Predicates {
			assert.NotContains(t, p.SQL, "visibility")
		}
	})
}

func TestPredicates_Filters(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	q := NewQuery("tenant-1").
		WithAuctionID("auc-9").
		WithLotIDs([]string{"lot-1", "lot-2"})

	plan, err := planner.PlanList(q)
	require.NoError(t, err)

	var sqls []string
	for _, p := range plan.Predicates {
		sqls = append(sqls, p.SQL)
	}
	assert.Contains(t, sqls, `"auction_lot"."auction_id" = ?`)
	assert.Contains(t, sqls, `"auction_lot"."row_id" IN ?`)
}

func TestOrders_Mapping(t *testing.T) {
	planner := NewPlanner(NewCatalog())

	q := NewQuery("tenant-1").WithOrder(
		[]string{"current_bid", "lot_number"},
		[]string{"desc"},
	)
	plan, err := planner.PlanList(q)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`"winning_bid"."amount" DESC`,
		`"auction_lot"."lot_number" ASC`,
		`"auction_lot"."lot_number_extension" ASC`,
	}, plan.Orders)

	// Sorting on bid columns forces the winning bid join even for
	// projections that would not otherwise need it.
	assert.Contains(t, joinKeys(plan), AliasWinningBid)
}

func TestOrders_UnmappedFieldPassesThrough(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	plan, err := planner.PlanList(NewQuery("tenant-1").WithOrder(
		[]string{"sold_price"}, []string{"desc"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"sold_price DESC"}, plan.Orders)
}

func TestOrders_RejectsUnknownDirection(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	_, err := planner.PlanList(NewQuery("tenant-1").WithOrder([]string{"title"}, []string{"sideways"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlanDetail(t *testing.T) {
	planner := NewPlanner(NewCatalog())

	_, err := planner.PlanDetail(NewQuery("tenant-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	q := NewQuery("tenant-1").
		WithFieldsets(NewFieldsets(FieldsetDetail)).
		WithLotID("lot-42")
	plan, err := planner.PlanDetail(q)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Limit)
	last := plan.Predicates[len(plan.Predicates)-1]
	assert.Equal(t, `"auction_lot"."row_id" = ?`, last.SQL)
	assert.Equal(t, []any{"lot-42"}, last.Args)
}

func TestPlanList_SummaryProjectsAuction(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	plan, err := planner.PlanList(NewQuery("tenant-1"))
	require.NoError(t, err)

	keys := columnKeys(plan)
	assert.Contains(t, keys, "auction-row_id")
	assert.Contains(t, keys, "currency-currency_code")
	assert.Contains(t, joinKeys(plan), AliasAuction)
	// The winning bid chain belongs to the detail projection, not the
	// plain summary.
	assert.NotContains(t, keys, "winning_bid-amount")
}

func TestPlanList_DetailProjectsWinningChain(t *testing.T) {
	planner := NewPlanner(NewCatalog())

	for _, fs := range []Fieldset{FieldsetDetail, FieldsetTimedAuction} {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(fs)).
			WithUser(customerUser("cust-1"))
		plan, err := planner.PlanList(q)
		require.NoError(t, err)

		keys := columnKeys(plan)
		assert.Contains(t, keys, "winning_bid-amount", "fieldset %s", fs)
		assert.Contains(t, keys, "winning_registration-customer_id", "fieldset %s", fs)
		assert.Contains(t, keys, "winning_customer-given_name", "fieldset %s", fs)
		assert.Contains(t, keys, "artist_records-name", "fieldset %s", fs)
		assert.Contains(t, keys, "consignor-name", "fieldset %s", fs)
		assert.Contains(t, keys, "watched_lot-row_id", "fieldset %s", fs)

		joins := joinKeys(plan)
		assert.Contains(t, joins, AliasWinningBid, "fieldset %s", fs)
		assert.Contains(t, joins, AliasArtist, "fieldset %s", fs)
		assert.Contains(t, joins, AliasConsignor, "fieldset %s", fs)
	}
}

func TestPlanList_DetailWithoutIdentitySkipsWatchJoins(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	plan, err := planner.PlanList(NewQuery("tenant-1").WithFieldsets(NewFieldsets(FieldsetDetail)))
	require.NoError(t, err)

	assert.NotContains(t, joinKeys(plan), AliasWatchedLot)
	assert.NotContains(t, columnKeys(plan), "watched_lot-row_id")
}

func TestReserveStatus_RequiresPermission(t *testing.T) {
	planner := NewPlanner(NewCatalog())
	fs := NewFieldsets(FieldsetReserveStatus)

	// An admin role without the permission is not enough.
	plan, err := planner.PlanList(NewQuery("tenant-1").WithFieldsets(fs).WithUser(adminUser("staff-1")))
	require.NoError(t, err)
	for _, c := range plan.Columns {
		assert.NotEqual(t, "reserve_price", c.Column)
	}

	granted := auth.NewUser("staff-2", "tenant-1", auth.KindStaff, []string{"admin"},
		[]string{auth.PermissionPublishReserveStatus})
	plan, err = planner.PlanList(NewQuery("tenant-1").WithFieldsets(fs).WithUser(granted))
	require.NoError(t, err)

	var projected []string
	for _, c := range plan.Columns {
		projected = append(projected, c.Key())
	}
	assert.Contains(t, projected, "auction_lot-reserve_price")
}

func visibilityPredicate(t *testing.T, plan Plan) Predicate {
	t.Helper()
	for _, p := range plan.Predicates {
		if strings.Contains(p.SQL, "visibility") {
			return p
		}
	}
	t.Fatal("no visibility predicate in plan")
	return Predicate{}
}

func columnKeys(plan Plan) []string {
	keys := make([]string, len(plan.Columns))
	for i, c := range plan.Columns {
		keys[i] = c.Key()
	}
	return keys
}

func joinKeys(plan Plan) []string {
	keys := make([]string, len(plan.Joins))
	for i, j := range plan.Joins {
		keys[i] = j.Key
	}
	return keys
}
