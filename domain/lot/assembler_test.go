package lot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftylabs/marketplace/domain/auth"
)

const testBaseURL = "https://api.example.com/"

func newTestAssembler() Assembler {
	return NewAssembler(testBaseURL)
}

// planFor builds a plan and a matching raw row skeleton for a query.
func planFor(t *testing.T, q Query) Plan {
	t.Helper()
	plan, err := NewPlanner(NewCatalog()).PlanList(q)
	require.NoError(t, err)
	return plan
}

func summaryRow(lotID string) RawRow {
	return RawRow{
		"auction_lot-row_id":     lotID,
		"auction_lot-tenant_id":  "tenant-1",
		"auction_lot-auction_id": "auc-1",
		"auction_lot-title":      "Untitled",
		"auction_lot-artist":     "R. Mutt",
		"auction_lot-status":     "open",
	}
}

func winningChainRow(lotID string) RawRow {
	row := summaryRow(lotID)
	row["winning_bid-row_id"] = "bid-1"
	row["winning_bid-amount"] = 1200.0
	row["winning_bid-registration_id"] = "reg-1"
	row["winning_registration-row_id"] = "reg-1"
	row["winning_registration-customer_id"] = "cust-9"
	row["winning_customer-row_id"] = "cust-9"
	row["winning_customer-given_name"] = "Ada"
	row["winning_customer-family_name"] = "Byron"
	return row
}

func TestAssemble_BaseColumnsOnRoot(t *testing.T) {
	q := NewQuery("tenant-1")
	plan := planFor(t, q)

	entities := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)
	require.Len(t, entities, 1)

	e := entities[0]
	assert.Equal(t, "lot-1", e.RowID())
	assert.Equal(t, "Untitled", e["title"])
	assert.Equal(t, "R. Mutt", e["artist"])
}

func TestAssemble_SummaryAuctionPresentation(t *testing.T) {
	q := NewQuery("tenant-1")
	plan := planFor(t, q)

	row := summaryRow("lot-1")
	row["auction-row_id"] = "auc-1"
	row["auction-title"] = "Spring Sale"
	row["currency-currency_code"] = "USD"

	e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]

	auction, ok := e["auction"].(map[string]any)
	require.True(t, ok, "summary rows carry the auction sub-object")
	assert.Equal(t, "Spring Sale", auction["title"])
	assert.Equal(t, "auction-summary", auction["type"])

	// The currency code rides on the auction; there is no separate
	// currency sub-object.
	assert.Equal(t, "USD", auction["currency_code"])
	_, hasCurrency := e["currency"]
	assert.False(t, hasCurrency)

	assert.Equal(t, testBaseURL+"v1/auction/auc-1/summary", auction["self_url"])
	assert.Equal(t, testBaseURL+"v1/auction/auc-1", auction["detail_url"])
	assert.Equal(t, testBaseURL+"v1/auction/auc-1/lots", auction["lot_url"])

	// Aggregate counters ship as hard zeros; true values come from the
	// dedicated reporting queries, never inline per lot.
	for _, key := range []string{
		"lot_count", "active_lot_count", "sold_lot_count",
		"total_sold_value", "total_hammer_price",
	} {
		assert.Equal(t, 0, auction[key], key)
	}

	// A consignor slot accompanies the auction even when nothing joined.
	consignor, hasConsignor := e["consignor"]
	assert.True(t, hasConsignor)
	assert.Nil(t, consignor)
}

func TestAssemble_DetailArtistRecords(t *testing.T) {
	q := NewQuery("tenant-1").
		WithFieldsets(NewFieldsets(FieldsetDetail)).
		WithUser(customerUser("cust-1"))
	plan := planFor(t, q)

	t.Run("empty array without an artist", func(t *testing.T) {
		e := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
		assert.Equal(t, []map[string]any{}, e["artist_records"])
	})

	t.Run("record carries links, watch state, and type", func(t *testing.T) {
		row := summaryRow("lot-1")
		row["artist_records-row_id"] = "art-1"
		row["artist_records-name"] = "Marcel"
		row["watched_artist-row_id"] = "wa-1"

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		records, ok := e["artist_records"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "Marcel", rec["name"])
		assert.Equal(t, "artist-summary", rec["type"])
		assert.Equal(t, true, rec["is_watched"])
		assert.Equal(t, testBaseURL+"v1/artist/art-1/summary", rec["self_url"])
		assert.Equal(t, testBaseURL+"v1/artist/art-1", rec["detail_url"])
		assert.Equal(t, testBaseURL+"v1/artist/art-1/watch", rec["watch_url"])
	})
}

func TestAssemble_DetailLinksAndType(t *testing.T) {
	q := NewQuery("tenant-1").
		WithFieldsets(NewFieldsets(FieldsetDetail)).
		WithUser(customerUser("cust-1"))
	plan := planFor(t, q)

	e := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
	assert.Equal(t, "auction-lot-detail", e["type"])
	assert.Equal(t, testBaseURL+"v1/auction-lot/lot-1/summary", e["summary_url"])
	assert.Equal(t, testBaseURL+"v1/auction-lot/lot-1", e["self_url"])
	assert.Equal(t, testBaseURL+"v1/auction-lot/lot-1/watch", e["watch_url"])
	assert.Equal(t, []map[string]any{}, e["auction_lot_group"])

	// The plain summary projection carries none of the detail texture.
	q = NewQuery("tenant-1")
	plan = planFor(t, q)
	e = newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
	_, has := e["type"]
	assert.False(t, has)
	_, has = e["self_url"]
	assert.False(t, has)
	_, has = e["artist_records"]
	assert.False(t, has)
}

func TestAssemble_WinningBidChain(t *testing.T) {
	row := winningChainRow("lot-1")

	t.Run("identified callers see the full chain on detail", func(t *testing.T) {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(FieldsetDetail)).
			WithUser(customerUser("cust-1"))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		bid, ok := e["winning_bid"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 1200.0, bid["amount"])

		reg, ok := bid["registration"].(map[string]any)
		require.True(t, ok)
		customer := reg["customer"].(map[string]any)
		assert.Equal(t, "Ada Byron", customer["name"])
	})

	t.Run("the winner still sees their own bid on detail", func(t *testing.T) {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(FieldsetDetail)).
			WithUser(customerUser("cust-9"))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		bid, ok := e["winning_bid"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 1200.0, bid["amount"])
	})

	t.Run("admins see the winning bid on detail", func(t *testing.T) {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(FieldsetDetail)).
			WithUser(adminUser("staff-1"))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		bid := e["winning_bid"].(map[string]any)
		_, ok := bid["registration"].(map[string]any)
		assert.True(t, ok)
	})

	t.Run("absent for anonymous callers", func(t *testing.T) {
		q := NewQuery("tenant-1").WithFieldsets(NewFieldsets(FieldsetDetail))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		_, has := e["winning_bid"]
		assert.False(t, has)
	})
}

func TestAssemble_TimedAuctionBid(t *testing.T) {
	row := winningChainRow("lot-1")

	t.Run("other bidders see who is winning", func(t *testing.T) {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(FieldsetTimedAuction)).
			WithUser(customerUser("cust-1"))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		bid, ok := e["timed_auction_bid"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 1200.0, bid["amount"])
	})

	t.Run("the current winner is not told they are winning", func(t *testing.T) {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(FieldsetTimedAuction)).
			WithUser(customerUser("cust-9"))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		bid, has := e["timed_auction_bid"]
		require.True(t, has)
		assert.Nil(t, bid)

		// Their own bid stays visible through the winning_bid key.
		own, ok := e["winning_bid"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 1200.0, own["amount"])
	})
}

func TestAssemble_ReserveMetTriState(t *testing.T) {
	granted := auth.NewUser("staff-2", "tenant-1", auth.KindStaff, []string{"admin"},
		[]string{auth.PermissionPublishReserveStatus})
	fs := NewFieldsets(FieldsetSummary, FieldsetReserveStatus)

	t.Run("absent without permission", func(t *testing.T) {
		q := NewQuery("tenant-1").WithFieldsets(fs).WithUser(customerUser("cust-1"))
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
		_, hasMet := e["reserve_met"]
		_, hasPrice := e["reserve_price"]
		assert.False(t, hasMet)
		assert.False(t, hasPrice)
	})

	t.Run("null when the lot has no reserve", func(t *testing.T) {
		q := NewQuery("tenant-1").WithFieldsets(fs).WithUser(granted)
		plan := planFor(t, q)

		e := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
		met, has := e["reserve_met"]
		require.True(t, has)
		assert.Nil(t, met)
	})

	t.Run("boolean when a reserve exists", func(t *testing.T) {
		q := NewQuery("tenant-1").WithFieldsets(fs).WithUser(granted)
		plan := planFor(t, q)

		row := summaryRow("lot-1")
		row["auction_lot-reserve_price"] = 1000.0
		row["winning_bid-row_id"] = "bid-1"
		row["winning_bid-amount"] = 1200.0
		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, true, e["reserve_met"])

		row["winning_bid-amount"] = 800.0
		e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, false, e["reserve_met"])

		delete(row, "winning_bid-amount")
		e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, false, e["reserve_met"])

		// With no live winning bid the hammer price stands in.
		row["auction_lot-sold_price"] = 1500.0
		e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, true, e["reserve_met"])
	})
}

func TestAssemble_WatchFlag(t *testing.T) {
	t.Run("absent for anonymous callers", func(t *testing.T) {
		q := NewQuery("tenant-1").WithFieldsets(NewFieldsets(FieldsetDetail))
		plan := planFor(t, q)
		e := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
		_, has := e["is_watched"]
		assert.False(t, has)
	})

	t.Run("follows the watched lot join", func(t *testing.T) {
		q := NewQuery("tenant-1").
			WithFieldsets(NewFieldsets(FieldsetDetail)).
			WithUser(customerUser("cust-1"))
		plan := planFor(t, q)

		row := summaryRow("lot-1")
		e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, false, e["is_watched"])

		row["watched_lot-row_id"] = "wl-1"
		e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, true, e["is_watched"])

		// A watched artist marks the artist record, not the lot.
		delete(row, "watched_lot-row_id")
		row["artist_records-row_id"] = "art-1"
		row["artist_records-name"] = "Marcel"
		row["watched_artist-row_id"] = "wa-1"
		e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
		assert.Equal(t, false, e["is_watched"])
		records := e["artist_records"].([]map[string]any)
		require.Len(t, records, 1)
		assert.Equal(t, true, records[0]["is_watched"])
	})
}

func TestAssemble_EffectiveEndTime(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	q := NewQuery("tenant-1").WithFieldsets(NewFieldsets(FieldsetSummary, FieldsetAuctionSummary))
	plan := planFor(t, q)

	row := summaryRow("lot-1")
	row["auction-row_id"] = "auc-1"
	row["auction-time_start"] = start
	row["auction-duration"] = 7200

	e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
	assert.Equal(t, start.Add(2*time.Hour), e["effective_end_time"])

	extended := start.Add(3 * time.Hour)
	row["auction_lot-extended_end_time"] = extended
	e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
	assert.Equal(t, extended, e["effective_end_time"])
}

func TestAssemble_AuctionXattrsStripped(t *testing.T) {
	q := NewQuery("tenant-1").WithFieldsets(NewFieldsets(FieldsetAuctionSummary))
	plan := planFor(t, q)

	row := summaryRow("lot-1")
	row["auction-row_id"] = "auc-1"
	row["auction-xattrs"] = `{"increments":[100]}`

	e := newTestAssembler().Assemble([]RawRow{row}, plan.Shape, q)[0]
	auction := e["auction"].(map[string]any)
	_, has := auction["xattrs"]
	assert.False(t, has)

	admin := q.WithUser(adminUser("staff-1"))
	plan = planFor(t, admin)
	e = newTestAssembler().Assemble([]RawRow{row}, plan.Shape, admin)[0]
	auction = e["auction"].(map[string]any)
	_, has = auction["xattrs"]
	assert.True(t, has)
}

func TestAssemble_SeedsDeferredAggregates(t *testing.T) {
	q := NewQuery("tenant-1").
		WithFieldsets(NewFieldsets(
			FieldsetSummary, FieldsetDetail, FieldsetLiveBidLiveCount,
			FieldsetLiveBidTimedCount, FieldsetHighestLiveBid,
		)).
		WithUser(customerUser("cust-1"))
	plan := planFor(t, q)

	e := newTestAssembler().Assemble([]RawRow{summaryRow("lot-1")}, plan.Shape, q)[0]
	assert.Equal(t, 0, e["live_bid_live_count"])
	assert.Equal(t, 0, e["live_bid_timed_count"])

	highest, has := e["highest_live_bid"]
	require.True(t, has)
	assert.Nil(t, highest)

	// Absentee maximums are admin-only; customers get no placeholder.
	_, has = e["highest_absentee_bid"]
	assert.False(t, has)

	assert.Equal(t, []Image{}, e["images"])
	assert.Equal(t, []Category{}, e["categories"])
}

func TestMerges_AreIdempotent(t *testing.T) {
	entities := []Entity{
		{"row_id": "lot-1", "live_bid_live_count": 0, "highest_live_bid": nil, "images": []Image{}},
		{"row_id": "lot-2", "live_bid_live_count": 0, "highest_live_bid": nil, "images": []Image{}},
	}

	counts := []BidCount{{LotID: "lot-1", Type: BidTypeLive, Count: 4}}
	bids := []map[string]any{{"auction_lot_id": "lot-1", "amount": 900.0}}
	images := []Image{{RowID: "img-1", AuctionLotID: "lot-2", ThumbnailURL: "https://img/t.jpg"}}

	for i := 0; i < 2; i++ {
		MergeBidCounts(entities, counts)
		MergeHighestLiveBids(entities, bids)
		MergeImages(entities, images)
	}

	assert.Equal(t, 4, entities[0]["live_bid_live_count"])
	assert.Equal(t, 0, entities[1]["live_bid_live_count"])
	assert.Equal(t, bids[0], entities[0]["highest_live_bid"])
	assert.Nil(t, entities[1]["highest_live_bid"])
	assert.Equal(t, images, entities[1]["images"])
	assert.Equal(t, "https://img/t.jpg", entities[1]["cover_thumbnail"])
	assert.Equal(t, []Image{}, entities[0]["images"])
}
