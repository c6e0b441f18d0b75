package lot

import "github.com/loftylabs/marketplace/domain/auth"

// Table aliases used throughout plan SQL. Every projected column is
// addressed as "<alias>"."<column>" and surfaces in the row under the
// key "<alias>-<column>".
const (
	AliasLot             = "auction_lot"
	AliasAuction         = "auction"
	AliasArtist          = "artist_records"
	AliasConsignor       = "consignor"
	AliasCurrency        = "currency"
	AliasLotGroup        = "auction_lot_group"
	AliasWinningBid      = "winning_bid"
	AliasWinningReg      = "winning_registration"
	AliasWinningCustomer = "winning_customer"
	AliasWatchedArtist   = "watched_artist"
	AliasWatchedLot      = "watched_lot"
	AliasAbsenteeReg     = "absentee_registration"
	AliasAbsenteeBid     = "absentee_bid"
)

// Bid types recorded on live_bid rows.
const (
	BidTypeLive  = "live"
	BidTypeTimed = "timed"
)

// Lot statuses with engine-level meaning.
const (
	StatusSold      = "sold"
	StatusWithdrawn = "withdrawn"
	StatusDraft     = "draft"
)

// Lot visibility values.
const (
	VisibilityAll        = "all"
	VisibilityWinnerOnly = "winner_only"
)

// ColumnSpec is one projected column: the table alias it reads from and
// the column name. The output key joins them with a dash.
type ColumnSpec struct {
	Alias  string
	Column string
}

// Key returns the alias the column carries in the result row.
func (c ColumnSpec) Key() string { return c.Alias + "-" + c.Column }

// JoinClause is one join the plan requires. Key deduplicates joins that
// more than one fieldset demands; SQL is the full join fragment with
// placeholders bound by Args.
type JoinClause struct {
	Key  string
	SQL  string
	Args []any
}

func cols(alias string, names ...string) []ColumnSpec {
	out := make([]ColumnSpec, len(names))
	for i, n := range names {
		out[i] = ColumnSpec{Alias: alias, Column: n}
	}
	return out
}

var (
	lotSummaryColumns = cols(AliasLot,
		"row_id", "tenant_id", "auction_id", "artist_id", "currency_id",
		"lot_number", "lot_number_extension", "title", "artist", "status",
		"visibility", "estimate_low", "estimate_high", "starting_bid",
		"sold_price", "extended_end_time", "winning_bid_id",
	)

	lotDetailColumns = cols(AliasLot,
		"provenance", "condition", "dimensions", "medium",
		"buyers_premium_rate", "consignor_id", "auction_lot_group_id",
		"created_at", "updated_at",
	)

	lotNumberColumns = cols(AliasLot, "row_id", "lot_number", "lot_number_extension")

	auctionSummaryColumns = cols(AliasAuction,
		"row_id", "title", "status", "type", "time_start", "duration",
		"currency_id", "xattrs",
	)

	artistSummaryColumns = cols(AliasArtist,
		"row_id", "name", "birth_year", "death_year", "nationality",
	)

	consignorColumns = cols(AliasConsignor, "row_id", "name", "email")

	currencyColumns = cols(AliasCurrency, "row_id", "currency_code")

	lotGroupColumns = cols(AliasLotGroup, "row_id", "name", "group_index")

	winningBidColumns = cols(AliasWinningBid,
		"row_id", "amount", "type", "registration_id", "auction_lot_id",
		"created_at", "updated_at",
	)

	winningRegColumns = cols(AliasWinningReg,
		"row_id", "paddle_number", "auction_id", "customer_id",
	)

	winningCustomerColumns = cols(AliasWinningCustomer,
		"row_id", "given_name", "family_name", "email",
	)

	watchedArtistColumns = cols(AliasWatchedArtist, "row_id")
	watchedLotColumns    = cols(AliasWatchedLot, "row_id")

	absenteeBidColumns = cols(AliasAbsenteeBid,
		"row_id", "max_bid", "type", "confirmed", "registration_id",
		"auction_lot_id", "created_at",
	)

	reserveStatusColumns = cols(AliasLot, "reserve_price", "sold_price")
)

// Catalog maps fieldsets to the columns and joins they require. It holds
// no connection state; the planner consults it and the executor never
// sees it.
type Catalog struct{}

// NewCatalog returns the lot fieldset catalog.
func NewCatalog() Catalog { return Catalog{} }

// Columns returns every column the query's projection demands, in
// declaration order, without deduplication. The planner deduplicates by
// output key.
func (c Catalog) Columns(q Query) []ColumnSpec {
	fs := q.Fieldsets()
	var out []ColumnSpec

	if fs.Has(FieldsetSummary) {
		out = append(out, lotSummaryColumns...)
	}
	if fs.Has(FieldsetLotNumber) {
		out = append(out, lotNumberColumns...)
	}
	if fs.HasAny(FieldsetDetail, FieldsetTimedAuction) {
		out = append(out, lotSummaryColumns...)
		out = append(out, lotDetailColumns...)
		out = append(out, artistSummaryColumns...)
		out = append(out, consignorColumns...)
		out = append(out, lotGroupColumns...)
		out = append(out, winningBidColumns...)
		out = append(out, winningRegColumns...)
		out = append(out, winningCustomerColumns...)
		if hasIdentity(q) {
			out = append(out, watchedArtistColumns...)
			out = append(out, watchedLotColumns...)
		}
	}
	if fs.HasAny(FieldsetSummary, FieldsetAuctionSummary, FieldsetTimedAuction, FieldsetDetail) {
		out = append(out, auctionSummaryColumns...)
		out = append(out, currencyColumns...)
	}
	if fs.Has(FieldsetDescription) {
		out = append(out, cols(AliasLot, "row_id", "description")...)
	}
	if fs.Has(FieldsetEditorial) {
		out = append(out, cols(AliasLot, "row_id", "editorial")...)
	}
	if fs.Has(FieldsetHighlightHeader) {
		out = append(out, cols(AliasLot, "row_id", "highlight_header")...)
	}
	if fs.Has(FieldsetReserveStatus) && canSeeReserveStatus(q) {
		out = append(out, reserveStatusColumns...)
		out = append(out, winningBidColumns...)
	}
	if fs.Has(FieldsetAbsenteeBid) && hasIdentity(q) {
		out = append(out, absenteeBidColumns...)
	}

	// The base set is always projected so enrichment merges and shape
	// demultiplexing can address rows even for narrow projections.
	out = append(out, cols(AliasLot, "row_id", "title_secondary", "title_tertiary")...)
	return out
}

// Joins returns every join the query requires. forCount restricts the
// set to joins referenced by predicates, since a count projects no
// columns. Ordering follows declaration order; the planner deduplicates
// by key while keeping first position.
func (c Catalog) Joins(q Query, forCount bool) []JoinClause {
	fs := q.Fieldsets()
	var out []JoinClause

	needWinningChain := !q.IsAdmin() && hasIdentity(q)
	if !forCount {
		needWinningChain = needWinningChain ||
			fs.HasAny(FieldsetDetail, FieldsetTimedAuction) ||
			(fs.Has(FieldsetReserveStatus) && canSeeReserveStatus(q)) ||
			needsOrderOnWinningBid(q)
	}
	if needWinningChain {
		out = append(out,
			JoinClause{
				Key: AliasWinningBid,
				SQL: `LEFT JOIN "live_bid" AS "winning_bid" ON "winning_bid"."row_id" = "auction_lot"."winning_bid_id"`,
			},
			JoinClause{
				Key: AliasWinningReg,
				SQL: `LEFT JOIN "auction_registration" AS "winning_registration" ON "winning_registration"."row_id" = "winning_bid"."registration_id"`,
			},
			JoinClause{
				Key: AliasWinningCustomer,
				SQL: `LEFT JOIN "customer" AS "winning_customer" ON "winning_customer"."row_id" = "winning_registration"."customer_id"`,
			},
		)
	}

	if forCount {
		return out
	}

	if fs.HasAny(FieldsetSummary, FieldsetAuctionSummary, FieldsetTimedAuction, FieldsetDetail) {
		out = append(out,
			JoinClause{
				Key: AliasAuction,
				SQL: `LEFT JOIN "auction" ON "auction"."row_id" = "auction_lot"."auction_id"`,
			},
			JoinClause{
				Key: AliasCurrency,
				SQL: `LEFT JOIN "currency" ON "currency"."row_id" = "auction"."currency_id"`,
			},
		)
	}
	if fs.HasAny(FieldsetDetail, FieldsetTimedAuction) {
		out = append(out,
			JoinClause{
				Key: AliasArtist,
				SQL: `LEFT JOIN "artist" AS "artist_records" ON "artist_records"."row_id" = "auction_lot"."artist_id"`,
			},
			JoinClause{
				Key: AliasConsignor,
				SQL: `LEFT JOIN "consignor" ON "consignor"."row_id" = "auction_lot"."consignor_id"`,
			},
			JoinClause{
				Key: AliasLotGroup,
				SQL: `LEFT JOIN "auction_lot_group" ON "auction_lot_group"."row_id" = "auction_lot"."auction_lot_group_id"`,
			},
		)
		if hasIdentity(q) {
			out = append(out,
				JoinClause{
					Key:  AliasWatchedArtist,
					SQL:  `LEFT JOIN "watched_artist" ON "watched_artist"."artist_id" = "auction_lot"."artist_id" AND "watched_artist"."customer_id" = ?`,
					Args: []any{q.Where().AsUserID},
				},
				JoinClause{
					Key:  AliasWatchedLot,
					SQL:  `LEFT JOIN "watched_lot" ON "watched_lot"."auction_lot_id" = "auction_lot"."row_id" AND "watched_lot"."customer_id" = ?`,
					Args: []any{q.Where().AsUserID},
				},
			)
		}
	}
	if fs.Has(FieldsetAbsenteeBid) && hasIdentity(q) {
		out = append(out,
			JoinClause{
				Key:  AliasAbsenteeReg,
				SQL:  `LEFT JOIN "auction_registration" AS "absentee_registration" ON "absentee_registration"."auction_id" = "auction_lot"."auction_id" AND "absentee_registration"."customer_id" = ?`,
				Args: []any{q.Where().AsUserID},
			},
			JoinClause{
				Key: AliasAbsenteeBid,
				SQL: `LEFT JOIN "absentee_bid" ON "absentee_bid"."registration_id" = "absentee_registration"."row_id" AND "absentee_bid"."auction_lot_id" = "auction_lot"."row_id" AND "absentee_bid"."cancelled" = FALSE`,
			},
		)
	}

	return out
}

func hasIdentity(q Query) bool {
	return q.Where().AsUserID != ""
}

// canSeeReserveStatus gates the reserve-status projection on an explicit
// permission grant, never on role alone.
func canSeeReserveStatus(q Query) bool {
	return q.User().HasPermission(auth.PermissionPublishReserveStatus)
}

func needsOrderOnWinningBid(q Query) bool {
	for _, f := range q.OrderBy() {
		if f == "most_recent_change" || f == "current_bid" {
			return true
		}
	}
	return false
}
