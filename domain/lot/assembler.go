package lot

import "time"

// Assembler turns flat executor rows into nested entities using the
// plan's row shape. Assembly is pure: it never touches storage, and it
// pre-seeds every deferred aggregate so the enrichment pipeline only
// ever overwrites, never inserts keys. serverBaseURL feeds the derived
// entity links and must be slash-terminated.
type Assembler struct {
	serverBaseURL string
}

// NewAssembler returns a row assembler deriving links from the given
// public base URL.
func NewAssembler(serverBaseURL string) Assembler {
	return Assembler{serverBaseURL: serverBaseURL}
}

// Assemble builds one entity per raw row, in input order.
func (a Assembler) Assemble(rows []RawRow, shape RowShape, q Query) []Entity {
	entities := make([]Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, a.assembleOne(row, shape, q))
	}
	return entities
}

func (a Assembler) assembleOne(row RawRow, shape RowShape, q Query) Entity {
	entity := Entity{}

	for _, group := range shape.Groups {
		switch group.Alias {
		case AliasLot:
			for _, col := range group.Columns {
				entity[col] = row[group.Alias+"-"+col]
			}
		case AliasAuction, AliasConsignor, AliasCurrency, AliasArtist,
			AliasLotGroup, AliasWinningBid, AliasWinningReg,
			AliasWinningCustomer, AliasWatchedArtist, AliasWatchedLot:
			// Handled below; these aliases nest, re-key, or collapse
			// into derived structures instead of mapping one to one.
		default:
			entity[group.Alias] = subObject(row, group)
		}
	}

	a.attachAuction(entity, row, shape)
	a.applyDetailPresentation(entity, row, shape, q)
	a.applyReserveStatus(entity, row, q)
	a.applyAuctionRules(entity, q)
	a.deriveEndTime(entity)
	a.seedAggregates(entity, q)

	return entity
}

// subObject maps one alias's columns into a nested object, collapsing
// all-null groups (a missed left join) to an explicit null.
func subObject(row RawRow, group ShapeGroup) any {
	obj := map[string]any{}
	allNull := true
	for _, col := range group.Columns {
		v := row[group.Alias+"-"+col]
		if v != nil {
			allNull = false
		}
		obj[col] = v
	}
	if allNull {
		return nil
	}
	return obj
}

// attachAuction nests the auction sub-object with its consignor sibling,
// promotes the joined currency code onto the auction, tags the shape,
// and derives the auction's links. The aggregate counters are served as
// hard zeros: true values are deferred to the dedicated reporting
// queries rather than computed inline per lot.
func (a Assembler) attachAuction(entity Entity, row RawRow, shape RowShape) {
	group, ok := shape.Group(AliasAuction)
	if !ok {
		return
	}

	if consignorGroup, ok := shape.Group(AliasConsignor); ok {
		entity["consignor"] = subObject(row, consignorGroup)
	} else {
		entity["consignor"] = nil
	}

	auction, isObj := subObject(row, group).(map[string]any)
	if !isObj {
		entity["auction"] = nil
		return
	}

	auction["currency_code"] = row[AliasCurrency+"-currency_code"]
	auction["type"] = "auction-summary"
	if id, _ := auction["row_id"].(string); id != "" {
		auction["self_url"] = a.serverBaseURL + "v1/auction/" + id + "/summary"
		auction["detail_url"] = a.serverBaseURL + "v1/auction/" + id
		auction["lot_url"] = a.serverBaseURL + "v1/auction/" + id + "/lots"
	}

	auction["lot_count"] = 0
	auction["active_lot_count"] = 0
	auction["sold_lot_count"] = 0
	auction["total_sold_value"] = 0
	auction["total_hammer_price"] = 0

	entity["auction"] = auction
}

// applyDetailPresentation builds the detail-shaped projection: the
// artist record array with watch state, the lot group array, the
// winning bid chain with its self-suppression rule, the lot's own links,
// and the watch flag for identified callers.
func (a Assembler) applyDetailPresentation(entity Entity, row RawRow, shape RowShape, q Query) {
	fs := q.Fieldsets()
	if !fs.HasAny(FieldsetDetail, FieldsetTimedAuction) {
		return
	}

	a.attachArtistRecords(entity, row, shape)

	if group, ok := shape.Group(AliasLotGroup); ok {
		groups := []map[string]any{}
		if g, isObj := subObject(row, group).(map[string]any); isObj {
			groups = append(groups, g)
		}
		entity["auction_lot_group"] = groups
	}

	if hasIdentity(q) {
		entity["is_watched"] = row[AliasWatchedLot+"-row_id"] != nil
	}

	if hasIdentity(q) || q.IsAdmin() {
		entity["winning_bid"] = a.winningBid(row, shape, q, true)
	}
	if fs.Has(FieldsetTimedAuction) {
		entity["timed_auction_bid"] = a.winningBid(row, shape, q, false)
	}

	if id := entity.RowID(); id != "" {
		entity["type"] = "auction-lot-detail"
		entity["summary_url"] = a.serverBaseURL + "v1/auction-lot/" + id + "/summary"
		entity["self_url"] = a.serverBaseURL + "v1/auction-lot/" + id
		entity["watch_url"] = a.serverBaseURL + "v1/auction-lot/" + id + "/watch"
	}
}

// attachArtistRecords wraps the joined artist row into the artist_records
// array with its links and watch state. The array is empty when the lot
// carries no artist reference.
func (a Assembler) attachArtistRecords(entity Entity, row RawRow, shape RowShape) {
	group, ok := shape.Group(AliasArtist)
	if !ok {
		return
	}

	records := []map[string]any{}
	if rec, isObj := subObject(row, group).(map[string]any); isObj {
		if id, _ := rec["row_id"].(string); id != "" {
			rec["self_url"] = a.serverBaseURL + "v1/artist/" + id + "/summary"
			rec["detail_url"] = a.serverBaseURL + "v1/artist/" + id
			rec["watch_url"] = a.serverBaseURL + "v1/artist/" + id + "/watch"
		}
		if _, watched := shape.Group(AliasWatchedArtist); watched {
			rec["is_watched"] = row[AliasWatchedArtist+"-row_id"] != nil
		}
		rec["type"] = "artist-summary"
		records = append(records, rec)
	}
	entity["artist_records"] = records
}

// winningBid nests the winning bid chain, registration and customer
// included. When the caller holds the winning bid and includeSelf is
// false the whole bid collapses to nil: a bidder is never told they are
// currently winning unless the request path asked for it explicitly.
func (a Assembler) winningBid(row RawRow, shape RowShape, q Query, includeSelf bool) any {
	bidGroup, ok := shape.Group(AliasWinningBid)
	if !ok {
		return nil
	}
	bid, isObj := subObject(row, bidGroup).(map[string]any)
	if !isObj {
		return nil
	}

	if regGroup, hasReg := shape.Group(AliasWinningReg); hasReg {
		if reg, regOK := subObject(row, regGroup).(map[string]any); regOK {
			if custGroup, hasCust := shape.Group(AliasWinningCustomer); hasCust {
				if cust, custOK := subObject(row, custGroup).(map[string]any); custOK {
					cust["name"] = customerName(cust)
					reg["customer"] = cust
				}
			}
			bid["registration"] = reg
		}
	}

	customerID, _ := row[AliasWinningReg+"-customer_id"].(string)
	if !includeSelf && customerID != "" && customerID == q.Where().AsUserID {
		return nil
	}
	return bid
}

func customerName(customer map[string]any) string {
	given, _ := customer["given_name"].(string)
	family, _ := customer["family_name"].(string)
	switch {
	case given == "":
		return family
	case family == "":
		return given
	default:
		return given + " " + family
	}
}

// applyReserveStatus computes the reserve_met tri-state. Without the
// publish permission the key never appears; with it, a lot carrying no
// reserve yields an explicit null, otherwise the flag states whether the
// winning bid, or failing that the hammer price, has met the reserve.
func (a Assembler) applyReserveStatus(entity Entity, row RawRow, q Query) {
	if !q.Fieldsets().Has(FieldsetReserveStatus) || !canSeeReserveStatus(q) {
		delete(entity, "reserve_price")
		return
	}

	reserve, hasReserve := toFloat(row[AliasLot+"-reserve_price"])
	if !hasReserve {
		entity["reserve_met"] = nil
		return
	}

	amount, hasBid := toFloat(row[AliasWinningBid+"-amount"])
	if !hasBid {
		amount, hasBid = toFloat(row[AliasLot+"-sold_price"])
	}
	entity["reserve_met"] = hasBid && amount >= reserve
}

// applyAuctionRules strips operator-only auction configuration from
// non-admin responses.
func (a Assembler) applyAuctionRules(entity Entity, q Query) {
	auction, ok := entity["auction"].(map[string]any)
	if !ok {
		return
	}
	if !q.IsAdmin() {
		delete(auction, "xattrs")
	}
}

// deriveEndTime computes effective_end_time: the extended end time when
// bidding activity pushed it out, otherwise the scheduled auction end
// (time_start plus duration in seconds).
func (a Assembler) deriveEndTime(entity Entity) {
	auction, ok := entity["auction"].(map[string]any)
	if !ok {
		return
	}

	if ext := entity["extended_end_time"]; ext != nil {
		entity["effective_end_time"] = ext
		return
	}

	start, ok := auction["time_start"].(time.Time)
	if !ok {
		entity["effective_end_time"] = nil
		return
	}
	duration, ok := toFloat(auction["duration"])
	if !ok {
		entity["effective_end_time"] = nil
		return
	}
	entity["effective_end_time"] = start.Add(time.Duration(duration) * time.Second)
}

// seedAggregates writes the neutral value for every aggregate the
// projection defers to the enrichment pipeline. A stage that is skipped,
// or finds nothing for a lot, leaves these values in place.
func (a Assembler) seedAggregates(entity Entity, q Query) {
	fs := q.Fieldsets()
	if fs.Has(FieldsetLiveBidLiveCount) {
		entity["live_bid_live_count"] = 0
	}
	if fs.Has(FieldsetLiveBidTimedCount) {
		entity["live_bid_timed_count"] = 0
	}
	if fs.Has(FieldsetHighestLiveBid) && hasIdentity(q) {
		entity["highest_live_bid"] = nil
	}
	if q.IsAdmin() && fs.HasAny(FieldsetSummary, FieldsetDetail) {
		entity["highest_absentee_bid"] = nil
	}
	if fs.HasAny(FieldsetReserveStatus, FieldsetDetail, FieldsetTimedAuction) {
		entity["images"] = []Image{}
		entity["cover_thumbnail"] = nil
	}
	if fs.Has(FieldsetDetail) {
		entity["categories"] = []Category{}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
