package lot

// RawRow is one flat row produced by the query executor. Keys follow the
// "<alias>-<column>" convention emitted by the planner's column aliases.
type RawRow map[string]any

// Entity is one assembled auction lot: a nested document keyed by wire
// field names. Keys may be absent, null, or a concrete value; the three
// states are distinct and meaningful to callers.
type Entity map[string]any

// RowID returns the lot's primary key, or "" when the entity carries none.
func (e Entity) RowID() string {
	id, _ := e["row_id"].(string)
	return id
}

// BidCount is one per-lot bid tally returned by the bid count enrichment.
type BidCount struct {
	LotID string
	Type  string
	Count int
}

// Image is one lot image reference with caller-ready URLs.
type Image struct {
	RowID        string `json:"row_id"`
	AuctionLotID string `json:"auction_lot_id"`
	Caption      string `json:"caption,omitempty"`
	ThumbnailURL string `json:"thumbnail_url"`
	DetailURL    string `json:"detail_url"`
}

// Category is one lot category assignment.
type Category struct {
	RowID string `json:"row_id"`
	Name  string `json:"name"`
}

// MergeBidCounts writes per-type bid tallies onto the matching entities.
// Lots with no tally for a requested type keep the zero written at
// assembly time. The merge is idempotent.
func MergeBidCounts(entities []Entity, counts []BidCount) {
	byLot := make(map[string][]BidCount, len(counts))
	for _, c := range counts {
		byLot[c.LotID] = append(byLot[c.LotID], c)
	}
	for _, e := range entities {
		for _, c := range byLot[e.RowID()] {
			switch c.Type {
			case BidTypeLive:
				e["live_bid_live_count"] = c.Count
			case BidTypeTimed:
				e["live_bid_timed_count"] = c.Count
			}
		}
	}
}

// MergeHighestLiveBids attaches the caller's highest live bid per lot,
// keyed by the bid row's auction_lot_id. Lots without a qualifying bid
// keep the null written at assembly time. The merge is idempotent.
func MergeHighestLiveBids(entities []Entity, bids []map[string]any) {
	byLot := indexByLot(bids)
	for _, e := range entities {
		if bid, ok := byLot[e.RowID()]; ok {
			e["highest_live_bid"] = bid
		}
	}
}

// MergeHighestAbsenteeBids attaches each lot's highest confirmed
// absentee bid across all bidders. The merge is idempotent.
func MergeHighestAbsenteeBids(entities []Entity, bids []map[string]any) {
	byLot := indexByLot(bids)
	for _, e := range entities {
		if bid, ok := byLot[e.RowID()]; ok {
			e["highest_absentee_bid"] = bid
		}
	}
}

// MergeImages attaches image lists and promotes the first image's
// thumbnail to cover_thumbnail. Lots without images keep their empty
// list. The merge is idempotent.
func MergeImages(entities []Entity, images []Image) {
	byLot := make(map[string][]Image)
	for _, img := range images {
		byLot[img.AuctionLotID] = append(byLot[img.AuctionLotID], img)
	}
	for _, e := range entities {
		imgs, ok := byLot[e.RowID()]
		if !ok {
			continue
		}
		e["images"] = imgs
		e["cover_thumbnail"] = imgs[0].ThumbnailURL
	}
}

// MergeCategories attaches category lists. Lots without categories keep
// their empty list. The merge is idempotent.
func MergeCategories(entities []Entity, categories map[string][]Category) {
	for _, e := range entities {
		if cats, ok := categories[e.RowID()]; ok {
			e["categories"] = cats
		}
	}
}

func indexByLot(rows []map[string]any) map[string]map[string]any {
	byLot := make(map[string]map[string]any, len(rows))
	for _, row := range rows {
		if id, ok := row["auction_lot_id"].(string); ok {
			byLot[id] = row
		}
	}
	return byLot
}
