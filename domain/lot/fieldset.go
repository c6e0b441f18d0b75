// Package lot implements the fieldset-driven query composition and
// enrichment engine for auction lots.
package lot

import "strings"

// Fieldset is a caller-requestable projection token. The set of valid
// fieldsets is closed; every column, join, and enrichment the engine may
// produce is declared against one of these tags.
type Fieldset string

// Fieldset values.
const (
	FieldsetSummary            Fieldset = "summary"
	FieldsetDetail             Fieldset = "detail"
	FieldsetLotNumber          Fieldset = "lot-number"
	FieldsetDescription        Fieldset = "description"
	FieldsetTimedAuction       Fieldset = "timed-auction"
	FieldsetReserveStatus      Fieldset = "reserve-status"
	FieldsetLiveBidLiveCount   Fieldset = "live-bid-live-count"
	FieldsetLiveBidTimedCount  Fieldset = "live-bid-timed-count"
	FieldsetHighestLiveBid     Fieldset = "highest-live-bid"
	FieldsetAbsenteeBid        Fieldset = "absentee-bid"
	FieldsetAuctionSummary     Fieldset = "auction.summary"
	FieldsetDocumentRepository Fieldset = "document-repository"
	FieldsetYoutube            Fieldset = "youtube"
	FieldsetConsignor          Fieldset = "consignor"
	FieldsetAuctionRegSummary  Fieldset = "auction.registration.summary"
	FieldsetEditorial          Fieldset = "editorial"
	FieldsetHighlightHeader    Fieldset = "highlight-header"
)

// SupportedFieldsets lists every valid fieldset token, in the order they
// are reported to callers on validation failure.
func SupportedFieldsets() []Fieldset {
	return []Fieldset{
		FieldsetSummary,
		FieldsetDetail,
		FieldsetLotNumber,
		FieldsetDescription,
		FieldsetTimedAuction,
		FieldsetReserveStatus,
		FieldsetLiveBidLiveCount,
		FieldsetLiveBidTimedCount,
		FieldsetHighestLiveBid,
		FieldsetAbsenteeBid,
		FieldsetAuctionSummary,
		FieldsetDocumentRepository,
		FieldsetYoutube,
		FieldsetConsignor,
		FieldsetAuctionRegSummary,
		FieldsetEditorial,
		FieldsetHighlightHeader,
	}
}

var supportedSet = func() map[Fieldset]struct{} {
	m := make(map[Fieldset]struct{})
	for _, f := range SupportedFieldsets() {
		m[f] = struct{}{}
	}
	return m
}()

// Valid reports whether f is a member of the closed fieldset enumeration.
func (f Fieldset) Valid() bool {
	_, ok := supportedSet[f]
	return ok
}

// Fieldsets is an ordered set of requested fieldsets.
type Fieldsets []Fieldset

// NewFieldsets builds a deduplicated Fieldsets from the given tags.
// Invalid tags are kept; call Validate to reject them.
func NewFieldsets(tags ...Fieldset) Fieldsets {
	seen := make(map[Fieldset]struct{}, len(tags))
	out := make(Fieldsets, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ParseFieldsets parses a space-delimited fieldset list as supplied by
// callers (e.g. "summary reserve-status"). An empty string yields the
// default projection of just "summary". Unknown tokens are rejected with
// an error carrying the full supported list.
func ParseFieldsets(s string) (Fieldsets, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewFieldsets(FieldsetSummary), nil
	}

	var tags []Fieldset
	for _, tok := range strings.Fields(s) {
		tags = append(tags, Fieldset(tok))
	}

	fs := NewFieldsets(tags...)
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Validate returns an UnsupportedFieldsetError naming every unknown token,
// or nil when all members are valid.
func (fs Fieldsets) Validate() error {
	var bad []Fieldset
	for _, f := range fs {
		if !f.Valid() {
			bad = append(bad, f)
		}
	}
	if len(bad) > 0 {
		return &UnsupportedFieldsetError{Tokens: bad, Supported: SupportedFieldsets()}
	}
	return nil
}

// Has reports whether the set contains f.
func (fs Fieldsets) Has(f Fieldset) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains at least one of the given tags.
func (fs Fieldsets) HasAny(tags ...Fieldset) bool {
	for _, tag := range tags {
		if fs.Has(tag) {
			return true
		}
	}
	return false
}

// String returns the space-delimited representation.
func (fs Fieldsets) String() string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, " ")
}
