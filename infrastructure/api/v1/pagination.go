// Package v1 implements the public HTTP API.
package v1

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/loftylabs/marketplace/domain/lot"
)

// QueryInfo is the paging block of a list envelope.
type QueryInfo struct {
	PageSize        int     `json:"page_size"`
	TotalNumResults int     `json:"total_num_results"`
	PageStartOffset int     `json:"page_start_offset"`
	PrevPage        *string `json:"prev_page"`
	NextPage        *string `json:"next_page"`
	BaseQuery       string  `json:"base_query"`
}

// Envelope is the list response: one page of entities plus paging
// metadata.
type Envelope struct {
	ResultPage []lot.Entity `json:"result_page"`
	QueryInfo  QueryInfo    `json:"query_info"`
}

// Paging describes the window a page was fetched with. Token, when
// non-nil, is a continuation token that replaces offset arithmetic.
type Paging struct {
	Offset int
	Limit  int
	Token  *string
}

// BuildEnvelope assembles the list envelope. baseQuery is the request
// URL stripped of its paging parameters; prev and next links append
// o and n to it.
//
// With a continuation token, offset arithmetic does not apply: a
// non-empty token is rebuilt into a next link on the base query, the
// prev link stays null because token sources are not reversible, and an
// empty token marks the final page. In token mode page_size reports the
// full result count.
func BuildEnvelope(entities []lot.Entity, total int, baseQuery string, paging Paging) Envelope {
	if entities == nil {
		entities = []lot.Entity{}
	}

	info := QueryInfo{
		PageSize:        paging.Limit,
		TotalNumResults: total,
		PageStartOffset: paging.Offset,
		BaseQuery:       baseQuery,
	}

	if paging.Token != nil {
		info.PageSize = total
		if *paging.Token != "" {
			next := tokenLink(baseQuery, *paging.Token)
			info.NextPage = &next
		}
		return Envelope{ResultPage: entities, QueryInfo: info}
	}

	if paging.Offset > 0 {
		prevOffset := paging.Offset - paging.Limit
		prevLimit := paging.Limit
		if prevOffset < 0 {
			// The window before the first full page is the partial run
			// from zero up to the current offset.
			prevOffset = 0
			prevLimit = paging.Offset
		}
		prev := pageLink(baseQuery, prevOffset, prevLimit)
		info.PrevPage = &prev
	}

	if paging.Offset+paging.Limit <= total {
		next := pageLink(baseQuery, paging.Offset+paging.Limit, paging.Limit)
		info.NextPage = &next
	}

	return Envelope{ResultPage: entities, QueryInfo: info}
}

func pageLink(baseQuery string, offset, limit int) string {
	return fmt.Sprintf("%s%so=%d&n=%d", baseQuery, querySeparator(baseQuery), offset, limit)
}

func tokenLink(baseQuery, token string) string {
	return baseQuery + querySeparator(baseQuery) + "nextContinuationToken=" + url.QueryEscape(token)
}

func querySeparator(baseQuery string) string {
	if strings.Contains(baseQuery, "?") {
		return "&"
	}
	return "?"
}

// baseQueryString rebuilds the request query with paging parameters
// removed, preserving the order of the remaining parameters.
func baseQueryString(path string, query url.Values) string {
	filtered := url.Values{}
	for key, values := range query {
		switch key {
		case "o", "offset", "n", "limit":
			continue
		}
		filtered[key] = values
	}
	if len(filtered) == 0 {
		return path
	}
	return path + "?" + filtered.Encode()
}
