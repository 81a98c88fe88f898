// Package dto defines the request/response shapes of the HTTP API and
// their mapping to domain types.
package dto

import "packquote/internal/domain"

// ListQuery is the common list query string.
type ListQuery struct {
	Search         string `form:"search"`
	IncludeDeleted bool   `form:"include_deleted"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
	OrderBy        string `form:"order_by"`
	OrderDesc      bool   `form:"order_desc"`
}

// ToFilter maps the query to the domain filter.
func (q ListQuery) ToFilter() domain.ListFilter {
	return domain.ListFilter{
		Search:         q.Search,
		IncludeDeleted: q.IncludeDeleted,
		Limit:          q.Limit,
		Offset:         q.Offset,
		OrderBy:        q.OrderBy,
		OrderDesc:      q.OrderDesc,
	}
}
