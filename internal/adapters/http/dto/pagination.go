package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Page size bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is returned when a cursor cannot be decoded or no longer
// points at a stored item.
var ErrInvalidCursor = errors.New("invalid cursor")

// PaginationRequest holds the paging query parameters.
type PaginationRequest struct {
	// Cursor is the opaque NextCursor of a previous page.
	Cursor string `form:"cursor"`

	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// PaginatedResponse is one page of items.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// CursorData is the position encoded in a cursor: the last item served.
type CursorData struct {
	ID string `json:"id"`
}

// EncodeCursor encodes cursor data as URL-safe base64.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(encoded string) (*CursorData, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == "" {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}

// Paginate cuts the page described by req out of items, which must be in a
// stable order. idOf identifies an item for the cursor.
func Paginate[T any](items []T, req *PaginationRequest, idOf func(T) string) (*PaginatedResponse[T], error) {
	start := 0

	if req.Cursor != "" {
		cursor, err := DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}

		start = -1

		for i, item := range items {
			if idOf(item) == cursor.ID {
				start = i + 1
				break
			}
		}

		if start < 0 {
			return nil, ErrInvalidCursor
		}
	}

	limit := req.GetLimit()
	rest := items[start:]

	page := &PaginatedResponse[T]{
		Items:   rest[:min(len(rest), limit)],
		HasMore: len(rest) > limit,
	}

	if page.HasMore {
		page.NextCursor = EncodeCursor(&CursorData{ID: idOf(page.Items[len(page.Items)-1])})
	}

	return page, nil
}
