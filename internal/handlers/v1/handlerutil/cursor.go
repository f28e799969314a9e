package handlerutil

import (
	"github.com/carson-networks/budget-ledger/internal/service"
)

// PageCursor is the wire form of service.Cursor.
type PageCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

func NextPageCursor(c *service.Cursor) *PageCursor {
	if c == nil {
		return nil
	}
	return &PageCursor{Position: c.Position, Limit: c.Limit}
}

// PageQuery returns the service cursor for position/limit query parameters.
// Both zero means everything.
func PageQuery(position, limit int) *service.Cursor {
	if position == 0 && limit == 0 {
		return nil
	}
	return &service.Cursor{Position: position, Limit: limit}
}

// TimelineCursor is the wire form of service.TimelineCursor. Clients start
// paging with an empty maxCreationTime and echo back nextCursor afterwards.
type TimelineCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"0" maximum:"100" doc:"Page size, defaults to 20"`
	MaxCreationTime string `json:"maxCreationTime,omitempty" doc:"RFC3339 creation-time ceiling from a previous page"`
}

// ToService parses the cursor. A nil cursor stays nil.
func (c *TimelineCursor) ToService() (*service.TimelineCursor, error) {
	if c == nil {
		return nil, nil
	}
	cursor := &service.TimelineCursor{Position: c.Position, Limit: c.Limit}
	if c.MaxCreationTime != "" {
		t, err := ParseTime("cursor maxCreationTime", c.MaxCreationTime)
		if err != nil {
			return nil, err
		}
		cursor.MaxCreationTime = t
	}
	return cursor, nil
}

func NextTimelineCursor(c *service.TimelineCursor) *TimelineCursor {
	if c == nil {
		return nil
	}
	return &TimelineCursor{
		Position:        c.Position,
		Limit:           c.Limit,
		MaxCreationTime: FormatTime(c.MaxCreationTime),
	}
}
