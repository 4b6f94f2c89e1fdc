package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// CursorTimeLayout is the created_at representation carried inside
// cursors and compared against the store's timestamp column.
const CursorTimeLayout = "2006-01-02 15:04:05"

func CursorTime(t time.Time) string {
	return t.Format(CursorTimeLayout)
}

// Cursor is the decoded pagination position: the last-seen record id plus
// the value of the active sort field, and nothing else. The encoded form
// is an opaque URL-safe token.
type Cursor struct {
	ID        int64    `json:"id"`
	CreatedAt string   `json:"created_at,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Name      *string  `json:"name,omitempty"`
}

// Matches reports whether the cursor carries the value for the given sort
// field, i.e. whether it can resume that sort.
func (c Cursor) Matches(field SortField) bool {
	switch field {
	case SortCreatedAt:
		return c.CreatedAt != ""
	case SortPrice:
		return c.Price != nil
	case SortName:
		return c.Name != nil
	}
	return false
}

// EncodeCursor produces the opaque token. Round-trips exactly through
// DecodeCursor.
func EncodeCursor(c Cursor) string {
	payload, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(payload)
}

// DecodeCursor parses a token produced by EncodeCursor. Any malformed
// input fails with InvalidCursorError.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, InvalidCursorError{Err: err}
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, InvalidCursorError{Err: err}
	}
	if c.ID <= 0 {
		return Cursor{}, InvalidCursorError{}
	}
	return c, nil
}
