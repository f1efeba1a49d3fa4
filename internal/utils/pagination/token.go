package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit is used when a caller does not ask for a page size.
const DefaultLimit = 20

// MaxLimit caps page sizes.
const MaxLimit = 200

// Cursor is the position of the last item of a page of journal entries,
// ordered by posting date, creation time and entry id (all descending).
type Cursor struct {
	PostingDate time.Time
	CreatedAt   time.Time
	EntryID     string
}

// After reports whether an item at (postingDate, createdAt, entryID) sorts after the cursor,
// i.e. belongs to the next page.
func (c Cursor) After(postingDate, createdAt time.Time, entryID string) bool {
	if !postingDate.Equal(c.PostingDate) {
		return postingDate.Before(c.PostingDate)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return entryID < c.EntryID
}

// EncodeToken creates an opaque URL-safe token for the cursor.
func EncodeToken(c Cursor) string {
	tokenStr := strings.Join([]string{
		c.PostingDate.UTC().Format(timeFormat),
		c.CreatedAt.UTC().Format(timeFormat),
		c.EntryID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	postingDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (posting date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return Cursor{PostingDate: postingDate, CreatedAt: createdAt, EntryID: parts[2]}, nil
}

// NormalizeLimit applies the default and the cap.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
