package khata

import (
	"strconv"
	"strings"
	"time"
)

// Note is a timestamped free-text note, independent of the ledger.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNote builds a note from raw content. The content is trimmed and must not
// be empty. The id is time-derived and unique within a user's list.
func NewNote(content string) (Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Note{}, ErrEmptyNote
	}
	now := time.Now()
	return Note{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Content:   content,
		CreatedAt: now,
	}, nil
}
