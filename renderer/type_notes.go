package renderer

import (
	"github.com/khata-io/khata"
)

// Notes is the view struct for a user's notes report.
type Notes struct {
	Name  string    `json:"name"`
	Notes []NoteRow `json:"notes"`
}

// NoteRow is one note, newest first.
type NoteRow struct {
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	ID        string `json:"id"`
}

// NewNotes creates the notes view for a user.
func NewNotes(name string, notes []khata.Note) *Notes {
	v := &Notes{Name: name, Notes: make([]NoteRow, 0, len(notes))}
	for _, n := range notes {
		v.Notes = append(v.Notes, NoteRow{
			Content:   n.Content,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04"),
			ID:        n.ID,
		})
	}
	return v
}
