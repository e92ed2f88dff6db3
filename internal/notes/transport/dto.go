package transport

import "time"

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,max=10000"`
}

type UpdateNoteRequest struct {
	Title   string  `json:"title" validate:"required,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,max=10000"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Title     string    `json:"title"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NotesResponse struct {
	Items []NoteResponse `json:"items"`
}
