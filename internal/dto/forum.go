package dto

import "time"

// ForumMessage is the read-side view of a forum post. Own is derived per
// request by comparing the stored author id to the session uid; it is never
// stored.
type ForumMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Own       bool      `json:"own"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}
