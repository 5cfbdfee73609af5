package models

import "time"

// Message is one forum post in the `mensajes` collection. Append-only.
type Message struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Text      string    `firestore:"text" json:"text"`
	UserID    string    `firestore:"userId" json:"userId"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}
