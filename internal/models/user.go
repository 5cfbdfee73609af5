package models

import "time"

type User struct {
	UID       string    `firestore:"uid" json:"uid"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Phone     string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
