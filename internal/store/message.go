package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
)

type messageStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewMessageStore(client *firestore.Client) *messageStore {
	return &messageStore{
		client:     client,
		collection: client.Collection("mensajes"),
	}
}

func (s *messageStore) ordered() firestore.Query {
	return s.collection.Query.OrderBy("createdAt", firestore.Asc)
}

func (s *messageStore) List(ctx context.Context) ([]models.Message, error) {
	iter := s.ordered().Documents(ctx)
	defer iter.Stop()

	var out []models.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list messages", err)
		}
		var msg models.Message
		if err := doc.DataTo(&msg); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse message data", err)
		}
		msg.ID = doc.Ref.ID
		out = append(out, msg)
	}
	return out, nil
}

// Add appends one message. CreatedAt carries the serverTimestamp tag, so the
// zero value is stamped by Firestore.
func (s *messageStore) Add(ctx context.Context, msg models.Message) error {
	_, err := s.collection.Doc(msg.ID).Create(ctx, msg)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to append message", err)
	}
	return nil
}

// Listen streams the collection ordered by timestamp. Every snapshot
// rebuilds the complete message list (no incremental merge) and hands it to
// fn. Returns when the context is cancelled, fn errors, or the listener
// fails; there is no reconnect here beyond what the SDK does internally.
func (s *messageStore) Listen(ctx context.Context, fn func([]models.Message) error) error {
	snaps := s.ordered().Snapshots(ctx)
	defer snaps.Stop()

	for {
		snap, err := snaps.Next()
		if err != nil {
			return errs.NewDatabaseError("listen", "message listener failed", err)
		}

		var msgs []models.Message
		docs := snap.Documents
		for {
			doc, err := docs.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return errs.NewDatabaseError("listen", "failed to read message snapshot", err)
			}
			var msg models.Message
			if err := doc.DataTo(&msg); err != nil {
				return errs.NewDatabaseError("listen", "failed to parse message data", err)
			}
			msg.ID = doc.Ref.ID
			msgs = append(msgs, msg)
		}

		if err := fn(msgs); err != nil {
			return err
		}
	}
}
