package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type forumMessageStore interface {
	List(ctx context.Context) ([]models.Message, error)
	Add(ctx context.Context, msg models.Message) error
	Listen(ctx context.Context, fn func([]models.Message) error) error
}

type forumService struct {
	store forumMessageStore
}

func NewForumService(store forumMessageStore) *forumService {
	return &forumService{store: store}
}

// History returns the full message list ordered oldest-first, with each
// message marked as own or not relative to the session uid.
func (s *forumService) History(ctx context.Context, uid string) ([]dto.ForumMessage, error) {
	msgs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return markOwn(msgs, uid), nil
}

// Send appends one message. Blank or whitespace-only text is a silent no-op:
// nothing is written and no error is returned.
func (s *forumService) Send(ctx context.Context, uid, name, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	msg := models.Message{
		ID:     uuid.New().String(),
		Name:   name,
		Text:   text,
		UserID: uid,
	}
	if err := s.store.Add(ctx, msg); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("forum message sent", "message_id", msg.ID)
	return nil
}

// Subscribe opens a live listener and invokes fn with the complete rebuilt
// list on every snapshot. It blocks until the context is cancelled, fn
// errors, or the listener fails.
func (s *forumService) Subscribe(ctx context.Context, uid string, fn func([]dto.ForumMessage) error) error {
	return s.store.Listen(ctx, func(msgs []models.Message) error {
		return fn(markOwn(msgs, uid))
	})
}

func markOwn(msgs []models.Message, uid string) []dto.ForumMessage {
	out := make([]dto.ForumMessage, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, dto.ForumMessage{
			ID:        msg.ID,
			Name:      msg.Name,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
			Own:       uid != "" && msg.UserID == uid,
		})
	}
	return out
}
