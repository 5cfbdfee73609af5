package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
)

type userStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		client:     client,
		collection: client.Collection("users"),
	}
}

func (s *userStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.collection.Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("user profile already exists")
		}
		return errs.NewDatabaseError("create", "failed to create user profile", err)
	}
	return nil
}

func (s *userStore) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := s.collection.Doc(user.UID).Set(ctx, user, firestore.MergeAll)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update user profile", err)
	}
	return nil
}

func (s *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	doc, err := s.collection.Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("user profile not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get user profile", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user profile", err)
	}
	return &user, nil
}
