package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opina-app/opina-backend/internal/errs"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type surveyStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewSurveyStore(client *firestore.Client) *surveyStore {
	return &surveyStore{
		client:     client,
		collection: client.Collection("feed"),
	}
}

// GetAll loads the whole feed collection. Documents missing required fields
// or failing to decode are dropped without surfacing anything to the caller;
// the mobile app simply never sees them. Ordering is whatever Firestore
// yields.
func (s *surveyStore) GetAll(ctx context.Context) ([]*models.Survey, error) {
	log := logger.FromContext(ctx)

	iter := s.collection.Documents(ctx)
	defer iter.Stop()

	var out []*models.Survey
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list surveys", err)
		}

		var survey models.Survey
		if err := doc.DataTo(&survey); err != nil {
			log.Debug("dropping undecodable survey document", "survey_id", doc.Ref.ID, "error", err)
			continue
		}
		survey.ID = doc.Ref.ID
		if !survey.Valid() {
			log.Debug("dropping survey document with missing fields", "survey_id", doc.Ref.ID)
			continue
		}
		out = append(out, &survey)
	}

	return out, nil
}

// GetByID returns (nil, nil) when the document does not exist or is not a
// valid survey; absence is not an error here.
func (s *surveyStore) GetByID(ctx context.Context, id string) (*models.Survey, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errs.NewDatabaseError("read", "failed to get survey", err)
	}

	var survey models.Survey
	if err := doc.DataTo(&survey); err != nil {
		logger.FromContext(ctx).Debug("treating undecodable survey as absent", "survey_id", id, "error", err)
		return nil, nil
	}
	survey.ID = doc.Ref.ID
	if !survey.Valid() {
		return nil, nil
	}
	return &survey, nil
}

// UpdateReport persists the generated narrative onto the survey document.
// Idempotent merge write; overwrites any previous report.
func (s *surveyStore) UpdateReport(ctx context.Context, id, report string) error {
	_, err := s.collection.Doc(id).Set(ctx, map[string]interface{}{
		"report": report,
	}, firestore.MergeAll)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to persist survey report", err)
	}
	return nil
}
