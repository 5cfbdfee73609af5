package store

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
)

func TestSurveyStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	seed := map[string]map[string]interface{}{
		"s1": {
			"title":       "Calidad del agua",
			"category":    "Servicios",
			"question":    "¿Cómo califica el servicio de agua?",
			"description": "Resultados 2025",
			"chartType":   "pie",
			"chartData": map[string]interface{}{
				"slices": []interface{}{
					map[string]interface{}{"name": "Bien", "value": 30.0},
					map[string]interface{}{"name": "Mal", "value": 12.0},
				},
			},
		},
		// missing description: must be dropped silently
		"s2": {
			"title":     "Alumbrado",
			"category":  "Servicios",
			"question":  "¿Funciona el alumbrado?",
			"chartType": "bar",
			"chartData": map[string]interface{}{
				"labels":   []interface{}{"Sí", "No"},
				"datasets": []interface{}{map[string]interface{}{"data": []interface{}{5.0, 2.0}}},
			},
		},
	}
	for id, doc := range seed {
		if _, err := client.Collection("feed").Doc(id).Set(ctx, doc); err != nil {
			t.Fatalf("seed survey %s: %v", id, err)
		}
	}

	store := NewSurveyStore(client)

	surveys, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(surveys) != 1 || surveys[0].ID != "s1" {
		t.Fatalf("expected only s1 to survive validation, got %+v", surveys)
	}

	missing, err := store.GetByID(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("GetByID on unknown id errored: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID on unknown id returned %+v", missing)
	}

	if err := store.UpdateReport(ctx, "s1", "## Informe\ntexto"); err != nil {
		t.Fatalf("UpdateReport error: %v", err)
	}
	got, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID after report write: %v", err)
	}
	if got == nil || got.Report != "## Informe\ntexto" {
		t.Fatalf("report not persisted: %+v", got)
	}
}
