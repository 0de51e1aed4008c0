package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func testRecord(token, itemID string) *model.StagingRecord {
	return &model.StagingRecord{
		Token:    token,
		ItemID:   itemID,
		Category: "topwear",
		Type:     "shirt",
		Subtype:  model.Unknown,
		Color: model.Color{
			Name:  "blue",
			RGB:   [3]uint8{40, 80, 180},
			Group: model.ColorGroupBlue,
		},
		Fit:       model.Unknown,
		Formality: model.Unknown,
		ImagePath: "staging/" + token + ".png",
	}
}

func TestCreateAndGetStaging(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	rec, err := CreateStaging(ctx, database, testRecord("stg_1", "topwear_shirt_01"))
	if err != nil {
		t.Fatalf("CreateStaging: %v", err)
	}
	if rec.Status != model.StagingStatusPending {
		t.Errorf("expected pending status, got %q", rec.Status)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected store-assigned created_at")
	}
	if rec.Color.RGB != [3]uint8{40, 80, 180} {
		t.Errorf("expected color round-trip, got %v", rec.Color.RGB)
	}
	if rec.Season == nil || len(rec.Season) != 0 {
		t.Errorf("expected empty season set, got %v", rec.Season)
	}
}

func TestGetStagingMissing(t *testing.T) {
	database := db.NewTestDB(t)

	rec, err := GetStaging(context.Background(), database, "stg_missing")
	if err != nil {
		t.Fatalf("GetStaging: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for missing token, got %+v", rec)
	}
}

func TestUpdateStagingPreservesOmittedFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateStaging(ctx, database, testRecord("stg_1", "topwear_shirt_01"))

	formality := "casual"
	rec, err := UpdateStaging(ctx, database, "stg_1", model.ItemPatch{Formality: &formality})
	if err != nil {
		t.Fatalf("UpdateStaging: %v", err)
	}
	if rec.Formality != "casual" {
		t.Errorf("expected formality 'casual', got %q", rec.Formality)
	}
	if rec.Fit != model.Unknown {
		t.Errorf("expected fit untouched, got %q", rec.Fit)
	}
	if rec.Category != "topwear" || rec.Type != "shirt" {
		t.Errorf("expected classification untouched, got %s/%s", rec.Category, rec.Type)
	}
}

func TestUpdateStagingSeason(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateStaging(ctx, database, testRecord("stg_1", "topwear_shirt_01"))

	season := []string{"summer", "spring"}
	rec, err := UpdateStaging(ctx, database, "stg_1", model.ItemPatch{Season: &season})
	if err != nil {
		t.Fatalf("UpdateStaging: %v", err)
	}
	if len(rec.Season) != 2 || rec.Season[0] != "summer" {
		t.Errorf("expected season round-trip, got %v", rec.Season)
	}
}

func TestUpdateStagingMissing(t *testing.T) {
	database := db.NewTestDB(t)

	fit := "slim"
	rec, err := UpdateStaging(context.Background(), database, "stg_missing", model.ItemPatch{Fit: &fit})
	if err != nil {
		t.Fatalf("UpdateStaging: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for missing token, got %+v", rec)
	}
}

func TestDeleteStaging(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateStaging(ctx, database, testRecord("stg_1", "topwear_shirt_01"))

	deleted, err := DeleteStaging(ctx, database, "stg_1")
	if err != nil {
		t.Fatalf("DeleteStaging: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report a removed record")
	}

	rec, _ := GetStaging(ctx, database, "stg_1")
	if rec != nil {
		t.Error("expected record gone after delete")
	}

	deleted, err = DeleteStaging(ctx, database, "stg_1")
	if err != nil {
		t.Fatalf("DeleteStaging: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report nothing removed")
	}
}

func TestListStagingBefore(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateStaging(ctx, database, testRecord("stg_old", "topwear_shirt_01"))

	// Entries created before a future cutoff are stale; a past cutoff
	// matches nothing.
	stale, err := ListStagingBefore(ctx, database, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ListStagingBefore: %v", err)
	}
	if len(stale) != 1 || stale[0].Token != "stg_old" {
		t.Errorf("expected one stale record, got %+v", stale)
	}

	fresh, err := ListStagingBefore(ctx, database, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListStagingBefore: %v", err)
	}
	if len(fresh) != 0 {
		t.Errorf("expected no stale records, got %d", len(fresh))
	}
}
