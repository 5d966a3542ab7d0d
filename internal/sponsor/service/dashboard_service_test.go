package service

import (
	"context"
	"testing"

	productionentity "github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/testutil"
	"github.com/google/uuid"
)

func TestDashboardStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewDashboardService(db, nil)

	deals := []entity.Deal{
		{ID: uuid.New().String()[:32], BrandName: "A", Stage: entity.StageFilming, DealValueNet: 800},
		{ID: uuid.New().String()[:32], BrandName: "B", Stage: entity.StagePublished, DealValueNet: 1600},
		{ID: uuid.New().String()[:32], BrandName: "C", Stage: entity.StagePaid, DealValueNet: 2400},
		{ID: uuid.New().String()[:32], BrandName: "D", Stage: entity.StageMakeGood, DealValueNet: 500},
	}
	for i := range deals {
		if err := db.Create(&deals[i]).Error; err != nil {
			t.Fatalf("failed to seed deal: %v", err)
		}
	}

	videos := []productionentity.Video{
		{ID: uuid.New().String()[:32], Title: "V1", Stage: productionentity.VideoStageIdea},
		{ID: uuid.New().String()[:32], Title: "V2", Stage: productionentity.VideoStagePublished},
		{ID: uuid.New().String()[:32], Title: "V3", Stage: productionentity.VideoStagePublished},
	}
	for i := range videos {
		if err := db.Create(&videos[i]).Error; err != nil {
			t.Fatalf("failed to seed video: %v", err)
		}
	}

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalVideos != 3 {
		t.Errorf("expected 3 total videos, got %d", stats.TotalVideos)
	}
	if stats.PublishedVideos != 2 {
		t.Errorf("expected 2 published videos, got %d", stats.PublishedVideos)
	}
	// paid and make_good are out of the active pipeline
	if stats.ActiveDeals != 2 {
		t.Errorf("expected 2 active deals, got %d", stats.ActiveDeals)
	}
	if stats.PipelineValue != 2400 {
		t.Errorf("expected pipeline value 2400, got %v", stats.PipelineValue)
	}
	if stats.PublishedDeals != 1 {
		t.Errorf("expected 1 published deal, got %d", stats.PublishedDeals)
	}
	if stats.PaidDeals != 1 {
		t.Errorf("expected 1 paid deal, got %d", stats.PaidDeals)
	}
}
