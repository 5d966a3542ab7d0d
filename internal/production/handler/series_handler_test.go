package handler

import (
	"net/http"
	"testing"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/service"
	"github.com/Bunrieu-sketch/content-pipeline/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupProductionTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos)
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := router.Group("/api/v1")
	api.GET("/series", h.Series.ListSeries)
	api.POST("/series", h.Series.CreateSeries)
	api.GET("/series/:id", h.Series.GetSeries)
	api.PATCH("/series/:id", h.Series.PatchSeries)
	api.DELETE("/series/:id", h.Series.DeleteSeries)
	api.GET("/series/:id/episodes", h.Series.ListEpisodes)
	api.POST("/series/:id/episodes", h.Series.CreateEpisode)
	api.PATCH("/episodes/:id", h.Series.PatchEpisode)
	api.DELETE("/episodes/:id", h.Series.DeleteEpisode)
	api.PATCH("/tasks/:id", h.Series.PatchTask)
	api.GET("/videos", h.Video.ListVideos)
	api.POST("/videos", h.Video.CreateVideo)
	api.PATCH("/videos/:id", h.Video.PatchVideo)
	api.DELETE("/videos/:id", h.Video.DeleteVideo)

	return db, router
}

func TestSeriesCreateSeedsChecklist(t *testing.T) {
	db, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/series",
		map[string]interface{}{"title": "Vietnam Trip", "country": "Vietnam"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	id := data["id"].(string)

	if data["status"] != "planning" {
		t.Fatalf("expected default status planning, got %v", data["status"])
	}
	if data["target_cost_per_episode"].(float64) != 1000 {
		t.Fatalf("expected default target cost 1000, got %v", data["target_cost_per_episode"])
	}

	tasks := data["tasks"].([]interface{})
	if len(tasks) != 21 {
		t.Fatalf("expected 21 seeded tasks, got %d", len(tasks))
	}

	// Tasks spread across weeks 1-5
	var weekCount int64
	db.Model(&entity.PreProTask{}).
		Where("series_id = ? AND week_number = 5", id).
		Count(&weekCount)
	if weekCount != 4 {
		t.Fatalf("expected 4 week-5 tasks, got %d", weekCount)
	}
}

func TestSeriesListAggregates(t *testing.T) {
	_, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/series",
		map[string]interface{}{"title": "Japan Trip"})
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	for _, body := range []map[string]interface{}{
		{"title": "Ep 1", "episode_number": 1, "status": "published"},
		{"title": "Ep 2", "episode_number": 2},
	} {
		w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/series/"+id+"/episodes", body)
		if w2.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
		}
	}

	w3 := testutil.DoRequest(router, http.MethodGet, "/api/v1/series", nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 series, got %d", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["episode_count"].(float64) != 2 {
		t.Fatalf("expected episode_count 2, got %v", row["episode_count"])
	}
	if row["published_count"].(float64) != 1 {
		t.Fatalf("expected published_count 1, got %v", row["published_count"])
	}
}

func TestSeriesDeleteCascades(t *testing.T) {
	db, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/series",
		map[string]interface{}{"title": "India Trip"})
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/series/"+id+"/episodes",
		map[string]interface{}{"title": "Ep 1"})
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(router, http.MethodDelete, "/api/v1/series/"+id, nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}

	var episodeCount, taskCount int64
	db.Model(&entity.Episode{}).Where("series_id = ?", id).Count(&episodeCount)
	db.Model(&entity.PreProTask{}).Where("series_id = ?", id).Count(&taskCount)
	if episodeCount != 0 || taskCount != 0 {
		t.Fatalf("expected cascade delete, got episodes=%d tasks=%d", episodeCount, taskCount)
	}
}

func TestTaskPatchCompleted(t *testing.T) {
	db, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/series",
		map[string]interface{}{"title": "Peru Trip"})
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	var task entity.PreProTask
	if err := db.Where("series_id = ?", id).First(&task).Error; err != nil {
		t.Fatalf("failed to load seeded task: %v", err)
	}

	w2 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/tasks/"+task.ID,
		map[string]interface{}{"completed": 1})
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["completed"].(float64) != 1 {
		t.Fatalf("expected completed 1, got %v", data["completed"])
	}

	// Empty patch is rejected
	w3 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/tasks/"+task.ID,
		map[string]interface{}{})
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d", w3.Code)
	}
}

func TestEpisodePatchAndDelete(t *testing.T) {
	_, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/series",
		map[string]interface{}{"title": "Kenya Trip"})
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/series/"+id+"/episodes",
		map[string]interface{}{"title": "Ep 1", "episode_type": "cornerstone"})
	episode := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	episodeID := episode["id"].(string)
	if episode["episode_type"] != "cornerstone" {
		t.Fatalf("expected cornerstone, got %v", episode["episode_type"])
	}

	w3 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/episodes/"+episodeID,
		map[string]interface{}{"status": "published", "hook": "What nobody tells you"})
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	patched := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if patched["status"] != "published" {
		t.Fatalf("expected status published, got %v", patched["status"])
	}

	w4 := testutil.DoRequest(router, http.MethodDelete, "/api/v1/episodes/"+episodeID, nil)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}

	w5 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/episodes/"+episodeID,
		map[string]interface{}{"status": "planning"})
	if w5.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w5.Code)
	}
}
