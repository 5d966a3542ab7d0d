package handler

import (
	"net/http"
	"testing"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/testutil"
)

func TestVideoCreateDefaults(t *testing.T) {
	_, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos",
		map[string]interface{}{"title": "Street Food Tour"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["stage"] != "idea" {
		t.Fatalf("expected default stage idea, got %v", data["stage"])
	}
}

func TestVideoDuplicateTitle(t *testing.T) {
	_, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos",
		map[string]interface{}{"title": "Night Market"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate check is case-insensitive
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos",
		map[string]interface{}{"title": "NIGHT MARKET"})
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestVideoInvalidStage(t *testing.T) {
	db, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos",
		map[string]interface{}{"title": "Bad Stage", "stage": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&entity.Video{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no video created, got %d", count)
	}
}

func TestVideoPatchStage(t *testing.T) {
	_, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos",
		map[string]interface{}{"title": "Temple Visit"})
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/videos/"+id,
		map[string]interface{}{"stage": "filming", "view_count": 0})
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["stage"] != "filming" {
		t.Fatalf("expected stage filming, got %v", data["stage"])
	}

	w3 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/videos/"+id,
		map[string]interface{}{"stage": "not-a-stage"})
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w3.Code, w3.Body.String())
	}

	w4 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/videos/"+id,
		map[string]interface{}{})
	if w4.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d", w4.Code)
	}
}

func TestVideoListOrder(t *testing.T) {
	_, router := setupProductionTest(t)

	for _, body := range []map[string]interface{}{
		{"title": "First"},
		{"title": "Second"},
	} {
		w := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	// Bump Second ahead on the board
	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/videos", nil)
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(items))
	}
	var secondID string
	for _, it := range items {
		row := it.(map[string]interface{})
		if row["title"] == "Second" {
			secondID = row["id"].(string)
		}
	}
	if secondID == "" {
		t.Fatal("video Second not found in list")
	}

	w2 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/videos/"+secondID,
		map[string]interface{}{"sort_order": -1})
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(router, http.MethodGet, "/api/v1/videos", nil)
	items3 := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if items3[0].(map[string]interface{})["id"].(string) != secondID {
		t.Fatal("expected reordered video first on the board")
	}
}

func TestVideoDelete(t *testing.T) {
	_, router := setupProductionTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/videos",
		map[string]interface{}{"title": "To Remove"})
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(router, http.MethodDelete, "/api/v1/videos/"+id, nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(router, http.MethodDelete, "/api/v1/videos/"+id, nil)
	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for already deleted video, got %d", w3.Code)
	}
}
