package handler

import (
	"net/http"
	"testing"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/service"
	"github.com/Bunrieu-sketch/content-pipeline/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupDealTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, nil, repos)
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := router.Group("/api/v1")
	api.GET("/sponsors", h.Deal.ListDeals)
	api.POST("/sponsors", h.Deal.CreateDeal)
	api.GET("/sponsors/:id", h.Deal.GetDeal)
	api.PATCH("/sponsors/:id", h.Deal.PatchDeal)
	api.POST("/sponsors/:id/move", h.Deal.MoveDeal)
	api.DELETE("/sponsors/:id", h.Deal.DeleteDeal)
	api.GET("/sponsors/:id/deliverables", h.Deal.ListDeliverables)
	api.POST("/sponsors/:id/deliverables", h.Deal.CreateDeliverable)
	api.PATCH("/sponsors/:id/deliverables/:deliverableId", h.Deal.UpdateDeliverable)
	api.DELETE("/sponsors/:id/deliverables/:deliverableId", h.Deal.DeleteDeliverable)
	api.GET("/sponsors/:id/notes", h.Deal.ListNotes)
	api.POST("/sponsors/:id/notes", h.Deal.CreateNote)
	api.DELETE("/sponsors/:id/notes/:noteId", h.Deal.DeleteNote)

	return db, router
}

func createDeal(t *testing.T, router *gin.Engine, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestDealCreateDerivesNetValue(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{
		"brand_name":       "Acme VPN",
		"deal_value_gross": 1000,
	})
	if data["deal_value_net"].(float64) != 800 {
		t.Fatalf("expected derived net 800, got %v", data["deal_value_net"])
	}
	if data["stage"] != "offer_received" {
		t.Fatalf("expected default stage offer_received, got %v", data["stage"])
	}
	if data["payment_terms_brand_days"].(float64) != 30 {
		t.Fatalf("expected default brand days 30, got %v", data["payment_terms_brand_days"])
	}

	// Explicit net in the same payload wins over the derivation
	data2 := createDeal(t, router, map[string]interface{}{
		"brand_name":       "Acme Audio",
		"deal_value_gross": 1000,
		"deal_value_net":   950,
	})
	if data2["deal_value_net"].(float64) != 950 {
		t.Fatalf("expected explicit net 950, got %v", data2["deal_value_net"])
	}
}

func TestDealCreateComputesPaymentDueDate(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{
		"brand_name":   "Brand A",
		"publish_date": "2024-01-01",
	})
	if data["payment_due_date"] != "2024-02-15" {
		t.Fatalf("expected due date 2024-02-15, got %v", data["payment_due_date"])
	}

	// Computed value shadows an explicit payment_due_date in the same payload
	data2 := createDeal(t, router, map[string]interface{}{
		"brand_name":       "Brand B",
		"publish_date":     "2024-01-01",
		"payment_due_date": "2024-06-30",
	})
	if data2["payment_due_date"] != "2024-02-15" {
		t.Fatalf("expected computed due date to shadow explicit, got %v", data2["payment_due_date"])
	}

	// Without any due-date input the explicit value stands
	data3 := createDeal(t, router, map[string]interface{}{
		"brand_name":       "Brand C",
		"payment_due_date": "2024-06-30",
	})
	if data3["payment_due_date"] != "2024-06-30" {
		t.Fatalf("expected explicit due date to stand, got %v", data3["payment_due_date"])
	}
}

func TestDealPatchRecomputesDueDate(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{"brand_name": "Brand"})
	id := data["id"].(string)

	// Setting publish_date triggers the recompute with stored terms (30+15)
	w := testutil.DoRequest(router, http.MethodPatch, "/api/v1/sponsors/"+id,
		map[string]interface{}{"publish_date": "2024-03-01"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	patched := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if patched["payment_due_date"] != "2024-04-15" {
		t.Fatalf("expected due date 2024-04-15, got %v", patched["payment_due_date"])
	}

	// Changing terms alone recomputes against the stored publish date
	w2 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/sponsors/"+id,
		map[string]interface{}{"payment_terms_brand_days": 10, "payment_terms_agency_days": 5})
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	patched2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if patched2["payment_due_date"] != "2024-03-16" {
		t.Fatalf("expected due date 2024-03-16, got %v", patched2["payment_due_date"])
	}

	// Gross without net in a patch re-derives the net
	w3 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/sponsors/"+id,
		map[string]interface{}{"deal_value_gross": 2000})
	patched3 := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if patched3["deal_value_net"].(float64) != 1600 {
		t.Fatalf("expected derived net 1600, got %v", patched3["deal_value_net"])
	}
}

func TestDealPatchNoFields(t *testing.T) {
	db, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{"brand_name": "Brand"})
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPatch, "/api/v1/sponsors/"+id, map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d: %s", w.Code, w.Body.String())
	}

	// Record is untouched
	var deal entity.Deal
	db.Where("id = ?", id).First(&deal)
	if deal.BrandName != "Brand" {
		t.Fatalf("expected record unchanged, got brand %s", deal.BrandName)
	}
}

func TestDealMoveDefaultAdvance(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{"brand_name": "Brand"})
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	moved := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if moved["stage"] != "qualified" {
		t.Fatalf("expected stage qualified, got %v", moved["stage"])
	}
}

func TestDealMoveMilestoneSetOnce(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{
		"brand_name":    "Brand",
		"contract_date": "2024-01-10",
	})
	id := data["id"].(string)

	// Moving into contract_signed keeps the pre-existing milestone date
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move",
		map[string]interface{}{"stage": "contract_signed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	moved := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if moved["contract_date"] != "2024-01-10" {
		t.Fatalf("expected milestone preserved, got %v", moved["contract_date"])
	}

	// A stage without a prior milestone gets today
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move",
		map[string]interface{}{"stage": "filming"})
	moved2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if moved2["film_by_date"] == nil || moved2["film_by_date"] == "" {
		t.Fatal("expected film_by_date to be stamped")
	}
}

func TestDealMoveToPublished(t *testing.T) {
	_, router := setupDealTest(t)

	// With a recorded publish date, the due date derives from it
	data := createDeal(t, router, map[string]interface{}{
		"brand_name":   "Brand",
		"publish_date": "2024-05-01",
	})
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move",
		map[string]interface{}{"stage": "published"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	moved := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if moved["payment_due_date"] != "2024-06-15" {
		t.Fatalf("expected due date 2024-06-15, got %v", moved["payment_due_date"])
	}

	// Without one, today substitutes and both dates get stamped
	data2 := createDeal(t, router, map[string]interface{}{"brand_name": "Brand 2"})
	id2 := data2["id"].(string)
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id2+"/move",
		map[string]interface{}{"stage": "published"})
	moved2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if moved2["publish_date"] == nil || moved2["publish_date"] == "" {
		t.Fatal("expected publish_date stamped with today")
	}
	if moved2["payment_due_date"] == nil || moved2["payment_due_date"] == "" {
		t.Fatal("expected payment_due_date computed")
	}
}

func TestDealMoveInvalidStage(t *testing.T) {
	db, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{"brand_name": "Brand"})
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move",
		map[string]interface{}{"stage": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Rejection leaves the record untouched
	var deal entity.Deal
	db.Where("id = ?", id).First(&deal)
	if deal.Stage != "offer_received" {
		t.Fatalf("expected stage unchanged, got %s", deal.Stage)
	}
}

func TestDealMoveClampsAtPaid(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{
		"brand_name": "Brand",
		"stage":      "paid",
	})
	id := data["id"].(string)

	// Default advance from paid stays at paid; make_good needs an explicit target
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	moved := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if moved["stage"] != "paid" {
		t.Fatalf("expected clamp at paid, got %v", moved["stage"])
	}

	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/move",
		map[string]interface{}{"stage": "make_good"})
	moved2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if moved2["stage"] != "make_good" {
		t.Fatalf("expected explicit move to make_good, got %v", moved2["stage"])
	}
}

func TestDealNotFound(t *testing.T) {
	_, router := setupDealTest(t)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/sponsors/nonexistent", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w2 := testutil.DoRequest(router, http.MethodPatch, "/api/v1/sponsors/nonexistent",
		map[string]interface{}{"brand_name": "X"})
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w2.Code)
	}

	w3 := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/nonexistent/move", nil)
	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w3.Code)
	}
}

func TestDealListFilterByStage(t *testing.T) {
	_, router := setupDealTest(t)

	createDeal(t, router, map[string]interface{}{"brand_name": "A"})
	createDeal(t, router, map[string]interface{}{"brand_name": "B", "stage": "filming"})

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/sponsors?stage=filming", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 filming deal, got %d", len(items))
	}

	w2 := testutil.DoRequest(router, http.MethodGet, "/api/v1/sponsors?stage=bogus", nil)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown stage filter, got %d", w2.Code)
	}
}

func TestDealDeleteCascades(t *testing.T) {
	db, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{"brand_name": "Brand"})
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/deliverables",
		map[string]interface{}{"title": "Tracking link"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	w2 := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/notes",
		map[string]interface{}{"note": "Call back Thursday"})
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(router, http.MethodDelete, "/api/v1/sponsors/"+id, nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}

	var dealCount, delivCount, noteCount int64
	db.Model(&entity.Deal{}).Where("id = ?", id).Count(&dealCount)
	db.Model(&entity.Deliverable{}).Where("deal_id = ?", id).Count(&delivCount)
	db.Model(&entity.Note{}).Where("deal_id = ?", id).Count(&noteCount)
	if dealCount != 0 || delivCount != 0 || noteCount != 0 {
		t.Fatalf("expected cascade delete, got deal=%d deliverables=%d notes=%d",
			dealCount, delivCount, noteCount)
	}
}

func TestDeliverableLifecycle(t *testing.T) {
	_, router := setupDealTest(t)

	data := createDeal(t, router, map[string]interface{}{"brand_name": "Brand"})
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/sponsors/"+id+"/deliverables",
		map[string]interface{}{"title": "Pinned comment", "due_date": "2024-04-01"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	item := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if item["status"] != "pending" {
		t.Fatalf("expected default status pending, got %v", item["status"])
	}
	itemID := item["id"].(string)

	w2 := testutil.DoRequest(router, http.MethodPatch,
		"/api/v1/sponsors/"+id+"/deliverables/"+itemID,
		map[string]interface{}{"status": "complete"})
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	updated := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if updated["status"] != "complete" {
		t.Fatalf("expected status complete, got %v", updated["status"])
	}

	w3 := testutil.DoRequest(router, http.MethodDelete,
		"/api/v1/sponsors/"+id+"/deliverables/"+itemID, nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w3.Code, w3.Body.String())
	}

	w4 := testutil.DoRequest(router, http.MethodGet, "/api/v1/sponsors/"+id+"/deliverables", nil)
	listData := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if items, ok := listData["items"].([]interface{}); ok && len(items) != 0 {
		t.Fatal("expected empty deliverable list after delete")
	}
}
