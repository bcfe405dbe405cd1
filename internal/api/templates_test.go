package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"disparo-dashboard/internal/automation"
	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

type fakeTemplateSender struct {
	payloads []automation.TemplatePayload
	err      error
}

func (f *fakeTemplateSender) SendTemplateAction(ctx context.Context, p automation.TemplatePayload) error {
	f.payloads = append(f.payloads, p)
	return f.err
}

func templateRouter(sender TemplateSender) *gin.Engine {
	h := NewTemplateHandler(sender, nil)
	r := gin.New()
	r.GET("/api/templates", h.GetTemplates)
	r.POST("/api/templates", h.CreateTemplate)
	r.POST("/api/templates/:id/toggle", h.ToggleTemplate)
	r.DELETE("/api/templates/:id", h.DeleteTemplate)
	return r
}

func TestCreateTemplateTwoPhase(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeTemplateSender{}
	r := templateRouter(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates",
		strings.NewReader(`{"titulo":"Boas-vindas","mensagem":"Olá {{nome}}"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// Phase 1 reached the webhook.
	if len(sender.payloads) != 1 || sender.payloads[0].ActionType != "create" {
		t.Fatalf("webhook payloads = %+v", sender.payloads)
	}

	// Phase 2 persisted the row.
	var count int64
	db.Model(&models.Template{}).Count(&count)
	if count != 1 {
		t.Errorf("templates in db = %d, want 1", count)
	}
}

func TestCreateTemplateWebhookFailureSkipsLocalWrite(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeTemplateSender{err: errors.New("webhook down")}
	r := templateRouter(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates",
		strings.NewReader(`{"titulo":"t","mensagem":"m"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	var count int64
	db.Model(&models.Template{}).Count(&count)
	if count != 0 {
		t.Error("failed phase 1 must not write locally")
	}
}

func TestCreateTemplatePartialWrite(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeTemplateSender{}
	r := templateRouter(sender)

	// Break phase 2 only.
	if err := db.Migrator().DropTable(&models.Template{}); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates",
		strings.NewReader(`{"titulo":"t","mensagem":"m"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if len(sender.payloads) != 1 {
		t.Error("phase 1 should have fired before the local failure")
	}
	if !strings.Contains(w.Body.String(), `"partial":true`) {
		t.Errorf("partial write must be flagged, body = %s", w.Body.String())
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	setupTestDB(t)
	sender := &fakeTemplateSender{}
	r := templateRouter(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates",
		strings.NewReader(`{"titulo":"  ","mensagem":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(sender.payloads) != 0 {
		t.Error("validation failure must not reach the webhook")
	}
}

func TestGetTemplatesHidesSoftDeleted(t *testing.T) {
	db := setupTestDB(t)
	deleted := true
	kept := false
	db.Create(&models.Template{ID: "a", Title: "viva", Body: "m", Active: true, Deleted: &kept})
	db.Create(&models.Template{ID: "b", Title: "morta", Body: "m", Active: true, Deleted: &deleted})
	db.Create(&models.Template{ID: "c", Title: "legada", Body: "m", Active: true}) // deletado null

	r := templateRouter(&fakeTemplateSender{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "morta") {
		t.Error("soft-deleted template leaked into the list")
	}
	if !strings.Contains(body, "viva") || !strings.Contains(body, "legada") {
		t.Errorf("expected live templates in %s", body)
	}
}

func TestDeleteTemplateIsSoft(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Template{ID: "a", Title: "t", Body: "m", Active: true})

	sender := &fakeTemplateSender{}
	r := templateRouter(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/templates/a", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if sender.payloads[0].ActionType != "delete" {
		t.Errorf("webhook action = %q", sender.payloads[0].ActionType)
	}

	var tpl models.Template
	if err := database.DB.First(&tpl, "id = ?", "a").Error; err != nil {
		t.Fatal("soft delete must keep the row")
	}
	if tpl.Deleted == nil || !*tpl.Deleted {
		t.Error("deletado flag not set")
	}
}

func TestToggleTemplateFlipsActive(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Template{ID: "a", Title: "t", Body: "m", Active: true})

	sender := &fakeTemplateSender{}
	r := templateRouter(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates/a/toggle", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	p := sender.payloads[0]
	if p.ActionType != "toggle_status" || p.Ativo == nil || *p.Ativo {
		t.Errorf("toggle payload = %+v", p)
	}

	var tpl models.Template
	db.First(&tpl, "id = ?", "a")
	if tpl.Active {
		t.Error("active flag not flipped locally")
	}
}
