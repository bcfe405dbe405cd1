package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"disparo-dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

func boolPtr(b bool) *bool { return &b }

func contactsRouter() *gin.Engine {
	h := NewContactHandler()
	r := gin.New()
	r.GET("/api/contacts", h.GetContacts)
	return r
}

func seedContacts(t *testing.T) {
	t.Helper()
	db := setupTestDB(t)
	rows := []models.Contact{
		{Phone: "11999887766", FullName: "João Silva", DispatchCompleted: boolPtr(true), DispatchScheduled: boolPtr(false)},  // success
		{Phone: "21988776655", FullName: "Maria Oliveira", DispatchCompleted: boolPtr(false), DispatchScheduled: boolPtr(false)}, // error
		{Phone: "31977665544", FullName: "Pedro Santos", DispatchScheduled: boolPtr(false)},                                  // none
		{Phone: "41966554433", FullName: "Ana Costa", DispatchCompleted: boolPtr(true), DispatchScheduled: boolPtr(true)},    // in-progress
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func getContacts(t *testing.T, r *gin.Engine, url string) []ContactRow {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d, body = %s", url, w.Code, w.Body.String())
	}
	var rows []ContactRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestGetContactsDerivesStatus(t *testing.T) {
	seedContacts(t)
	r := contactsRouter()

	rows := getContacts(t, r, "/api/contacts")
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	byPhone := map[string]string{}
	for _, row := range rows {
		byPhone[row.Phone] = string(row.Status)
	}
	want := map[string]string{
		"11999887766": "success",
		"21988776655": "error",
		"31977665544": "none",
		"41966554433": "in-progress", // scheduled wins over completed
	}
	for phone, st := range want {
		if byPhone[phone] != st {
			t.Errorf("contact %s: status = %q, want %q", phone, byPhone[phone], st)
		}
	}
}

func TestGetContactsBuckets(t *testing.T) {
	seedContacts(t)
	r := contactsRouter()

	sent := getContacts(t, r, "/api/contacts?bucket=sent")
	if len(sent) != 3 {
		t.Errorf("sent bucket = %d rows, want 3", len(sent))
	}

	notSent := getContacts(t, r, "/api/contacts?bucket=not-sent")
	if len(notSent) != 1 || notSent[0].FullName != "Pedro Santos" {
		t.Errorf("not-sent bucket wrong: %+v", notSent)
	}
}

func TestGetContactsSearch(t *testing.T) {
	seedContacts(t)
	r := contactsRouter()

	byName := getContacts(t, r, "/api/contacts?q=maria")
	if len(byName) != 1 || byName[0].FullName != "Maria Oliveira" {
		t.Errorf("name search wrong: %+v", byName)
	}

	byPhone := getContacts(t, r, "/api/contacts?q=4196655")
	if len(byPhone) != 1 || byPhone[0].FullName != "Ana Costa" {
		t.Errorf("phone search wrong: %+v", byPhone)
	}

	none := getContacts(t, r, "/api/contacts?q=inexistente")
	if len(none) != 0 {
		t.Errorf("search for nothing returned %+v", none)
	}
}
