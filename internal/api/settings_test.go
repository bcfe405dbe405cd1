package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"disparo-dashboard/internal/automation"

	"github.com/gin-gonic/gin"
)

type fakeCadenceSender struct {
	payloads []automation.CadencePayload
	err      error
}

func (f *fakeCadenceSender) SendCadence(ctx context.Context, p automation.CadencePayload) error {
	f.payloads = append(f.payloads, p)
	return f.err
}

func postCadence(sender CadenceSender, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(sender)
	r := gin.New()
	r.POST("/api/settings/cadence", h.SaveCadence)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/settings/cadence", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSaveCadenceForwardsSettings(t *testing.T) {
	sender := &fakeCadenceSender{}
	w := postCadence(sender, `{"instancia":"Vendas - 55","disparosPorHora":30,"intervaloEntreDisparos":2,"limiteDiario":200,"intervaloAleatorio":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Configurações salvas com sucesso!") {
		t.Errorf("missing success notice, body = %s", w.Body.String())
	}

	p := sender.payloads[0]
	if p.Instancia != "Vendas - 55" || p.DisparosPorHora != 30 || p.LimiteDiario != 200 || !p.IntervaloAleatorio {
		t.Errorf("payload = %+v", p)
	}
}

func TestSaveCadenceRejectsNonPositiveValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero per hour", `{"instancia":"i","disparosPorHora":0,"intervaloEntreDisparos":2,"limiteDiario":200}`},
		{"zero daily limit", `{"instancia":"i","disparosPorHora":30,"intervaloEntreDisparos":2,"limiteDiario":0}`},
		{"negative interval", `{"instancia":"i","disparosPorHora":30,"intervaloEntreDisparos":-1,"limiteDiario":200}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeCadenceSender{}
			w := postCadence(sender, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Valores devem ser maiores que zero") {
				t.Errorf("missing validation message, body = %s", w.Body.String())
			}
			if len(sender.payloads) != 0 {
				t.Error("invalid settings must not reach the webhook")
			}
		})
	}
}
