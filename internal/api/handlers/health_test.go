package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		statuses []string
		want     string
	}{
		{[]string{"ok", "ok"}, "ok"},
		{[]string{"ok", "degraded"}, "degraded"},
		{[]string{"degraded", "fail"}, "fail"},
		{nil, "ok"},
	}
	for _, tt := range tests {
		if got := overallStatus(tt.statuses...); got != tt.want {
			t.Errorf("overallStatus(%v) = %q, ожидалось %q", tt.statuses, got, tt.want)
		}
	}
}

func TestHealthHandler_HealthReady(t *testing.T) {
	tests := []struct {
		name       string
		pg         ReadinessChecker
		storage    ReadinessChecker
		wantCode   int
		wantStatus string
	}{
		{"всё доступно", mockChecker{"ok", "ok"}, mockChecker{"ok", "бакетов: 4"}, http.StatusOK, "ok"},
		{"PostgreSQL недоступен", mockChecker{"fail", "timeout"}, mockChecker{"ok", ""}, http.StatusServiceUnavailable, "fail"},
		{"хранилище недоступно", mockChecker{"ok", ""}, mockChecker{"fail", "нет бакета"}, http.StatusServiceUnavailable, "fail"},
		{"PostgreSQL не инициализирован", nil, nil, http.StatusServiceUnavailable, "fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.pg, tt.storage)
			rec := httptest.NewRecorder()
			h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("статус = %d, ожидался %d", rec.Code, tt.wantCode)
			}
			var resp healthReadyResponse
			decodeBody(t, rec, &resp)
			if resp.Status != tt.wantStatus || resp.Service != serviceName {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}

func TestHealthHandler_HealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil, nil).HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d", rec.Code)
	}
}

func TestOpenAPIHandler(t *testing.T) {
	h, err := NewOpenAPIHandler()
	if err != nil {
		t.Fatalf("NewOpenAPIHandler: %v", err)
	}
	rec := httptest.NewRecorder()
	h.GetOpenAPISpec(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	var doc map[string]any
	decodeBody(t, rec, &doc)
	if doc["openapi"] != "3.0.3" {
		t.Errorf("openapi = %v", doc["openapi"])
	}
}
