package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Andert51/P-Music-td/internal/api/generated"
)

// OpenAPIHandler раздаёт встроенный контракт в JSON.
type OpenAPIHandler struct {
	spec []byte
}

// NewOpenAPIHandler загружает контракт один раз при старте.
func NewOpenAPIHandler() (*OpenAPIHandler, error) {
	swagger, err := generated.GetSwagger()
	if err != nil {
		return nil, err
	}
	spec, err := json.Marshal(swagger)
	if err != nil {
		return nil, fmt.Errorf("сериализация OpenAPI: %w", err)
	}
	return &OpenAPIHandler{spec: spec}, nil
}

// GetOpenAPISpec — GET /openapi.json.
func (h *OpenAPIHandler) GetOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.spec)
}
