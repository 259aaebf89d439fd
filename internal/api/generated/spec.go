package generated

// spec.go не генерируется: контракт встраивается как есть и разбирается
// kin-openapi. types.go и server.go пересобираются из openapi.yaml.
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config types.cfg.yaml openapi.yaml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config server.cfg.yaml openapi.yaml

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// GetSwagger разбирает встроенный openapi.yaml. Внешние $ref запрещены.
func GetSwagger() (swagger *openapi3.T, err error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	swagger, err = loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}

// ValidateSwagger загружает встроенный контракт и проверяет его корректность.
func ValidateSwagger(ctx context.Context) (*openapi3.T, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	if err := swagger.Validate(ctx); err != nil {
		return nil, fmt.Errorf("контракт OpenAPI некорректен: %w", err)
	}
	return swagger, nil
}
