// Package catalog implementa el puerto CatalogClient contra el servicio externo de productos.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// Verificar en tiempo de compilación que HTTPClient implementa CatalogClient.
var _ ports.CatalogClient = (*HTTPClient)(nil)

const (
	productsPath = "/api/v1/products/"
	apiKeyHeader = "X-API-KEY"
	maxBodyBytes = 64 * 1024
	// Precio con centavos, como lo guarda el catálogo (NUMERIC(10,2))
	maxPriceDecimals = 2
)

// HTTPClient adaptador REST del catálogo: GET {baseURL}/api/v1/products/{id} con X-API-KEY.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient construye el adaptador. timeout <= 0 usa 5 s.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// productPayload JSON del servicio de productos.
type productPayload struct {
	ID          int                 `json:"id"`
	Name        *string             `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	Description string              `json:"description"`
}

// GetProduct consulta un producto. 404 o un cuerpo null es "no existe" → (nil, nil).
// Cualquier otra falla, incluido un producto sin nombre o sin precio válido, envuelve
// domain.ErrCatalogUnavailable.
func (c *HTTPClient) GetProduct(ctx context.Context, productID int) (*entity.CatalogProduct, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: CATALOG_BASE_URL no configurado", domain.ErrCatalogUnavailable)
	}
	endpoint := c.baseURL + productsPath + url.PathEscape(strconv.Itoa(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: crear HTTP request: %v", domain.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %w", domain.ErrCatalogUnavailable, ctx.Err())
		}
		return nil, fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrCatalogUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrCatalogUnavailable, resp.StatusCode, truncate(string(rawBody), 200))
	}

	if body := bytes.TrimSpace(rawBody); len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var payload productPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: deserializar producto: %v", domain.ErrCatalogUnavailable, err)
	}
	product, err := payload.toEntity(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: producto %d: %v", domain.ErrCatalogUnavailable, productID, err)
	}
	return product, nil
}

// toEntity valida el payload. Sin id se usa el solicitado, solo si el resto está completo.
func (p productPayload) toEntity(requestedID int) (*entity.CatalogProduct, error) {
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("respuesta sin name")
	}
	if !p.Price.Valid {
		return nil, fmt.Errorf("respuesta sin price")
	}
	price := p.Price.Decimal
	if price.IsNegative() {
		return nil, fmt.Errorf("price negativo: %s", price)
	}
	if !price.Equal(price.Truncate(maxPriceDecimals)) {
		return nil, fmt.Errorf("price con más de %d decimales: %s", maxPriceDecimals, price)
	}
	id := p.ID
	if id == 0 {
		id = requestedID
	}
	if id != requestedID {
		return nil, fmt.Errorf("id %d no corresponde al solicitado", id)
	}
	return &entity.CatalogProduct{
		ID:          id,
		Name:        *p.Name,
		Price:       price,
		Description: p.Description,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
