package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/infrastructure/catalog"
)

const testAPIKey = "catalog-key"

func newCatalogServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_ProductoEncontrado(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/1", r.URL.Path)
		assert.Equal(t, testAPIKey, r.Header.Get("X-API-KEY"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"Teclado","price":100.00,"description":"mecánico"}`))
	})
	client := catalog.NewHTTPClient(srv.URL+"/", testAPIKey, time.Second)

	p, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Teclado", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "mecánico", p.Description)
}

func TestHTTPClient_404EsAusenteSinError(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"Producto no encontrado"}}`))
	})
	client := catalog.NewHTTPClient(srv.URL, testAPIKey, time.Second)

	p, err := client.GetProduct(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestHTTPClient_FallasSonCatalogUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"500", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"401 api key inválida", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }},
		{"json inválido", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newCatalogServer(t, tc.handler)
			client := catalog.NewHTTPClient(srv.URL, testAPIKey, time.Second)

			p, err := client.GetProduct(context.Background(), 1)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
			assert.NotErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestHTTPClient_CuerpoNullEsAusente(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`null`))
	})
	client := catalog.NewHTTPClient(srv.URL, testAPIKey, time.Second)

	p, err := client.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestHTTPClient_ProductoIncompletoEsCatalogUnavailable(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"objeto vacío", `{}`},
		{"sin name", `{"id":5,"price":10.00}`},
		{"name vacío", `{"id":5,"name":"","price":10.00}`},
		{"sin price", `{"id":5,"name":"Mouse"}`},
		{"price null", `{"id":5,"name":"Mouse","price":null}`},
		{"price negativo", `{"id":5,"name":"Mouse","price":-1.00}`},
		{"price con tres decimales", `{"id":5,"name":"Mouse","price":0.125}`},
		{"id distinto", `{"id":6,"name":"Mouse","price":10.00}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			})
			client := catalog.NewHTTPClient(srv.URL, testAPIKey, time.Second)

			p, err := client.GetProduct(context.Background(), 5)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
		})
	}
}

func TestHTTPClient_SinIDUsaElSolicitado(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Mouse","price":"20.50"}`))
	})
	client := catalog.NewHTTPClient(srv.URL, testAPIKey, time.Second)

	p, err := client.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 5, p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("20.50")))
}

func TestHTTPClient_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := catalog.NewHTTPClient(url, testAPIKey, time.Second)
	_, err := client.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	client := catalog.NewHTTPClient(srv.URL, testAPIKey, 50*time.Millisecond)

	_, err := client.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestHTTPClient_SinBaseURL(t *testing.T) {
	_, err := catalog.NewHTTPClient("", "", 0).GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

// countingCatalog cuenta llamadas y bloquea hasta que se libere.
type countingCatalog struct {
	calls   atomic.Int32
	release chan struct{}
}

func (c *countingCatalog) GetProduct(_ context.Context, productID int) (*entity.CatalogProduct, error) {
	c.calls.Add(1)
	<-c.release
	if productID == 404 {
		return nil, nil
	}
	return &entity.CatalogProduct{ID: productID, Name: "Mouse", Price: decimal.NewFromInt(20)}, nil
}

func TestSingleflightClient_AgrupaConsultasConcurrentes(t *testing.T) {
	next := &countingCatalog{release: make(chan struct{})}
	client := catalog.NewSingleflightClient(next)

	const callers = 10
	var wg sync.WaitGroup
	results := make([]*entity.CatalogProduct, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := client.GetProduct(context.Background(), 3)
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	// Dar tiempo a que todos se unan a la llamada en curso
	time.Sleep(50 * time.Millisecond)
	close(next.release)
	wg.Wait()

	assert.Equal(t, int32(1), next.calls.Load())
	for _, p := range results {
		require.NotNil(t, p)
		assert.Equal(t, "Mouse", p.Name)
	}
	assert.NotSame(t, results[0], results[1], "cada caller recibe su propia copia")
}

func TestSingleflightClient_NoCachea(t *testing.T) {
	next := &countingCatalog{release: make(chan struct{})}
	close(next.release)
	client := catalog.NewSingleflightClient(next)

	_, _ = client.GetProduct(context.Background(), 3)
	_, _ = client.GetProduct(context.Background(), 3)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestSingleflightClient_AusentePasaComoNil(t *testing.T) {
	next := &countingCatalog{release: make(chan struct{})}
	close(next.release)
	client := catalog.NewSingleflightClient(next)

	p, err := client.GetProduct(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSingleflightClient_ContextoCancelado(t *testing.T) {
	next := &countingCatalog{release: make(chan struct{})}
	defer close(next.release)
	client := catalog.NewSingleflightClient(next)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.GetProduct(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
