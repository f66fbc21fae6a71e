package handler_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"microshop/internal/client"
	"microshop/internal/config"
	"microshop/internal/handler"
	"microshop/internal/metrics"
	"microshop/internal/server"
	"microshop/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newUsersApp(t *testing.T) *echo.Echo {
	t.Helper()
	logger := testLogger()
	reg := metrics.NewRegistry("users-service")
	e := server.New("users-service", &config.Config{}, reg, logger)
	handler.NewUsers(store.NewUserStore(), logger).Register(e)
	server.WarmMetrics(e, reg)
	return e
}

func newProductsApp(t *testing.T) *echo.Echo {
	t.Helper()
	logger := testLogger()
	reg := metrics.NewRegistry("products-service")
	e := server.New("products-service", &config.Config{}, reg, logger)
	handler.NewProducts(store.NewProductStore(), logger).Register(e)
	server.WarmMetrics(e, reg)
	return e
}

func newOrdersApp(t *testing.T, usersURL, productsURL string) *echo.Echo {
	t.Helper()
	logger := testLogger()
	reg := metrics.NewRegistry("orders-service")
	usersClient := client.New("users-service", usersURL, "User not found", time.Second, reg, logger)
	productsClient := client.New("products-service", productsURL, "Product not found", time.Second, reg, logger)
	e := server.New("orders-service", &config.Config{}, reg, logger)
	handler.NewOrders(store.NewOrderStore(), usersClient, productsClient, logger).Register(e)
	server.WarmMetrics(e, reg)
	return e
}

// fakeDependency serves the minimal users/products surface orders needs.
func fakeDependency(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":1,"name":"Alice","email":"alice@example.com"}`))
	})
	mux.HandleFunc("GET /products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":1,"name":"Laptop","price":999.99}`))
	})
	mux.HandleFunc("GET /products/error", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Controlled internal server error"}`, http.StatusInternalServerError)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not found"}`, http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func scrapeMetrics(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
