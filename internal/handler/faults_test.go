package handler_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlow_ReturnsAfterDelay(t *testing.T) {
	e := newUsersApp(t)

	start := time.Now()
	rec := doJSON(e, http.MethodGet, "/users/slow/0.1", "")
	elapsed := time.Since(start)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Contains(t, rec.Body.String(), `"delay":0.1`)
	assert.Contains(t, rec.Body.String(), "0.1")
}

func TestSlow_Message(t *testing.T) {
	e := newUsersApp(t)

	rec := doJSON(e, http.MethodGet, "/users/slow/0.1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Slow response completed after 0.1 seconds"`)
}

func TestSlow_NegativeDelayRejected(t *testing.T) {
	e := newUsersApp(t)

	rec := doJSON(e, http.MethodGet, "/users/slow/-1", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"detail":"Invalid delay value"`)
}

func TestSlow_MalformedDelayRejected(t *testing.T) {
	e := newUsersApp(t)

	rec := doJSON(e, http.MethodGet, "/users/slow/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSlow_ConcurrentRequestsDoNotSerialize(t *testing.T) {
	e := newProductsApp(t)

	var wg sync.WaitGroup
	var fastElapsed time.Duration

	wg.Add(2)
	go func() {
		defer wg.Done()
		doJSON(e, http.MethodGet, "/products/slow/0.5", "")
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		doJSON(e, http.MethodGet, "/products/slow/0.05", "")
		fastElapsed = time.Since(start)
	}()
	wg.Wait()

	// the short request must not have waited for the long one
	assert.Less(t, fastElapsed, 400*time.Millisecond)
}

func TestControlledError_Returns500(t *testing.T) {
	dep := fakeDependency(t)
	e := newOrdersApp(t, dep.URL, dep.URL)

	rec := doJSON(e, http.MethodGet, "/orders/error", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Controlled internal server error")
}

func TestControlledError_IncrementsCounterPerCall(t *testing.T) {
	e := newUsersApp(t)

	doJSON(e, http.MethodGet, "/users/error", "")
	body := scrapeMetrics(t, e)
	assert.Contains(t, body,
		`errors_total{endpoint="/users/error",error_type="controlled_500",service="users-service"} 1`)

	doJSON(e, http.MethodGet, "/users/error", "")
	body = scrapeMetrics(t, e)
	assert.Contains(t, body,
		`errors_total{endpoint="/users/error",error_type="controlled_500",service="users-service"} 2`)
}

func TestControlledError_RequestSampleHas500Status(t *testing.T) {
	e := newUsersApp(t)

	doJSON(e, http.MethodGet, "/users/error", "")

	body := scrapeMetrics(t, e)
	assert.Contains(t, body,
		`http_requests_total{endpoint="/users/error",method="GET",service="users-service",status="500"} 1`)
}
