package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelsAndFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/hotels/:id/status", func(c *gin.Context) {
		c.String(http.StatusOK, "pending")
	})
	r.PUT("/api/hotels/:id/mark-delivered", func(c *gin.Context) {
		c.Status(http.StatusNotModified)
	})

	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/hotels/:id/status", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nowhere", "404"))
	base304 := testutil.ToFloat64(httpReqs.WithLabelValues("PUT", "/api/hotels/:id/mark-delivered", "304"))

	for _, rq := range []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/api/hotels/h1/status", http.StatusOK},
		{http.MethodGet, "/api/hotels/h2/status", http.StatusOK},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodPut, "/api/hotels/h1/mark-delivered", http.StatusNotModified},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rq.method, rq.target, nil))
		if w.Code != rq.want {
			t.Fatalf("%s %s -> %d; want %d", rq.method, rq.target, w.Code, rq.want)
		}
	}

	// both hotel ids collapse onto the route template
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/hotels/:id/status", "200")); got != baseOK+2 {
		t.Fatalf("route counter = %v; want %v", got, baseOK+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nowhere", "404")); got != base404+1 {
		t.Fatalf("fallback counter = %v; want %v", got, base404+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("PUT", "/api/hotels/:id/mark-delivered", "304")); got != base304+1 {
		t.Fatalf("304 counter = %v; want %v", got, base304+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("inflight = %v; want 0", inFlight)
	}
}
