package quote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Rohitprj/QuoteVault/config"
	"github.com/Rohitprj/QuoteVault/internal/svc"
)

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *svc.ServiceContext) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := &svc.ServiceContext{
		Config: &config.Config{},
		DB:     newTestDB(t),
	}
	h := NewHandler(ctx)

	r := gin.New()
	r.GET("/quotes", h.GetQuotes)
	r.GET("/quotes/search", h.SearchQuotes)
	r.GET("/quotes/daily", h.QuoteOfTheDay)
	r.GET("/quotes/categories", h.GetCategories)
	r.GET("/quotes/:id", h.GetQuote)
	return r, ctx
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestGetQuotesEndpoint(t *testing.T) {
	r, ctx := newTestRouter(t)
	for i := 0; i < 25; i++ {
		seedQuote(t, ctx.DB, fmt.Sprintf("q%d", i), "Author", "Wisdom")
	}

	w, env := doGet(t, r, "/quotes?limit=20")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("expected success, got %d/%d", w.Code, env.Code)
	}

	var page Page
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("bad page payload: %v", err)
	}
	if len(page.Quotes) != 20 || !page.HasMore {
		t.Fatalf("expected full first page, got %d/%v", len(page.Quotes), page.HasMore)
	}
}

func TestGetQuotesClampsLimit(t *testing.T) {
	r, ctx := newTestRouter(t)
	seedQuote(t, ctx.DB, "a", "A", "Life")

	// Negative offset and oversized limit both get normalized, not rejected.
	w, _ := doGet(t, r, "/quotes?offset=-5&limit=5000")
	if w.Code != http.StatusOK {
		t.Fatalf("expected normalized params to succeed, got %d", w.Code)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doGet(t, r, "/quotes/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", w.Code)
	}
	if env.Message == "" {
		t.Error("error responses carry a message")
	}

	longQuery := make([]byte, 60)
	for i := range longQuery {
		longQuery[i] = 'a'
	}
	w, _ = doGet(t, r, "/quotes/search?q="+string(longQuery))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized query, got %d", w.Code)
	}
}

func TestQuoteOfTheDayEndpointEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doGet(t, r, "/quotes/daily")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on empty table, got %d", w.Code)
	}
}

func TestGetQuoteEndpoint(t *testing.T) {
	r, ctx := newTestRouter(t)
	q := seedQuote(t, ctx.DB, "a", "A", "Wisdom")

	w, _ := doGet(t, r, fmt.Sprintf("/quotes/%d", q.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w, _ = doGet(t, r, "/quotes/999999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing quote, got %d", w.Code)
	}

	w, _ = doGet(t, r, "/quotes/not-a-number")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}
