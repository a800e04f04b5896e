package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/prefs"
	"github.com/Amorizz/portfolio/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// --- admin auth ---

type subject string

func (s subject) GetSubject() (string, error) { return string(s), nil }

type fakeValidator map[string]string

func (v fakeValidator) ValidateToken(token string) (SubjectGetter, error) {
	sub, ok := v[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return subject(sub), nil
}

func adminEngine() *gin.Engine {
	r := gin.New()
	r.Use(RequireAdmin(fakeValidator{"good": "admin"}, "session", "/admin/login"))
	r.GET("/admin", func(c *gin.Context) {
		sub, _ := AdminSubject(c)
		c.String(http.StatusOK, sub)
	})
	r.POST("/admin/purge", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRequireAdmin_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good"})

	w := serve(adminEngine(), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRequireAdmin_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "bearer good")

	w := serve(adminEngine(), req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_MissingTokenRedirectsPages(t *testing.T) {
	w := serve(adminEngine(), httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	cases := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/admin/purge", nil),
		httptest.NewRequest(http.MethodPost, "/admin/purge", nil),
		httptest.NewRequest(http.MethodPost, "/admin/purge", nil),
	}
	cases[1].AddCookie(&http.Cookie{Name: "session", Value: "forged"})
	cases[2].Header.Set("Authorization", "Token good")

	for _, req := range cases {
		w := serve(adminEngine(), req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

// --- request log ---

func TestRequestLog_AssignsID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLog())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	assert.Equal(t, incoming, serve(r, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", serve(r, req).Header().Get(RequestIDHeader))
}

// --- compression ---

func TestBrotli_CompressesWhenAccepted(t *testing.T) {
	body := "<p>bonjour bonjour bonjour bonjour</p>"
	r := gin.New()
	r.Use(Brotli(brotli.DefaultCompression))
	r.GET("/", func(c *gin.Context) { c.Data(http.StatusOK, "text/html", []byte(body)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := serve(r, req)

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	decoded, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
}

func TestBrotli_PassThrough(t *testing.T) {
	r := gin.New()
	r.Use(Brotli(brotli.DefaultCompression))
	r.GET("/cv/en.pdf", func(c *gin.Context) { c.Data(http.StatusOK, "application/pdf", []byte("%PDF")) })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "plain") })
	r.GET("/empty", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(r, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/cv/en.pdf", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "%PDF", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/empty", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestAcceptsBrotli(t *testing.T) {
	assert.True(t, acceptsBrotli("br"))
	assert.True(t, acceptsBrotli("gzip, deflate, br;q=0.8"))
	assert.False(t, acceptsBrotli("gzip"))
	assert.False(t, acceptsBrotli("br;q=0"))
	assert.False(t, acceptsBrotli(""))
}

// --- language ---

func langEngine(store prefs.Store) *gin.Engine {
	r := gin.New()
	r.Use(Language(store))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, string(Lang(c))) })
	return r
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLanguage_DefaultsToEnglish(t *testing.T) {
	w := serve(langEngine(nil), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "en", w.Body.String())
}

func TestLanguage_QueryPersists(t *testing.T) {
	mem := prefs.NewMemory()
	engine := langEngine(mem)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/?lang=fr", nil))
	assert.Equal(t, "fr", w.Body.String())

	langCookie := cookieNamed(w, LangCookie)
	require.NotNil(t, langCookie)
	assert.Equal(t, "fr", langCookie.Value)

	visitor := cookieNamed(w, VisitorCookie)
	require.NotNil(t, visitor)
	saved, ok, err := mem.Get(context.Background(), visitor.Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, content.French, saved)

	// the next request only carries the visitor cookie
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(visitor)
	assert.Equal(t, "fr", serve(engine, req).Body.String())
}

func TestLanguage_InvalidQueryIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
	req.AddCookie(&http.Cookie{Name: LangCookie, Value: "fr"})

	w := serve(langEngine(nil), req)
	assert.Equal(t, "fr", w.Body.String())
	assert.Nil(t, cookieNamed(w, LangCookie))
}

func TestLanguage_StoreWinsOverCookie(t *testing.T) {
	mem := prefs.NewMemory()
	id := uuid.NewString()
	require.NoError(t, mem.Set(context.Background(), id, content.English))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	req.AddCookie(&http.Cookie{Name: LangCookie, Value: "fr"})

	assert.Equal(t, "en", serve(langEngine(mem), req).Body.String())
}

func TestLanguage_UnavailableRedisFallsBackToCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: uuid.NewString()})
	req.AddCookie(&http.Cookie{Name: LangCookie, Value: "fr"})

	assert.Equal(t, "fr", serve(langEngine(prefs.NewRedis("", 0)), req).Body.String())
}

// --- visitors ---

type chanRecorder chan store.Visit

func (c chanRecorder) RecordVisit(_ context.Context, v store.Visit) error {
	c <- v
	return nil
}

func visitorEngine(rec VisitRecorder) *gin.Engine {
	r := gin.New()
	r.Use(Language(nil), Visitors(rec, "salt"))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/about", ok)
	r.GET("/admin", ok)
	r.GET("/static/site.css", ok)
	r.POST("/contact", ok)
	return r
}

func TestVisitors_RecordsPageView(t *testing.T) {
	rec := make(chanRecorder, 1)
	req := httptest.NewRequest(http.MethodGet, "/about?lang=fr", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	req.Header.Set("User-Agent", "test-agent")
	serve(visitorEngine(rec), req)

	select {
	case v := <-rec:
		assert.Equal(t, "/about", v.Path)
		assert.Equal(t, "fr", v.Lang)
		assert.Equal(t, "test-agent", v.UserAgent)
		assert.Equal(t, HashIP("203.0.113.7", "salt"), v.HashedIP)
		assert.NotContains(t, v.HashedIP, "203.0.113.7")
	case <-time.After(2 * time.Second):
		t.Fatal("visit was not recorded")
	}
}

func TestVisitors_Skips(t *testing.T) {
	rec := make(chanRecorder, 10)
	engine := visitorEngine(rec)

	dnt := httptest.NewRequest(http.MethodGet, "/about", nil)
	dnt.Header.Set("DNT", "1")

	for _, req := range []*http.Request{
		dnt,
		httptest.NewRequest(http.MethodGet, "/admin", nil),
		httptest.NewRequest(http.MethodGet, "/static/site.css", nil),
		httptest.NewRequest(http.MethodPost, "/contact", nil),
		httptest.NewRequest(http.MethodGet, "/missing", nil),
	} {
		serve(engine, req)
	}

	select {
	case v := <-rec:
		t.Fatalf("unexpected visit recorded: %+v", v)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHashIP(t *testing.T) {
	h := HashIP("198.51.100.1", "pepper")
	assert.Len(t, h, 16)
	assert.Equal(t, h, HashIP("198.51.100.1", "pepper"))
	assert.NotEqual(t, h, HashIP("198.51.100.1", "salt"))
	assert.NotEqual(t, h, HashIP("198.51.100.2", "pepper"))
}
