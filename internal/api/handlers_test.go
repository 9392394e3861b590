package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/youruser/comicstrip/internal/image"
	"github.com/youruser/comicstrip/internal/strip"
	"github.com/youruser/comicstrip/internal/uploads"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := uploads.NewStore()
	fetcher := imagepkg.NewFetcher(imagepkg.FetcherOptions{Blobs: store})
	r := gin.New()
	RegisterRoutes(r, NewHandler(strip.NewSession(fetcher), store, 1<<20))
	return r
}

func do(r http.Handler, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, path string, v any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(v)
	return do(r, method, path, b, "application/json")
}

func multipartPNG(t *testing.T, name string) ([]byte, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, imaging.New(30, 30, color.NRGBA{G: 0xff, A: 0xff})))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, name))
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body.Bytes(), mw.FormDataContentType()
}

func upload(t *testing.T, r http.Handler, name string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartPNG(t, name)
	return do(r, http.MethodPost, "/api/images", body, ct)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUploadFlow(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 10; i++ {
		w := upload(t, r, fmt.Sprintf("panel%d.png", i))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		m := decode(t, w)
		assert.Equal(t, fmt.Sprintf("File %d: panel%d.png", i+1, i), m["label"])

		if i == 0 {
			served := do(r, http.MethodGet, m["url"].(string), nil, "")
			assert.Equal(t, http.StatusOK, served.Code)
			assert.Equal(t, "image/png", served.Header().Get("Content-Type"))
		}
	}

	w := upload(t, r, "eleventh.png")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "all slots are full")

	st := decode(t, do(r, http.MethodGet, "/api/state", nil, ""))
	assert.EqualValues(t, 10, st["index"])
	assert.Contains(t, st["error"], "all slots are full")
}

func TestUploadWithoutFile(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/images", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no file chosen", decode(t, w)["error"])
}

func TestGenerateSaveAndShare(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/strip", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "first generate the comic strip", decode(t, w)["error"])

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusCreated, upload(t, r, "p.png").Code)
	}
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/api/captions/0", map[string]string{"text": "Hi"}).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/api/layout", map[string]any{"rows": 4, "show_captions": true}).Code)

	w = do(r, http.MethodPost, "/api/generate", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	m := decode(t, w)
	assert.EqualValues(t, 630, m["width"])
	assert.EqualValues(t, 1051, m["height"])
	assert.True(t, strings.HasPrefix(m["data_uri"].(string), "data:image/png;base64,"))

	w = do(r, http.MethodGet, "/api/strip", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="comic_strip.png"`, w.Header().Get("Content-Disposition"))
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 630, img.Bounds().Dx())

	w = do(r, http.MethodGet, "/api/strip/share?native=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="shared_image.png"`, w.Header().Get("Content-Disposition"))

	w = do(r, http.MethodGet, "/api/strip/share", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	m = decode(t, w)
	assert.Equal(t, "Shared Image", m["title"])
	assert.Contains(t, m["intent_url"], "https://twitter.com/intent/tweet?")
	assert.Contains(t, m["intent_url"], "example.com%2Fapi%2Fstrip")
	assert.NotEmpty(t, m["qr_png"])
}

func TestGenerateFailure(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, upload(t, r, "only.png").Code)

	w := do(r, http.MethodPost, "/api/generate", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["error"], "error generating comic: error loading image")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/strip", nil, "").Code)
}

func TestRemoveLast(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodDelete, "/api/images/last", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, http.StatusCreated, upload(t, r, "a.png").Code)
	w = do(r, http.MethodDelete, "/api/images/last", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	removed := decode(t, w)["removed"].(map[string]any)
	assert.Equal(t, "a.png", removed["label"])

	st := decode(t, do(r, http.MethodGet, "/api/state", nil, ""))
	assert.EqualValues(t, 0, st["index"])
}

func TestSetLayoutValidation(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/api/layout", map[string]any{"rows": 7}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/api/layout", map[string]any{"background": "plaid"}).Code)

	w := doJSON(r, http.MethodPut, "/api/layout", map[string]any{"background": "#ffffff"})
	require.Equal(t, http.StatusOK, w.Code)
	m := decode(t, w)
	assert.EqualValues(t, 2, m["rows"])
	assert.Equal(t, "#ffffff", m["background"])
}

func TestSetCaptionValidation(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/api/captions/10", map[string]string{"text": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, "/api/captions/abc", map[string]string{"text": "x"}).Code)
}

func TestQR(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/qr?text=hello&size=128", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/qr", nil, "").Code)
}
