package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/comicstrip/internal/board"
	imagepkg "github.com/youruser/comicstrip/internal/image"
	"github.com/youruser/comicstrip/internal/strip"
	"github.com/youruser/comicstrip/internal/uploads"
)

type Handler struct {
	session        *strip.Session
	uploads        *uploads.Store
	maxUploadBytes int64
}

func NewHandler(session *strip.Session, store *uploads.Store, maxUploadBytes int64) *Handler {
	return &Handler{session: session, uploads: store, maxUploadBytes: maxUploadBytes}
}

// status maps session errors to HTTP codes.
func status(err error) int {
	var genErr *imagepkg.GenerationError
	switch {
	case errors.Is(err, strip.ErrNoArtifact):
		return http.StatusNotFound
	case errors.As(err, &genErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, board.ErrNoInput),
		errors.Is(err, board.ErrSlotsFull),
		errors.Is(err, board.ErrNothingToRemove),
		errors.Is(err, board.ErrInvalidCaptionIndex),
		errors.Is(err, imagepkg.ErrUnsupportedRows),
		errors.Is(err, imagepkg.ErrInvalidColor):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, err error) {
	c.JSON(status(err), gin.H{"error": err.Error()})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.State())
}

// uploadImage takes a multipart "file" field and adds it as the next slot.
func (h *Handler) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		abort(c, board.ErrNoInput)
		return
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		abort(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		abort(c, err)
		return
	}

	id := h.uploads.Put(fh.Filename, fh.Header.Get("Content-Type"), data)
	slot, err := h.session.AddImage(c.Request.Context(), imagepkg.BlobScheme+id, fh.Filename)
	if err != nil {
		h.uploads.Delete(id)
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot, "label": slot.DisplayLabel(), "url": "/api/uploads/" + id})
}

func (h *Handler) addImageURL(c *gin.Context) {
	var req struct {
		URL   string `json:"url"`
		Label string `json:"label"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Label == "" {
		req.Label = req.URL
	}
	slot, err := h.session.AddImage(c.Request.Context(), req.URL, req.Label)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot, "label": slot.DisplayLabel()})
}

func (h *Handler) removeLast(c *gin.Context) {
	slot, err := h.session.RemoveLast(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": slot})
}

func (h *Handler) upload(c *gin.Context) {
	f, ok := h.uploads.File(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func (h *Handler) setCaption(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abort(c, board.ErrInvalidCaptionIndex)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.session.SetCaption(i, req.Text); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": i, "text": req.Text})
}

// setLayout applies a partial layout update.
func (h *Handler) setLayout(c *gin.Context) {
	var req struct {
		Rows         *int    `json:"rows"`
		Background   *string `json:"background"`
		ShowCaptions *bool   `json:"show_captions"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l := h.session.Layout()
	if req.Rows != nil {
		l.Rows = *req.Rows
	}
	if req.Background != nil {
		l.Background = *req.Background
	}
	if req.ShowCaptions != nil {
		l.ShowCaptions = *req.ShowCaptions
	}
	if err := h.session.SetLayout(l); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) generate(c *gin.Context) {
	art, err := h.session.Generate(c.Request.Context())
	if err != nil {
		c.JSON(status(err), gin.H{"error": h.session.Err()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data_uri": art.DataURI(),
		"width":    art.Width,
		"height":   art.Height,
		"geometry": art.Geometry,
	})
}

func (h *Handler) save(c *gin.Context) {
	d, err := h.session.Save()
	if err != nil {
		abort(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+d.FileName+`"`)
	c.Data(http.StatusOK, d.ContentType, d.Data)
}

// share returns the strip as a file with ?native=1, otherwise a share
// intent URL pointing back at the download route.
func (h *Handler) share(c *gin.Context) {
	native := c.Query("native") == "1" || c.Query("native") == "true"
	ref := ""
	if !native {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		ref = scheme + "://" + c.Request.Host + "/api/strip"
	}
	sh, err := h.session.Share(c.Request.Context(), native, ref)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "error sharing", "error", err)
		abort(c, err)
		return
	}
	if sh.File != nil {
		c.Header("Content-Disposition", `attachment; filename="`+sh.File.FileName+`"`)
		c.Data(http.StatusOK, sh.File.ContentType, sh.File.Data)
		return
	}
	resp := gin.H{"title": sh.Title, "intent_url": sh.IntentURL}
	if sh.QRCode != nil {
		resp["qr_png"] = sh.QRCode
	}
	c.JSON(http.StatusOK, resp)
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.QRCodePNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, imagepkg.PNGMime, b)
}
