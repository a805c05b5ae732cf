package webform

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"report-uploader/internal/form"
	"report-uploader/internal/localfiles"
	"report-uploader/internal/session"
	"report-uploader/internal/shared/server/middleware"
	"report-uploader/internal/shared/server/respond"
)

const (
	maxRequestBytes = 100 << 20
	filesField      = "files"
)

// Handler serves one upload form over HTTP.
type Handler struct {
	Session *session.Session
}

// NewHandler constructs a Handler.
func NewHandler(s *session.Session) *Handler {
	return &Handler{Session: s}
}

// RegisterRoutes attaches the form routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.page)
	r.GET("/state", h.state)
	r.POST("/files", h.addFiles)
	r.POST("/files/:id/delete", h.deleteFile)
	r.DELETE("/files/:id", h.deleteFile)
	r.POST("/month", h.selectMonth)
	r.POST("/submit", h.submit)
	r.POST("/reset", h.reset)
}

func (h *Handler) page(c *gin.Context) {
	c.HTML(http.StatusOK, pageName, h.view(h.Session.Snapshot()))
}

func (h *Handler) state(c *gin.Context) {
	respond.OK(c, h.view(h.Session.Snapshot()))
}

func (h *Handler) addFiles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	mf, err := c.MultipartForm()
	if err != nil {
		h.badRequest(c, "invalid file selection")
		return
	}

	headers := mf.File[filesField]
	raw := make([]form.RawFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.badRequest(c, "unable to read file")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			h.badRequest(c, "unable to read file")
			return
		}
		raw = append(raw, localfiles.FromBytes(fh.Filename, fh.Header.Get("Content-Type"), data))
	}

	st, err := h.Session.AddFiles(raw)
	h.finish(c, st, err)
}

func (h *Handler) deleteFile(c *gin.Context) {
	st, err := h.Session.DeleteFile(c.Param("id"))
	h.finish(c, st, err)
}

func (h *Handler) selectMonth(c *gin.Context) {
	st, err := h.Session.SelectMonth(c.PostForm("month"))
	h.finish(c, st, err)
}

type submitRequest struct {
	Month *string `json:"month" form:"month"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			h.badRequest(c, "invalid request body")
			return
		}
	}
	if req.Month != nil {
		if st, err := h.Session.SelectMonth(*req.Month); err != nil {
			h.finish(c, st, err)
			return
		}
	}

	st, err := h.Session.Submit(c.Request.Context())
	h.finish(c, st, err)
}

func (h *Handler) reset(c *gin.Context) {
	st, err := h.Session.Reset()
	h.finish(c, st, err)
}

func (h *Handler) finish(c *gin.Context, st form.State, err error) {
	c.Set(middleware.FilesKey, len(st.Files))
	c.Set(middleware.StatusKey, string(st.Status))

	if respond.WantsHTML(c) {
		respond.SeeOther(c, "/")
		return
	}

	view := h.view(st)
	if err == nil {
		respond.OK(c, view)
		return
	}

	var upErr *form.UpstreamError
	switch {
	case errors.Is(err, session.ErrBusy):
		respond.Error(c, http.StatusConflict, "busy", err.Error(), view)
	case form.IsValidation(err):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), view)
	case errors.As(err, &upErr):
		respond.Error(c, http.StatusBadGateway, "upstream_error", err.Error(), view)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), view)
	}
}

// badRequest rejects input that never reached the form.
func (h *Handler) badRequest(c *gin.Context, message string) {
	if respond.WantsHTML(c) {
		respond.SeeOther(c, "/")
		return
	}
	respond.Error(c, http.StatusBadRequest, "validation_error", message, nil)
}

func (h *Handler) view(st form.State) stateView {
	return toView(st, h.Session.Reporting())
}
