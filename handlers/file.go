package handlers

import (
	"errors"
	"net/http"
	"strings"

	"mediabox/logger"
	"mediabox/repositories"
	"mediabox/services"

	"github.com/gin-gonic/gin"
)

type uploadResponse struct {
	OK       bool     `json:"ok"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Degraded bool     `json:"degraded,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// Upload stores a file posted by the mobile client as multipart fields
// "file" and "type".
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		msg := "No file part"
		// A part named "file" with an empty filename is parsed as a plain value.
		if _, present := c.GetPostForm("file"); present && errors.Is(err, http.ErrMissingFile) {
			msg = "No selected file"
		}
		c.JSON(http.StatusBadRequest, uploadResponse{OK: false, Message: msg})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondServiceError(c, err, "open uploaded part "+header.Filename)
		return
	}
	defer file.Close()

	res, err := h.files.Upload(c.Request.Context(), services.UploadInput{
		Filename:    header.Filename,
		TypeHint:    c.DefaultPostForm("type", "gambar"),
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respondServiceError(c, err, "upload "+header.Filename)
		return
	}

	resp := uploadResponse{OK: true, Message: "uploaded", Path: res.Path}
	if res.Degraded() {
		resp.Degraded = true
		resp.Warnings = res.Warnings()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Dashboard(c *gin.Context) {
	flashes := h.popFlashes(c)
	dash := h.files.ListGrouped(c.Request.Context())
	for _, f := range dash.SoftFailures {
		if f.Op == services.OpListRecords {
			flashes = append(flashes, repositories.Flash{Category: flashDanger, Message: "Gagal memuat daftar file"})
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Flashes": flashes,
		"Groups":  dash.Groups,
	})
}

func (h *Handler) DeleteFile(c *gin.Context) {
	res, err := h.files.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err != nil:
		logger.Errorf(err, "delete record %s", c.Param("id"))
		_, msg := serviceError(err)
		h.flash(c, flashDanger, msg)
	case !res.Found:
		h.flash(c, flashDanger, "Dokumen tidak ditemukan")
	default:
		h.flash(c, flashSuccess, "File dihapus")
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Download redirects to a short-lived signed URL for a storage path.
func (h *Handler) Download(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	url, err := h.files.DownloadURL(c.Request.Context(), path)
	if err != nil {
		c.String(http.StatusNotFound, "File not available")
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *Handler) SendAllDummy(c *gin.Context) {
	h.flash(c, flashInfo, "Semua file berhasil dikirim (simulasi).")
	c.Redirect(http.StatusFound, "/dashboard")
}

// ServeBlob streams a blob of the local storage driver when the signed token
// in the query grants access to exactly this path.
func (h *Handler) ServeBlob(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	f, err := h.localBlobs.Open(path, c.Query("token"))
	if err != nil {
		c.String(http.StatusNotFound, "File not available")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		c.String(http.StatusNotFound, "File not available")
		return
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
