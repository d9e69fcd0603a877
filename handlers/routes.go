package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"mediabox/middleware"
	"mediabox/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter wires every route of the service onto a fresh engine.
func NewRouter(h *Handler, multipartMemory int64) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORSMiddleware())
	if multipartMemory > 0 {
		r.MaxMultipartMemory = multipartMemory
	}
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)
	r.GET("/dashboard", h.Dashboard)
	r.POST("/delete/:id", h.DeleteFile)
	r.GET("/download/*path", h.Download)
	r.POST("/send_all_dummy", h.SendAllDummy)

	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if h.localBlobs != nil {
		r.GET("/blobs/*path", h.ServeBlob)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "not found")
	})
	return r
}
