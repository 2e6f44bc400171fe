package main

import (
	"log"
	"os"
	"strconv"

	"github.com/cristianadrielbraun/symbiotic-pfp/internal/compose"
	"github.com/cristianadrielbraun/symbiotic-pfp/internal/handlers"
	"github.com/cristianadrielbraun/symbiotic-pfp/internal/session"
	"github.com/cristianadrielbraun/symbiotic-pfp/web/pages"
	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := newRouter(handlers.New(session.ComposerFunc(compose.Compose), getMaxUpload()))

	addr := getAddr()
	log.Printf("symbiotic-pfp listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func newRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// API routes
	api := r.Group("/api")
	{
		api.POST("/pfp", h.PFPHandler)
		api.GET("/pfp/result", h.ResultHandler)
		api.POST("/htmx/pfp", h.HTMXPFP)
		api.POST("/htmx/reset", h.HTMXReset)
	}

	r.GET("/sitemap.xml", h.SitemapXML)
	r.GET("/healthz", h.Healthz)

	// Pages
	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := pages.HomePage().Render(c.Request.Context(), c.Writer); err != nil {
			c.String(500, err.Error())
		}
	})
	return r
}

func getAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// getMaxUpload reads PFP_MAX_UPLOAD_MB; zero falls back to the handler default.
func getMaxUpload() int64 {
	v := os.Getenv("PFP_MAX_UPLOAD_MB")
	if v == "" {
		return 0
	}
	mb, err := strconv.ParseInt(v, 10, 64)
	if err != nil || mb <= 0 {
		log.Printf("ignoring invalid PFP_MAX_UPLOAD_MB=%q", v)
		return 0
	}
	return mb << 20
}
