package handlers

import (
	"github.com/cristianadrielbraun/symbiotic-pfp/internal/session"
	"github.com/gin-gonic/gin"
)

// DefaultMaxUpload bounds request bodies when New is given a non-positive limit.
const DefaultMaxUpload int64 = 20 << 20

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	composer  session.Composer
	sessions  *session.Store
	maxUpload int64
}

// New returns a Handler composing with c and accepting uploads up to maxUpload bytes.
func New(c session.Composer, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Handler{
		composer:  c,
		sessions:  session.NewStore(c),
		maxUpload: maxUpload,
	}
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(200, xml)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
