package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/symbiotic-pfp/internal/compose"
	"github.com/cristianadrielbraun/symbiotic-pfp/internal/session"
	"github.com/cristianadrielbraun/symbiotic-pfp/web/components"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const (
	// formField is the multipart field carrying the upload.
	formField = "image"
	// sessionCookie names the cookie holding the session id.
	sessionCookie = "pfp_session"
	// resultPath serves the session's composed PNG.
	resultPath = "/api/pfp/result"
)

var errNoUpload = errors.New("no image uploaded")

// uploadError carries the status code for a rejected request body.
type uploadError struct {
	status int
	err    error
}

func (e *uploadError) Error() string { return e.err.Error() }
func (e *uploadError) Unwrap() error { return e.err }

// uploadStatus is the HTTP status for an error from readUpload.
func uploadStatus(err error) int {
	var ue *uploadError
	if errors.As(err, &ue) {
		return ue.status
	}
	return http.StatusInternalServerError
}

// readUpload returns the uploaded bytes, either from the "image" multipart
// field or, for any other content type, the raw request body.
func (h *Handler) readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	var r io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile(formField)
		if err != nil {
			if isTooLarge(err) {
				return nil, &uploadError{http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.maxUpload)}
			}
			return nil, &uploadError{http.StatusBadRequest, errNoUpload}
		}
		f, err := fh.Open()
		if err != nil {
			return nil, &uploadError{http.StatusBadRequest, fmt.Errorf("open upload: %w", err)}
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if isTooLarge(err) {
			return nil, &uploadError{http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.maxUpload)}
		}
		return nil, &uploadError{http.StatusBadRequest, fmt.Errorf("read upload: %w", err)}
	}
	if len(data) == 0 {
		return nil, &uploadError{http.StatusBadRequest, errNoUpload}
	}
	return data, nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

// process runs src through sess and returns the upload's detected MIME type.
// Failures are logged here, at the point of composition.
func (h *Handler) process(sess *session.Session, src []byte) (string, error) {
	mime := mimetype.Detect(src).String()
	if err := sess.Upload(src); err != nil {
		log.Printf("[PFP] processing failed: size=%d type=%s err=%v", len(src), mime, err)
		return mime, err
	}
	log.Printf("[PFP] processed: size=%d type=%s", len(src), mime)
	return mime, nil
}

// failureStatus maps a failed upload to an HTTP status.
func failureStatus(err error) int {
	var de *compose.DecodeError
	switch {
	case errors.As(err, &de):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// browserSession returns the caller's session, creating one and setting the
// cookie when the request carries none or an expired one.
func (h *Handler) browserSession(c *gin.Context) (*session.Session, error) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := h.sessions.Get(id); ok {
			return sess, nil
		}
	}
	id, sess, err := h.sessions.Create()
	if err != nil {
		return nil, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(h.sessions.TTL.Seconds()), "/", "", false, true)
	return sess, nil
}

// existingSession returns the caller's session without creating one.
func (h *Handler) existingSession(c *gin.Context) (*session.Session, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(id)
}

// PFPHandler accepts an image and answers with the composed PNG.
// ?disposition=inline serves it for on-screen display instead of as a download.
func (h *Handler) PFPHandler(c *gin.Context) {
	src, err := h.readUpload(c)
	if err != nil {
		c.JSON(uploadStatus(err), gin.H{"error": err.Error()})
		return
	}

	sess := session.New(h.composer)
	if _, err := h.process(sess, src); err != nil {
		c.JSON(failureStatus(err), gin.H{"error": "processing failed: " + err.Error()})
		return
	}
	out, err := sess.Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writePNG(c, out, c.Query("disposition") == "inline")
}

// ResultHandler serves the composed PNG held by the caller's session.
func (h *Handler) ResultHandler(c *gin.Context) {
	sess, ok := h.existingSession(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrNoResult.Error()})
		return
	}
	out, err := sess.Result()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	writePNG(c, out, c.Query("disposition") == "inline")
}

func writePNG(c *gin.Context, out []byte, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, session.Filename))
	c.Data(http.StatusOK, "image/png", out)
}

// HTMXPFP accepts an image into the caller's session and answers with the
// card matching the session's state. Fragments are always sent with 200 so
// htmx swaps them, failures included.
func (h *Handler) HTMXPFP(c *gin.Context) {
	src, err := h.readUpload(c)
	if err != nil {
		log.Printf("[PFP] rejected upload: status=%d err=%v", uploadStatus(err), err)
		renderFragment(c, components.Failed(err.Error()))
		return
	}

	sess, err := h.browserSession(c)
	if err != nil {
		log.Printf("[PFP] create session: %v", err)
		renderFragment(c, components.Failed("Could not start a session."))
		return
	}

	mime, err := h.process(sess, src)
	if errors.Is(err, session.ErrBusy) {
		renderFragment(c, components.Busy())
		return
	}
	renderFragment(c, h.stateCard(sess, mime))
}

// HTMXReset returns the caller's session to Idle and answers with the idle card.
func (h *Handler) HTMXReset(c *gin.Context) {
	if sess, ok := h.existingSession(c); ok {
		sess.Reset()
		renderFragment(c, h.stateCard(sess, ""))
		return
	}
	renderFragment(c, components.Idle())
}

// stateCard picks the result card for the session's current state.
func (h *Handler) stateCard(sess *session.Session, originalType string) templ.Component {
	switch sess.State() {
	case session.Done:
		out, err := sess.Result()
		if err != nil {
			return components.Failed(err.Error())
		}
		return components.Result(components.ResultData{
			OriginalURL:  dataURL(originalType, sess.Original()),
			ProcessedURL: dataURL("image/png", out),
			DownloadURL:  resultPath,
			Filename:     session.Filename,
		})
	case session.Failed:
		return components.Failed("The file could not be read as an image.")
	case session.Processing:
		return components.Busy()
	default:
		return components.Idle()
	}
}

func renderFragment(c *gin.Context, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		log.Printf("[PFP] render fragment: %v", err)
	}
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
