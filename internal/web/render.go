package web

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ViewData map[string]any

// view decorates template data with the signed-in user and any pending
// flash message.
func (s *Server) view(c *gin.Context, data ViewData) ViewData {
	if data == nil {
		data = ViewData{}
	}
	if u, ok := c.Get(ctxUserKey); ok {
		data["User"] = u
	} else if u, ok := s.sessionUser(c); ok {
		data["User"] = u
	}
	if msg := popFlash(c); msg != "" {
		data["Flash"] = msg
	}
	return data
}

func setFlash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.Set("flash", msg)
	_ = sess.Save()
}

func popFlash(c *gin.Context) string {
	sess := sessions.Default(c)
	raw := sess.Get("flash")
	if raw == nil {
		return ""
	}
	sess.Delete("flash")
	_ = sess.Save()
	msg, _ := raw.(string)
	return msg
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *Server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", s.view(c, nil))
}

// saveImage stores an uploaded image under the uploads dir and returns its
// public path. No file selected is not an error.
func (s *Server) saveImage(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image format")
	}
	_ = os.MkdirAll(s.cfg.UploadDir, 0o755)
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
