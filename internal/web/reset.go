package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"crm/internal/models"
)

// resetToken signs a short-lived token naming the user it belongs to.
func (s *Server) resetToken(u models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(u.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ResetTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.SessionSecret))
}

// resetUser validates a token and loads the user it was issued for.
func (s *Server) resetUser(token string) (*models.User, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid reset token")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token subject")
	}
	var u models.User
	if err := s.db.First(&u, uint(id)).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Server) resetRequestForm(c *gin.Context) {
	c.HTML(http.StatusOK, "password_reset.tmpl", s.view(c, nil))
}

// resetRequest hands a signed link to the mailer. Unknown addresses land on
// the same sent page, so the form never reveals which emails exist.
func (s *Server) resetRequest(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email != "" {
		var u models.User
		if err := s.db.Where("email = ?", email).First(&u).Error; err == nil {
			token, err := s.resetToken(u)
			if err == nil {
				link := s.cfg.BaseURL + "/reset/" + token
				if err := s.mailer.SendPasswordReset(email, link); err != nil {
					s.log.Error().Err(err).Msg("reset mail hand-off failed")
				}
			}
		}
	}
	c.Redirect(http.StatusSeeOther, "/reset_password_sent/")
}

func (s *Server) resetSent(c *gin.Context) {
	c.HTML(http.StatusOK, "password_reset_sent.tmpl", s.view(c, nil))
}

// resetConfirmForm shows the new-password form when the token checks out,
// or an invalid-link page otherwise.
func (s *Server) resetConfirmForm(c *gin.Context) {
	if _, err := s.resetUser(c.Param("token")); err != nil {
		c.HTML(http.StatusOK, "password_reset_form.tmpl", s.view(c, ViewData{"Valid": false}))
		return
	}
	c.HTML(http.StatusOK, "password_reset_form.tmpl", s.view(c, ViewData{
		"Valid": true,
		"Token": c.Param("token"),
	}))
}

func (s *Server) resetConfirm(c *gin.Context) {
	u, err := s.resetUser(c.Param("token"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "password_reset_form.tmpl", s.view(c, ViewData{"Valid": false}))
		return
	}

	pw1 := c.PostForm("password1")
	pw2 := c.PostForm("password2")
	fail := func(msg string) {
		c.HTML(http.StatusBadRequest, "password_reset_form.tmpl", s.view(c, ViewData{
			"Valid": true, "Token": c.Param("token"), "Error": msg,
		}))
	}
	if pw1 == "" {
		fail("Fill in the new password")
		return
	}
	if pw1 != pw2 {
		fail("Passwords do not match")
		return
	}

	hash, err := models.HashPassword(pw1)
	if err != nil {
		fail(err.Error())
		return
	}
	u.PasswordHash = hash
	if err := s.db.Save(u).Error; err != nil {
		s.log.Error().Err(err).Uint("user", u.ID).Msg("password reset save failed")
		fail("Could not update the password")
		return
	}
	c.Redirect(http.StatusSeeOther, "/reset_password_complete/")
}

func (s *Server) resetComplete(c *gin.Context) {
	c.HTML(http.StatusOK, "password_reset_complete.tmpl", s.view(c, nil))
}
