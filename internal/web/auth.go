package web

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crm/internal/models"
)

func (s *Server) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", s.view(c, nil))
}

// register creates the login account and its linked customer record
// together, then sends the new user to the login page.
func (s *Server) register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	pw1 := c.PostForm("password1")
	pw2 := c.PostForm("password2")

	form := ViewData{"Username": username, "Email": email}
	fail := func(msg string) {
		c.HTML(http.StatusBadRequest, "register.tmpl", s.view(c, ViewData{"Error": msg, "Form": form}))
	}

	if username == "" || email == "" || pw1 == "" {
		fail("Fill all fields")
		return
	}
	if pw1 != pw2 {
		fail("Passwords do not match")
		return
	}
	var cnt int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&cnt)
	if cnt > 0 {
		fail("Username taken")
		return
	}
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&cnt)
	if cnt > 0 {
		fail("Email already registered")
		return
	}

	hash, err := models.HashPassword(pw1)
	if err != nil {
		fail(err.Error())
		return
	}
	u := models.User{Username: username, Email: email, PasswordHash: hash, Role: models.RoleCustomer}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		cust := models.Customer{UserID: &u.ID, Name: username, Email: email}
		return tx.Create(&cust).Error
	})
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("register failed")
		fail("Could not create the account")
		return
	}

	setFlash(c, "Account was created for "+username)
	c.Redirect(http.StatusSeeOther, "/login/")
}

func (s *Server) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", s.view(c, nil))
}

// login re-renders with an inline message on bad credentials; the password
// field is never echoed back.
func (s *Server) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	pw := c.PostForm("password")

	var u models.User
	err := s.db.Where("username = ?", username).First(&u).Error
	if err != nil || !models.CheckPassword(u.PasswordHash, pw) {
		c.HTML(http.StatusUnauthorized, "login.tmpl", s.view(c, ViewData{
			"Error":    "Username or Password is incorrect",
			"Username": username,
		}))
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, u.ID)
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, "/login/")
}
