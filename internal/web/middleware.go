package web

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"crm/internal/models"
)

const (
	sessionUserKey = "user_id"
	ctxUserKey     = "currentUser"
)

// sessionUser resolves the signed-in user from the session cookie.
func (s *Server) sessionUser(c *gin.Context) (*models.User, bool) {
	sess := sessions.Default(c)
	raw := sess.Get(sessionUserKey)
	if raw == nil {
		return nil, false
	}
	id, ok := raw.(uint)
	if !ok {
		return nil, false
	}
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, false
	}
	return &u, true
}

// roleHome is where a signed-in user lands when a page is not for them.
func roleHome(role models.Role) string {
	if role == models.RoleAdmin {
		return "/"
	}
	return "/user/"
}

// requireAnonymous bounces signed-in users off login/register/reset pages.
func (s *Server) requireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := s.sessionUser(c); ok {
			c.Redirect(http.StatusSeeOther, roleHome(u.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireLogin sends unauthenticated requests to the login page and stashes
// the user for the handlers behind it.
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := s.sessionUser(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login/")
			c.Abort()
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// requireRoles lets only the named roles through. Everyone else is silently
// redirected to their own landing page; guards never surface an error and
// never mutate data.
func (s *Server) requireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusSeeOther, roleHome(u.Role))
		c.Abort()
	}
}

// adminOnly guards the dashboard. A customer lands on their own page here
// instead of the generic redirect, which would point straight back at "/".
func (s *Server) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := currentUser(c); u.Role != models.RoleAdmin {
			c.Redirect(http.StatusSeeOther, "/user/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser returns the user placed in the context by requireLogin.
func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(ctxUserKey)
	return u.(*models.User)
}
