// Package web wires every route to its guard and handler. Handlers follow
// one shape: guard, load by primary key (404 on a miss), run the filter or
// form logic, then render a template or redirect.
package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"crm/internal/config"
	"crm/internal/mail"
	"crm/internal/metrics"
	"crm/internal/models"
)

// Server carries the shared handler dependencies.
type Server struct {
	db     *gorm.DB
	cfg    config.Config
	log    zerolog.Logger
	mailer mail.Mailer
}

// NewRouter builds the full route table with its access guards.
func NewRouter(cfg config.Config, gdb *gorm.DB, log zerolog.Logger, mailer mail.Mailer) *gin.Engine {
	s := &Server{db: gdb, cfg: cfg, log: log, mailer: mailer}

	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("crm_session", store))

	r.SetFuncMap(template.FuncMap{
		"price": func(cents int) string { return fmt.Sprintf("%.2f", float64(cents)/100.0) },
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", s.health)
	r.GET("/metrics", metrics.Handler())

	// anonymous-only pages bounce signed-in users to their landing page
	anon := s.requireAnonymous()
	r.GET("/register/", anon, s.registerForm)
	r.POST("/register/", anon, s.register)
	r.GET("/login/", anon, s.loginForm)
	r.POST("/login/", anon, s.login)
	r.GET("/logout/", s.logout)

	r.GET("/reset_password/", anon, s.resetRequestForm)
	r.POST("/reset_password/", anon, s.resetRequest)
	r.GET("/reset_password_sent/", anon, s.resetSent)
	r.GET("/reset/:token", anon, s.resetConfirmForm)
	r.POST("/reset/:token", anon, s.resetConfirm)
	r.GET("/reset_password_complete/", anon, s.resetComplete)

	login := s.requireLogin()
	admin := s.requireRoles(models.RoleAdmin)
	customer := s.requireRoles(models.RoleCustomer)

	r.GET("/", login, s.adminOnly(), s.home)

	r.GET("/user/", login, customer, s.userPage)
	r.GET("/account/", login, customer, s.accountForm)
	r.POST("/account/", login, customer, s.accountSave)

	r.GET("/products/", login, admin, s.products)
	r.GET("/customers/:id/", login, admin, s.customerDetail)
	r.GET("/create_order/:id/", login, admin, s.createOrderForm)
	r.POST("/create_order/:id/", login, admin, s.createOrder)
	r.GET("/update_order/:id/", login, admin, s.updateOrderForm)
	r.POST("/update_order/:id/", login, admin, s.updateOrder)
	r.GET("/delete_order/:id/", login, admin, s.deleteOrderConfirm)
	r.POST("/delete_order/:id/", login, admin, s.deleteOrder)

	return r
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
