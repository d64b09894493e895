package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm/internal/models"
	"crm/internal/orders"
)

// orderCounts is the little stat block shown on the dashboard and the
// customer's own page.
type orderCounts struct {
	Total     int64
	Pending   int64
	Delivered int64
}

func (s *Server) orderCounts(where string, args ...any) orderCounts {
	count := func(out *int64, status models.Status) {
		q := s.db.Model(&models.Order{})
		if where != "" {
			q = q.Where(where, args...)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		q.Count(out)
	}
	var oc orderCounts
	count(&oc.Total, "")
	count(&oc.Pending, models.StatusPending)
	count(&oc.Delivered, models.StatusDelivered)
	return oc
}

// home is the staff dashboard: all orders, all customers, totals.
func (s *Server) home(c *gin.Context) {
	var all []models.Order
	s.db.Preload("Customer").Preload("Product").Order("id desc").Find(&all)
	var customers []models.Customer
	s.db.Order("id").Find(&customers)

	c.HTML(http.StatusOK, "dashboard.tmpl", s.view(c, ViewData{
		"Orders":    all,
		"Customers": customers,
		"Counts":    s.orderCounts(""),
	}))
}

// userPage shows a customer their own orders only.
func (s *Server) userPage(c *gin.Context) {
	u := currentUser(c)
	var cust models.Customer
	if err := s.db.Where("user_id = ?", u.ID).First(&cust).Error; err != nil {
		s.notFound(c)
		return
	}

	var own []models.Order
	s.db.Preload("Product").Where("customer_id = ?", cust.ID).Order("id desc").Find(&own)

	c.HTML(http.StatusOK, "user.tmpl", s.view(c, ViewData{
		"Customer": cust,
		"Orders":   own,
		"Counts":   s.orderCounts("customer_id = ?", cust.ID),
	}))
}

func (s *Server) accountForm(c *gin.Context) {
	u := currentUser(c)
	var cust models.Customer
	if err := s.db.Where("user_id = ?", u.ID).First(&cust).Error; err != nil {
		s.notFound(c)
		return
	}
	c.HTML(http.StatusOK, "account_settings.tmpl", s.view(c, ViewData{"Customer": cust}))
}

// accountSave updates the customer's own profile, picture included.
func (s *Server) accountSave(c *gin.Context) {
	u := currentUser(c)
	var cust models.Customer
	if err := s.db.Where("user_id = ?", u.ID).First(&cust).Error; err != nil {
		s.notFound(c)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.HTML(http.StatusBadRequest, "account_settings.tmpl", s.view(c, ViewData{
			"Customer": cust, "Error": "Name is required",
		}))
		return
	}
	cust.Name = name
	cust.Phone = strings.TrimSpace(c.PostForm("phone"))
	cust.Email = strings.TrimSpace(c.PostForm("email"))

	if pic, err := s.saveImage(c, "profile_pic"); err != nil {
		c.HTML(http.StatusBadRequest, "account_settings.tmpl", s.view(c, ViewData{
			"Customer": cust, "Error": err.Error(),
		}))
		return
	} else if pic != "" {
		cust.ProfilePic = pic
	}

	if err := s.db.Save(&cust).Error; err != nil {
		s.log.Error().Err(err).Uint("customer", cust.ID).Msg("account save failed")
		c.HTML(http.StatusInternalServerError, "account_settings.tmpl", s.view(c, ViewData{
			"Customer": cust, "Error": "Could not save changes",
		}))
		return
	}
	c.HTML(http.StatusOK, "account_settings.tmpl", s.view(c, ViewData{
		"Customer": cust, "Saved": true,
	}))
}

func (s *Server) products(c *gin.Context) {
	var items []models.Product
	s.db.Preload("Tags").Order("id desc").Find(&items)
	c.HTML(http.StatusOK, "products.tmpl", s.view(c, ViewData{"Products": items}))
}

// customerDetail shows one customer and their orders, narrowed by the
// order filter; the applied values are echoed back for redisplay.
func (s *Server) customerDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	var cust models.Customer
	if err := s.db.First(&cust, id).Error; err != nil {
		s.notFound(c)
		return
	}

	var total int64
	s.db.Model(&models.Order{}).Where("customer_id = ?", cust.ID).Count(&total)

	filter := orders.FilterFromQuery(c.Request.URL.Query())
	var list []models.Order
	filter.Scope(s.db.Preload("Product").Where("customer_id = ?", cust.ID)).
		Order("id desc").Find(&list)

	c.HTML(http.StatusOK, "customers.tmpl", s.view(c, ViewData{
		"Customer":    cust,
		"Orders":      list,
		"TotalOrders": total,
		"Filter":      filter,
		"Statuses":    models.Statuses(),
	}))
}
