package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"crm/internal/models"
	"crm/internal/orders"
)

// createOrderForm presents the five empty (product, status) slots for one
// customer.
func (s *Server) createOrderForm(c *gin.Context) {
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
	s.renderFormSet(c, http.StatusOK, orders.NewFormSet(cust))
}

// createOrder validates and saves the submitted slots as one unit: any bad
// filled row means nothing is persisted and the form comes back with
// per-row messages.
func (s *Server) createOrder(c *gin.Context) {
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

	fs := orders.NewFormSet(cust)
	if err := c.Request.ParseForm(); err != nil {
		s.renderFormSet(c, http.StatusBadRequest, fs)
		return
	}
	fs.Bind(c.Request.PostForm)
	if !fs.Validate(s.db) {
		s.renderFormSet(c, http.StatusBadRequest, fs)
		return
	}
	if err := fs.Save(s.db); err != nil {
		s.log.Error().Err(err).Uint("customer", cust.ID).Msg("formset save failed")
		s.renderFormSet(c, http.StatusInternalServerError, fs)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) renderFormSet(c *gin.Context, code int, fs *orders.FormSet) {
	var products []models.Product
	s.db.Order("name").Find(&products)
	c.HTML(code, "order_formset.tmpl", s.view(c, ViewData{
		"FormSet":  fs,
		"Products": products,
		"Statuses": models.Statuses(),
	}))
}

// orderForm is the single-order edit form state.
type orderForm struct {
	CustomerID string
	ProductID  string
	Status     string
	Note       string
	Errors     map[string]string
}

func (s *Server) updateOrderForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		s.notFound(c)
		return
	}

	form := orderForm{Status: string(order.Status), Note: order.Note}
	if order.CustomerID != nil {
		form.CustomerID = strconv.FormatUint(uint64(*order.CustomerID), 10)
	}
	if order.ProductID != nil {
		form.ProductID = strconv.FormatUint(uint64(*order.ProductID), 10)
	}
	s.renderOrderForm(c, http.StatusOK, order, form)
}

// updateOrder applies a manual edit; this is the only way an order changes
// status.
func (s *Server) updateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		s.notFound(c)
		return
	}

	form := orderForm{
		CustomerID: strings.TrimSpace(c.PostForm("customer")),
		ProductID:  strings.TrimSpace(c.PostForm("product")),
		Status:     strings.TrimSpace(c.PostForm("status")),
		Note:       strings.TrimSpace(c.PostForm("note")),
		Errors:     map[string]string{},
	}

	customerID := s.lookupRef(&models.Customer{}, form.CustomerID, "customer", form.Errors)
	productID := s.lookupRef(&models.Product{}, form.ProductID, "product", form.Errors)
	if !models.ValidStatus(models.Status(form.Status)) {
		form.Errors["status"] = "Select a valid status."
	}
	if len(form.Errors) > 0 {
		s.renderOrderForm(c, http.StatusBadRequest, order, form)
		return
	}

	order.CustomerID = customerID
	order.ProductID = productID
	order.Status = models.Status(form.Status)
	order.Note = form.Note
	if err := s.db.Save(&order).Error; err != nil {
		s.log.Error().Err(err).Uint("order", order.ID).Msg("order update failed")
		form.Errors["form"] = "Could not save the order"
		s.renderOrderForm(c, http.StatusInternalServerError, order, form)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// lookupRef resolves an optional FK field: blank stays nil, anything else
// must name an existing row.
func (s *Server) lookupRef(model any, raw, field string, errs map[string]string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errs[field] = "Select a valid choice."
		return nil
	}
	var cnt int64
	s.db.Model(model).Where("id = ?", id).Count(&cnt)
	if cnt == 0 {
		errs[field] = "Select a valid choice."
		return nil
	}
	out := uint(id)
	return &out
}

func (s *Server) renderOrderForm(c *gin.Context, code int, order models.Order, form orderForm) {
	var customers []models.Customer
	s.db.Order("name").Find(&customers)
	var products []models.Product
	s.db.Order("name").Find(&products)
	c.HTML(code, "order_form.tmpl", s.view(c, ViewData{
		"Order":     order,
		"Form":      form,
		"Customers": customers,
		"Products":  products,
		"Statuses":  models.Statuses(),
	}))
}

// deleteOrderConfirm renders the confirmation page; nothing is deleted on GET.
func (s *Server) deleteOrderConfirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	var order models.Order
	if err := s.db.Preload("Product").Preload("Customer").First(&order, id).Error; err != nil {
		s.notFound(c)
		return
	}
	c.HTML(http.StatusOK, "delete.tmpl", s.view(c, ViewData{"Order": order}))
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.notFound(c)
		return
	}
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		s.notFound(c)
		return
	}
	if err := s.db.Delete(&order).Error; err != nil {
		s.log.Error().Err(err).Uint("order", order.ID).Msg("order delete failed")
	}
	c.Redirect(http.StatusSeeOther, "/")
}
