package orders

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"crm/internal/models"
)

// RowCount is the fixed number of entry slots presented per submission.
const RowCount = 5

// RowError holds the per-field validation messages for one slot.
type RowError struct {
	Product string
	Status  string
}

// Row is one (product, status) slot. Submitted values are kept raw so the
// form can be redisplayed exactly as the user filled it.
type Row struct {
	ProductID string
	Status    string
	Errors    RowError

	productID uint
	blank     bool
}

// Blank reports whether the row was left entirely empty.
func (r Row) Blank() bool { return r.blank }

// FormSet binds up to RowCount new orders to one target customer. Blank
// rows are skipped silently; all filled rows are saved in one transaction
// or not at all.
type FormSet struct {
	Customer models.Customer
	Rows     [RowCount]Row
}

func NewFormSet(customer models.Customer) *FormSet {
	return &FormSet{Customer: customer}
}

// field names follow the "orders-N-product" / "orders-N-status" convention.
func fieldName(i int, field string) string {
	return fmt.Sprintf("orders-%d-%s", i, field)
}

// Bind reads every slot's fields from a submitted form.
func (fs *FormSet) Bind(form url.Values) {
	for i := range fs.Rows {
		fs.Rows[i].ProductID = strings.TrimSpace(form.Get(fieldName(i, "product")))
		fs.Rows[i].Status = strings.TrimSpace(form.Get(fieldName(i, "status")))
	}
}

// Validate checks each row independently: the product must reference an
// existing row and the status, when given, must be a known delivery state.
// Fully blank rows produce no errors. Returns true when every filled row
// passed.
func (fs *FormSet) Validate(gdb *gorm.DB) bool {
	ok := true
	for i := range fs.Rows {
		row := &fs.Rows[i]
		row.Errors = RowError{}
		row.blank = row.ProductID == "" && row.Status == ""
		if row.blank {
			continue
		}

		if row.ProductID == "" {
			row.Errors.Product = "This field is required."
			ok = false
		} else if id, err := strconv.ParseUint(row.ProductID, 10, 32); err != nil {
			row.Errors.Product = "Select a valid product."
			ok = false
		} else {
			var cnt int64
			gdb.Model(&models.Product{}).Where("id = ?", id).Count(&cnt)
			if cnt == 0 {
				row.Errors.Product = "Select a valid product."
				ok = false
			} else {
				row.productID = uint(id)
			}
		}

		if row.Status != "" && !models.ValidStatus(models.Status(row.Status)) {
			row.Errors.Status = "Select a valid status."
			ok = false
		}
	}
	return ok
}

// HasErrors reports whether any row carries a validation message.
func (fs *FormSet) HasErrors() bool {
	for i := range fs.Rows {
		if fs.Rows[i].Errors != (RowError{}) {
			return true
		}
	}
	return false
}

// Save persists every filled row for the bound customer in one transaction.
// Call only after Validate reported success; a row with no status defaults
// to Pending.
func (fs *FormSet) Save(gdb *gorm.DB) error {
	customerID := fs.Customer.ID
	return gdb.Transaction(func(tx *gorm.DB) error {
		for i := range fs.Rows {
			row := &fs.Rows[i]
			if row.blank {
				continue
			}
			status := models.Status(row.Status)
			if status == "" {
				status = models.StatusPending
			}
			productID := row.productID
			order := models.Order{
				CustomerID: &customerID,
				ProductID:  &productID,
				Status:     status,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
