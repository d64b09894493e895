package orders_test

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm/internal/db"
	"crm/internal/models"
	"crm/internal/orders"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// seedOrders creates one customer with a mixed bag of orders and returns
// the customer id.
func seedOrders(t *testing.T, gdb *gorm.DB) uint {
	t.Helper()
	cust := models.Customer{Name: "Acme"}
	require.NoError(t, gdb.Create(&cust).Error)

	mk := func(status models.Status, note string, created time.Time) {
		o := models.Order{CustomerID: &cust.ID, Status: status, Note: note}
		o.CreatedAt = created
		require.NoError(t, gdb.Create(&o).Error)
	}
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	mk(models.StatusPending, "urgent replant", now)
	mk(models.StatusPending, "gift wrap", now.AddDate(0, 0, -10))
	mk(models.StatusOutForDelivery, "leave at door", now)
	mk(models.StatusDelivered, "urgent delivery", now.AddDate(0, 0, -30))
	return cust.ID
}

func scoped(gdb *gorm.DB, customerID uint) *gorm.DB {
	return gdb.Model(&models.Order{}).Where("customer_id = ?", customerID)
}

func TestEmptyFilterIsIdentity(t *testing.T) {
	gdb := testDB(t)
	custID := seedOrders(t, gdb)

	f := orders.FilterFromQuery(url.Values{})
	var got []models.Order
	require.NoError(t, f.Scope(scoped(gdb, custID)).Find(&got).Error)
	require.Len(t, got, 4)
}

func TestStatusFilterExactSubset(t *testing.T) {
	gdb := testDB(t)
	custID := seedOrders(t, gdb)

	f := orders.FilterFromQuery(url.Values{"status": {"Pending"}})
	var got []models.Order
	require.NoError(t, f.Scope(scoped(gdb, custID)).Find(&got).Error)
	require.Len(t, got, 2)
	for _, o := range got {
		require.Equal(t, models.StatusPending, o.Status)
	}
}

func TestNoteSubstringMatch(t *testing.T) {
	gdb := testDB(t)
	custID := seedOrders(t, gdb)

	f := orders.FilterFromQuery(url.Values{"note": {"urgent"}})
	var got []models.Order
	require.NoError(t, f.Scope(scoped(gdb, custID)).Find(&got).Error)
	require.Len(t, got, 2)
}

func TestCreatedDateRange(t *testing.T) {
	gdb := testDB(t)
	custID := seedOrders(t, gdb)

	f := orders.FilterFromQuery(url.Values{"from": {"2026-08-15"}, "to": {"2026-08-20"}})
	var got []models.Order
	require.NoError(t, f.Scope(scoped(gdb, custID)).Find(&got).Error)
	require.Len(t, got, 2, "both bounds are inclusive")
}

func TestUnparseableDateIsIgnored(t *testing.T) {
	gdb := testDB(t)
	custID := seedOrders(t, gdb)

	f := orders.FilterFromQuery(url.Values{"from": {"not-a-date"}})
	var got []models.Order
	require.NoError(t, f.Scope(scoped(gdb, custID)).Find(&got).Error)
	require.Len(t, got, 4)
}

func TestFilterIsIdempotent(t *testing.T) {
	gdb := testDB(t)
	custID := seedOrders(t, gdb)

	f := orders.FilterFromQuery(url.Values{"status": {"Pending"}, "note": {"gift"}})

	var once, twice []models.Order
	require.NoError(t, f.Scope(scoped(gdb, custID)).Find(&once).Error)
	require.NoError(t, f.Scope(f.Scope(scoped(gdb, custID))).Find(&twice).Error)

	ids := func(list []models.Order) []uint {
		out := make([]uint, 0, len(list))
		for _, o := range list {
			out = append(out, o.ID)
		}
		return out
	}
	require.Equal(t, ids(once), ids(twice))
	require.Len(t, once, 1)
}

func TestFilterEchoesAppliedValues(t *testing.T) {
	f := orders.FilterFromQuery(url.Values{
		"status": {" Pending "},
		"note":   {"wrap"},
		"from":   {"2026-01-01"},
	})
	require.Equal(t, "Pending", f.Status)
	require.Equal(t, "wrap", f.Note)
	require.Equal(t, "2026-01-01", f.From)
	require.Empty(t, f.To)
}
