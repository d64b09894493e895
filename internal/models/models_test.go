package models_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm/internal/db"
	"crm/internal/models"
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

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := models.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2hunter2", hash)
	require.True(t, models.CheckPassword(hash, "hunter2hunter2"))
	require.False(t, models.CheckPassword(hash, "wrong"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range models.Statuses() {
		require.True(t, models.ValidStatus(s))
	}
	require.False(t, models.ValidStatus("Shipped"))
	require.False(t, models.ValidStatus(""))
}

func TestUserDeleteCascadesToCustomer(t *testing.T) {
	gdb := testDB(t)

	u := models.User{Username: "jane", Email: "jane@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, gdb.Create(&u).Error)
	cust := models.Customer{UserID: &u.ID, Name: "Jane"}
	require.NoError(t, gdb.Create(&cust).Error)

	require.NoError(t, gdb.Delete(&models.User{}, u.ID).Error)

	var cnt int64
	gdb.Model(&models.Customer{}).Where("id = ?", cust.ID).Count(&cnt)
	require.Zero(t, cnt, "customer should be deleted with its user")
}

func TestProductDeleteNullsOrderReference(t *testing.T) {
	gdb := testDB(t)

	cust := models.Customer{Name: "Walk-in"}
	require.NoError(t, gdb.Create(&cust).Error)
	prod := models.Product{Name: "Fern", PriceCents: 1999, Category: models.CategoryIndoor}
	require.NoError(t, gdb.Create(&prod).Error)
	order := models.Order{CustomerID: &cust.ID, ProductID: &prod.ID, Status: models.StatusPending}
	require.NoError(t, gdb.Create(&order).Error)

	require.NoError(t, gdb.Delete(&models.Product{}, prod.ID).Error)

	var got models.Order
	require.NoError(t, gdb.First(&got, order.ID).Error, "order row must survive")
	require.Nil(t, got.ProductID, "product reference should be nulled")
	require.NotNil(t, got.CustomerID)
	require.Equal(t, cust.ID, *got.CustomerID)
}

func TestCustomerDeleteNullsOrderReference(t *testing.T) {
	gdb := testDB(t)

	cust := models.Customer{Name: "Leaving"}
	require.NoError(t, gdb.Create(&cust).Error)
	order := models.Order{CustomerID: &cust.ID, Status: models.StatusDelivered}
	require.NoError(t, gdb.Create(&order).Error)

	require.NoError(t, gdb.Delete(&models.Customer{}, cust.ID).Error)

	var got models.Order
	require.NoError(t, gdb.First(&got, order.ID).Error)
	require.Nil(t, got.CustomerID)
}

func TestCustomerWithoutUserAccount(t *testing.T) {
	gdb := testDB(t)

	cust := models.Customer{Name: "Phone-in customer", Phone: "555-0101"}
	require.NoError(t, gdb.Create(&cust).Error)

	var got models.Customer
	require.NoError(t, gdb.First(&got, cust.ID).Error)
	require.Nil(t, got.UserID)
}
