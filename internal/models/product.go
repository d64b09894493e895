package models

// Category — where a product is meant to be placed.
type Category string

const (
	CategoryIndoor  Category = "Indoor"
	CategoryOutdoor Category = "Out Door"
)

// Categories lists the valid product categories for select inputs.
func Categories() []Category {
	return []Category{CategoryIndoor, CategoryOutdoor}
}

type Tag struct {
	Base
	Name string `gorm:"not null"`
}

// Product — таблица products. Staff-managed; price is kept in cents.
type Product struct {
	Base
	Name        string   `gorm:"not null"`
	PriceCents  int      `gorm:"not null"`
	Category    Category `gorm:"type:varchar(16)"`
	Description string   `gorm:"type:text"`
	Tags        []Tag    `gorm:"many2many:product_tags"`
}
