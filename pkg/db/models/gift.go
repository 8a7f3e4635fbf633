package models

// Gift is a wishlist entry shared by both partners. Rows are only ever
// created, toggled, or deleted.
type Gift struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;type:text;not null"`
	Price    string `gorm:"column:price;type:text;not null;default:''"`
	Image    string `gorm:"column:image;type:text;not null;default:''"`
	Category string `gorm:"column:category;type:text;not null;default:''"`
	Done     bool   `gorm:"column:done;not null;default:false"`
}

// TableName keeps the table name the front end and migrations agree on.
func (Gift) TableName() string { return "wishlist" }
