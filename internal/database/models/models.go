package models

import "time"

type User struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	EmployeeID int64      `gorm:"uniqueIndex;not null" json:"employee_id"`
	CreatedAt  *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Item struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Amount int64  `gorm:"not null" json:"amount"`
	// CompletedDate marks a recurring item fulfilled for that one date.
	CompletedDate *string    `gorm:"type:varchar(10)" json:"completed_date,omitempty"`
	CreatedAt     *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Order struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"index;not null" json:"user_id"`
	OrderDate string `gorm:"type:varchar(10);index;not null" json:"order_date"`
	OrderTime string `gorm:"type:varchar(8);not null" json:"order_time"`
	// TotalAmount is written once at order save time and never recomputed
	// from current item prices.
	TotalAmount int64      `gorm:"not null" json:"total_amount"`
	PaidAmount  int64      `gorm:"not null" json:"paid_amount"`
	CreatedAt   *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

type OrderItem struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64 `gorm:"index;not null" json:"order_id"`
	ItemID   int64 `gorm:"not null" json:"item_id"`
	Quantity int64 `gorm:"not null" json:"quantity"`
	// UnitPrice snapshots the item price at order time so later price edits
	// do not rewrite order history.
	UnitPrice int64      `gorm:"not null" json:"unit_price"`
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

type Account struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"created_at"`
}
