package repository

import (
	"context"

	"gorm.io/gorm"

	"canteen-system/internal/summary"
)

// RowFilter scopes the flat order-row query. StartDate == EndDate queries a
// single day. EmployeeID filters at the row source, before any grouping.
type RowFilter struct {
	StartDate   string
	EndDate     string
	EmployeeID  *int64
	OrderByName bool
}

// UserBalance is one row of the home-screen balance summary: lifetime totals
// per user with orders present.
type UserBalance struct {
	UserID     int64                 `gorm:"column:user_id" json:"user_id"`
	Name       string                `gorm:"column:name" json:"name"`
	EmployeeID int64                 `gorm:"column:employee_id" json:"employee_id"`
	Total      int64                 `gorm:"column:total" json:"total"`
	Paid       int64                 `gorm:"column:paid" json:"paid"`
	Balance    summary.BalanceStatus `gorm:"-" json:"balance"`
}

// ItemDayTotal is one row of the per-day item summary.
type ItemDayTotal struct {
	ItemID      int64  `gorm:"column:item_id" json:"item_id"`
	Name        string `gorm:"column:name" json:"name"`
	Total       int64  `gorm:"column:total" json:"total"`
	IsCompleted bool   `gorm:"column:is_completed" json:"is_completed"`
}

type orderRowScan struct {
	UserID      int64  `gorm:"column:user_id"`
	UserName    string `gorm:"column:user_name"`
	EmployeeID  int64  `gorm:"column:employee_id"`
	OrderID     int64  `gorm:"column:order_id"`
	OrderDate   string `gorm:"column:order_date"`
	OrderTime   string `gorm:"column:order_time"`
	TotalAmount int64  `gorm:"column:total_amount"`
	PaidAmount  int64  `gorm:"column:paid_amount"`
	ItemName    string `gorm:"column:item_name"`
	ItemAmount  int64  `gorm:"column:item_amount"`
	Quantity    int64  `gorm:"column:quantity"`
}

// SummaryRepository is the row source for the aggregation engine.
type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// OrderRows fetches the flat orders/users/order_items/items join for the
// filter, sorted by user then order (or by user name when requested).
// item_amount comes from the snapshotted order_items.unit_price, so the rows
// reflect prices at order time.
func (r *SummaryRepository) OrderRows(ctx context.Context, filter RowFilter) ([]summary.OrderRow, error) {
	query := r.db.WithContext(ctx).Table("orders o").
		Select(`u.id AS user_id,
			u.name AS user_name,
			u.employee_id AS employee_id,
			o.id AS order_id,
			o.order_date,
			o.order_time,
			o.total_amount,
			o.paid_amount,
			i.name AS item_name,
			oi.unit_price AS item_amount,
			oi.quantity`).
		Joins("JOIN users u ON u.id = o.user_id").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN items i ON i.id = oi.item_id").
		Where("o.order_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)

	if filter.EmployeeID != nil {
		query = query.Where("u.employee_id = ?", *filter.EmployeeID)
	}

	if filter.OrderByName {
		query = query.Order("u.name, u.id, o.id")
	} else {
		query = query.Order("u.id, o.id")
	}

	var scanned []orderRowScan
	if err := query.Scan(&scanned).Error; err != nil {
		return nil, err
	}

	rows := make([]summary.OrderRow, len(scanned))
	for i, s := range scanned {
		rows[i] = summary.OrderRow{
			UserID:      s.UserID,
			UserName:    s.UserName,
			EmployeeID:  s.EmployeeID,
			OrderID:     s.OrderID,
			OrderDate:   s.OrderDate,
			OrderTime:   s.OrderTime,
			TotalAmount: s.TotalAmount,
			PaidAmount:  s.PaidAmount,
			ItemName:    s.ItemName,
			ItemAmount:  s.ItemAmount,
			Quantity:    s.Quantity,
		}
	}
	return rows, nil
}

// UserBalances computes per-user lifetime totals over all orders. Users with
// no orders are not emitted (inner join, same as the home screen query).
func (r *SummaryRepository) UserBalances(ctx context.Context, employeeID *int64) ([]UserBalance, error) {
	query := r.db.WithContext(ctx).Table("users u").
		Select(`u.id AS user_id,
			u.name AS name,
			u.employee_id AS employee_id,
			COALESCE(SUM(o.total_amount), 0) AS total,
			COALESCE(SUM(o.paid_amount), 0) AS paid`).
		Joins("JOIN orders o ON u.id = o.user_id")

	if employeeID != nil {
		query = query.Where("u.employee_id = ?", *employeeID)
	}

	var balances []UserBalance
	err := query.Group("u.id, u.name, u.employee_id").
		Order("u.name").
		Scan(&balances).Error
	if err != nil {
		return nil, err
	}

	for i := range balances {
		balances[i].Balance = summary.Classify(balances[i].Total, balances[i].Paid)
	}
	return balances, nil
}

// ItemTotals sums ordered quantities per item for one day, with the
// completed-for-that-date flag.
func (r *SummaryRepository) ItemTotals(ctx context.Context, date string) ([]ItemDayTotal, error) {
	var totals []ItemDayTotal
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select(`i.id AS item_id,
			i.name AS name,
			SUM(oi.quantity) AS total,
			CASE WHEN i.completed_date = ? THEN 1 ELSE 0 END AS is_completed`, date).
		Joins("JOIN orders o ON oi.order_id = o.id").
		Joins("JOIN items i ON oi.item_id = i.id").
		Where("o.order_date = ?", date).
		Group("i.id, i.name, i.completed_date").
		Order("i.name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
