package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"canteen-system/internal/database/models"
)

var (
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// OrderLine is one requested (item, quantity) pairing; the unit price is
// snapshotted from the item inside the save transaction.
type OrderLine struct {
	ItemID   int64
	Quantity int64
}

// OrderWithUser is the order-taking screen's listing row.
type OrderWithUser struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	OrderDate   string `json:"order_date"`
	OrderTime   string `json:"order_time"`
	TotalAmount int64  `json:"total_amount"`
	PaidAmount  int64  `json:"paid_amount"`
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create stores the order and its line items in one transaction. Each line
// snapshots the item's current price, and total_amount is the sum of
// unit_price * quantity over the snapshotted lines.
func (r *OrderRepository) Create(ctx context.Context, userID int64, orderDate, orderTime string, paidAmount int64, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var order *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translateNotFound(err)
		}

		orderItems, total, err := snapshotLines(tx, lines)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:      userID,
			OrderDate:   orderDate,
			OrderTime:   orderTime,
			TotalAmount: total,
			PaidAmount:  paidAmount,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}
		order.OrderItems = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ReplaceItems edits an order by deleting all its line items and reinserting
// the new set with fresh price snapshots, recomputing the stored total.
func (r *OrderRepository) ReplaceItems(ctx context.Context, orderID int64, paidAmount int64, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return translateNotFound(err)
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		orderItems, total, err := snapshotLines(tx, lines)
		if err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = orderID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		order.TotalAmount = total
		order.PaidAmount = paidAmount
		order.OrderItems = orderItems
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes the line items then the order row.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("OrderItems.Item").
		First(&order, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByDate(ctx context.Context, date string) ([]OrderWithUser, error) {
	var rows []OrderWithUser
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("orders.id, orders.user_id, users.name AS user_name, orders.order_date, orders.order_time, orders.total_amount, orders.paid_amount").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.order_date = ?", date).
		Order("orders.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func snapshotLines(tx *gorm.DB, lines []OrderLine) ([]models.OrderItem, int64, error) {
	var total int64
	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, ErrInvalidQuantity
		}
		var item models.Item
		if err := tx.First(&item, line.ItemID).Error; err != nil {
			return nil, 0, translateNotFound(err)
		}
		total += item.Amount * line.Quantity
		orderItems = append(orderItems, models.OrderItem{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Amount,
		})
	}
	return orderItems, total, nil
}
