package summary

import "fmt"

// Status classifies the balance of an order or of a user's aggregated orders.
type Status string

const (
	StatusSettled Status = "settled"
	StatusPending Status = "pending"
	StatusAdvance Status = "advance"
)

// BalanceStatus pairs a status with its magnitude. Amount is always
// non-negative: the amount still owed for pending, the overpayment for
// advance, zero for settled.
type BalanceStatus struct {
	Status Status `json:"status"`
	Amount int64  `json:"amount"`
}

// Classify derives the tri-state status from paid - total.
func Classify(total, paid int64) BalanceStatus {
	balance := paid - total
	switch {
	case balance < 0:
		return BalanceStatus{Status: StatusPending, Amount: -balance}
	case balance > 0:
		return BalanceStatus{Status: StatusAdvance, Amount: balance}
	default:
		return BalanceStatus{Status: StatusSettled}
	}
}

// Label renders the status the way the order screens display it.
func (b BalanceStatus) Label() string {
	switch b.Status {
	case StatusPending:
		return fmt.Sprintf("Remaining: Rs %d", b.Amount)
	case StatusAdvance:
		return fmt.Sprintf("Advance: Rs %d", b.Amount)
	default:
		return "Paid in full"
	}
}

// OrderRow is one flat row of the orders/users/order_items/items join.
// Rows come pre-filtered by date and pre-sorted by user then order; grouping
// is by key equality, so ordering only affects output order, not correctness.
type OrderRow struct {
	UserID      int64
	UserName    string
	EmployeeID  int64
	OrderID     int64
	OrderDate   string
	OrderTime   string
	TotalAmount int64
	PaidAmount  int64
	ItemName    string
	ItemAmount  int64
	Quantity    int64
}

// Validate reports the first contract violation in the row. A malformed row
// is a programming error in the row source, not a recoverable condition.
func (r OrderRow) Validate() error {
	switch {
	case r.UserID <= 0:
		return fmt.Errorf("invalid user id %d", r.UserID)
	case r.UserName == "":
		return fmt.Errorf("user %d: empty user name", r.UserID)
	case r.EmployeeID <= 0:
		return fmt.Errorf("user %d: invalid employee id %d", r.UserID, r.EmployeeID)
	case r.OrderID <= 0:
		return fmt.Errorf("user %d: invalid order id %d", r.UserID, r.OrderID)
	case r.TotalAmount < 0 || r.PaidAmount < 0:
		return fmt.Errorf("order %d: negative amount", r.OrderID)
	case r.ItemName == "":
		return fmt.Errorf("order %d: empty item name", r.OrderID)
	case r.ItemAmount < 0:
		return fmt.Errorf("order %d: negative item amount", r.OrderID)
	case r.Quantity <= 0:
		return fmt.Errorf("order %d: invalid quantity %d", r.OrderID, r.Quantity)
	}
	return nil
}

// LineEntry is one item line inside an order summary. Amount is the unit
// price snapshotted when the order was placed, not the item's current price.
type LineEntry struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
	Amount   int64  `json:"amount"`
}

type OrderSummary struct {
	OrderID     int64         `json:"order_id"`
	OrderDate   string        `json:"order_date"`
	OrderTime   string        `json:"order_time"`
	TotalAmount int64         `json:"total_amount"`
	PaidAmount  int64         `json:"paid_amount"`
	Items       []LineEntry   `json:"items"`
	Balance     BalanceStatus `json:"balance"`
}

type UserDaySummary struct {
	UserID      int64           `json:"user_id"`
	UserName    string          `json:"user_name"`
	EmployeeID  int64           `json:"employee_id"`
	Orders      []*OrderSummary `json:"orders"`
	TotalAmount int64           `json:"total_amount"`
	TotalPaid   int64           `json:"total_paid"`
	Balance     BalanceStatus   `json:"balance"`
}

// Aggregate groups flat join rows into one UserDaySummary per distinct user,
// preserving first-seen order of users and, within a user, of orders.
//
// An order contributes its total/paid amounts to the owning user exactly once,
// on the row where it is first seen; every row appends one item line to its
// order. The transformation is pure: same rows in, same summaries out.
func Aggregate(rows []OrderRow) ([]*UserDaySummary, error) {
	byUser := make(map[int64]*UserDaySummary)
	users := make([]*UserDaySummary, 0)

	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		user, ok := byUser[row.UserID]
		if !ok {
			user = &UserDaySummary{
				UserID:     row.UserID,
				UserName:   row.UserName,
				EmployeeID: row.EmployeeID,
				Orders:     []*OrderSummary{},
			}
			byUser[row.UserID] = user
			users = append(users, user)
		}

		var order *OrderSummary
		for _, o := range user.Orders {
			if o.OrderID == row.OrderID {
				order = o
				break
			}
		}
		if order == nil {
			order = &OrderSummary{
				OrderID:     row.OrderID,
				OrderDate:   row.OrderDate,
				OrderTime:   row.OrderTime,
				TotalAmount: row.TotalAmount,
				PaidAmount:  row.PaidAmount,
				Items:       []LineEntry{},
			}
			user.Orders = append(user.Orders, order)

			// Order-level amounts are added once per distinct order,
			// not once per line-item row.
			user.TotalAmount += row.TotalAmount
			user.TotalPaid += row.PaidAmount
		}

		order.Items = append(order.Items, LineEntry{
			ItemName: row.ItemName,
			Quantity: row.Quantity,
			Amount:   row.ItemAmount,
		})
	}

	for _, user := range users {
		user.Balance = Classify(user.TotalAmount, user.TotalPaid)
		for _, order := range user.Orders {
			order.Balance = Classify(order.TotalAmount, order.PaidAmount)
		}
	}

	return users, nil
}
