package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(userID int64, name string, empID, orderID int64, total, paid int64, item string, amount, qty int64) OrderRow {
	return OrderRow{
		UserID:      userID,
		UserName:    name,
		EmployeeID:  empID,
		OrderID:     orderID,
		OrderDate:   "2025-07-01",
		OrderTime:   "09:30:00",
		TotalAmount: total,
		PaidAmount:  paid,
		ItemName:    item,
		ItemAmount:  amount,
		Quantity:    qty,
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		total  int64
		paid   int64
		status Status
		amount int64
	}{
		{"settled", 500, 500, StatusSettled, 0},
		{"pending", 300, 200, StatusPending, 100},
		{"advance", 300, 350, StatusAdvance, 50},
		{"zero order", 0, 0, StatusSettled, 0},
		{"nothing paid", 250, 0, StatusPending, 250},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.total, tc.paid)
			assert.Equal(t, tc.status, got.Status)
			assert.Equal(t, tc.amount, got.Amount)
			assert.GreaterOrEqual(t, got.Amount, int64(0))
		})
	}
}

func TestBalanceStatusLabel(t *testing.T) {
	assert.Equal(t, "Paid in full", Classify(100, 100).Label())
	assert.Equal(t, "Remaining: Rs 100", Classify(300, 200).Label())
	assert.Equal(t, "Advance: Rs 50", Classify(300, 350).Label())
}

// Scenario A: one settled order with two line items.
func TestAggregateSingleSettledOrder(t *testing.T) {
	rows := []OrderRow{
		row(1, "Asif", 101, 1, 500, 500, "Tea", 50, 2),
		row(1, "Asif", 101, 1, 500, 500, "Samosa", 400, 1),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, users, 1)

	user := users[0]
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "Asif", user.UserName)
	assert.Equal(t, int64(101), user.EmployeeID)
	require.Len(t, user.Orders, 1)
	assert.Equal(t, StatusSettled, user.Balance.Status)

	order := user.Orders[0]
	assert.Equal(t, StatusSettled, order.Balance.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, LineEntry{ItemName: "Tea", Quantity: 2, Amount: 50}, order.Items[0])
	assert.Equal(t, LineEntry{ItemName: "Samosa", Quantity: 1, Amount: 400}, order.Items[1])
}

// Scenario B: two orders for one user, aggregate pending even though one
// order is settled.
func TestAggregateMixedOrdersForOneUser(t *testing.T) {
	rows := []OrderRow{
		row(1, "Asif", 101, 1, 300, 200, "Lunch", 300, 1),
		row(1, "Asif", 101, 2, 200, 200, "Tea", 50, 4),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, users, 1)

	user := users[0]
	assert.Equal(t, int64(500), user.TotalAmount)
	assert.Equal(t, int64(400), user.TotalPaid)
	assert.Equal(t, BalanceStatus{Status: StatusPending, Amount: 100}, user.Balance)

	require.Len(t, user.Orders, 2)
	assert.Equal(t, BalanceStatus{Status: StatusPending, Amount: 100}, user.Orders[0].Balance)
	assert.Equal(t, BalanceStatus{Status: StatusSettled}, user.Orders[1].Balance)
}

// Scenario C: overpayment reported as advance at both levels.
func TestAggregateAdvance(t *testing.T) {
	rows := []OrderRow{
		row(1, "Asif", 101, 1, 300, 350, "Lunch", 300, 1),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, users, 1)

	want := BalanceStatus{Status: StatusAdvance, Amount: 50}
	assert.Equal(t, want, users[0].Balance)
	assert.Equal(t, want, users[0].Orders[0].Balance)
}

// Scenario D: no rows, no users.
func TestAggregateEmptyInput(t *testing.T) {
	users, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = Aggregate([]OrderRow{})
	require.NoError(t, err)
	assert.Empty(t, users)
}

// Scenario E: two users stay isolated, no cross-user leakage of totals.
func TestAggregateTwoUsersIsolated(t *testing.T) {
	rows := []OrderRow{
		row(1, "Asif", 101, 1, 300, 300, "Lunch", 300, 1),
		row(2, "Bilal", 102, 2, 150, 100, "Tea", 50, 3),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(300), users[0].TotalAmount)
	assert.Equal(t, int64(300), users[0].TotalPaid)
	assert.Equal(t, StatusSettled, users[0].Balance.Status)

	assert.Equal(t, int64(150), users[1].TotalAmount)
	assert.Equal(t, int64(100), users[1].TotalPaid)
	assert.Equal(t, BalanceStatus{Status: StatusPending, Amount: 50}, users[1].Balance)
}

// An order with N line items must add its totals to the user exactly once.
func TestAggregateSumOnceInvariant(t *testing.T) {
	rows := []OrderRow{
		row(1, "Asif", 101, 1, 900, 900, "Tea", 50, 2),
		row(1, "Asif", 101, 1, 900, 900, "Samosa", 400, 1),
		row(1, "Asif", 101, 1, 900, 900, "Biryani", 400, 1),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, users, 1)

	assert.Equal(t, int64(900), users[0].TotalAmount)
	assert.Equal(t, int64(900), users[0].TotalPaid)
	require.Len(t, users[0].Orders, 1)
	assert.Len(t, users[0].Orders[0].Items, 3)
}

func TestAggregateGroupingCounts(t *testing.T) {
	rows := []OrderRow{
		row(3, "Cameron", 103, 7, 100, 100, "Tea", 50, 2),
		row(1, "Asif", 101, 1, 300, 300, "Lunch", 300, 1),
		row(3, "Cameron", 103, 8, 200, 0, "Samosa", 100, 2),
		row(2, "Bilal", 102, 5, 150, 150, "Tea", 50, 3),
		row(3, "Cameron", 103, 7, 100, 100, "Biscuit", 25, 2),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)

	// One summary per distinct user id.
	require.Len(t, users, 3)

	// One order summary per distinct order id of that user.
	assert.Len(t, users[0].Orders, 2)
	assert.Len(t, users[1].Orders, 1)
	assert.Len(t, users[2].Orders, 1)
}

// First-seen order of users and of orders within a user is preserved, even
// when rows for the same order are not consecutive.
func TestAggregateOrderPreservation(t *testing.T) {
	rows := []OrderRow{
		row(9, "Zara", 109, 21, 100, 100, "Tea", 50, 2),
		row(4, "Asad", 104, 30, 200, 200, "Lunch", 200, 1),
		row(9, "Zara", 109, 25, 75, 75, "Biscuit", 25, 3),
		row(9, "Zara", 109, 21, 100, 100, "Samosa", 50, 1),
	}

	users, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(9), users[0].UserID)
	assert.Equal(t, int64(4), users[1].UserID)

	require.Len(t, users[0].Orders, 2)
	assert.Equal(t, int64(21), users[0].Orders[0].OrderID)
	assert.Equal(t, int64(25), users[0].Orders[1].OrderID)

	// The late row for order 21 landed in the existing summary.
	assert.Len(t, users[0].Orders[0].Items, 2)
}

func TestAggregateIdempotent(t *testing.T) {
	rows := []OrderRow{
		row(1, "Asif", 101, 1, 300, 200, "Lunch", 300, 1),
		row(1, "Asif", 101, 2, 200, 200, "Tea", 50, 4),
		row(2, "Bilal", 102, 3, 150, 175, "Samosa", 50, 3),
	}

	first, err := Aggregate(rows)
	require.NoError(t, err)
	second, err := Aggregate(rows)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateRejectsMalformedRows(t *testing.T) {
	valid := row(1, "Asif", 101, 1, 300, 300, "Lunch", 300, 1)

	cases := []struct {
		name   string
		mutate func(*OrderRow)
	}{
		{"zero user id", func(r *OrderRow) { r.UserID = 0 }},
		{"empty user name", func(r *OrderRow) { r.UserName = "" }},
		{"zero employee id", func(r *OrderRow) { r.EmployeeID = 0 }},
		{"zero order id", func(r *OrderRow) { r.OrderID = 0 }},
		{"negative total", func(r *OrderRow) { r.TotalAmount = -1 }},
		{"negative paid", func(r *OrderRow) { r.PaidAmount = -1 }},
		{"empty item name", func(r *OrderRow) { r.ItemName = "" }},
		{"negative item amount", func(r *OrderRow) { r.ItemAmount = -1 }},
		{"zero quantity", func(r *OrderRow) { r.Quantity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bad := valid
			tc.mutate(&bad)

			_, err := Aggregate([]OrderRow{valid, bad})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "row 1")
		})
	}
}
