package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"canteen-system/internal/database"
	"canteen-system/internal/database/models"
	"canteen-system/internal/repository"
	"canteen-system/internal/summary"
	"canteen-system/internal/utils"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := NewUserHandler(repository.NewUserRepository(db), nil)
	orders := NewOrderHandler(repository.NewOrderRepository(db), nil)
	summaries := NewSummaryHandler(repository.NewSummaryRepository(db), nil)
	auth := NewAuthHandler(repository.NewAccountRepository(db), time.Hour)

	r := gin.New()
	r.POST("/auth/login", auth.Login)
	r.POST("/users", users.Create)
	r.GET("/users", users.List)
	r.POST("/orders", orders.Create)
	r.GET("/summary/orders", summaries.Orders)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateUserAndDuplicateConflict(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/users", gin.H{"name": "Asif", "employee_id": 101})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)

	w = doJSON(t, r, http.MethodPost, "/users", gin.H{"name": "Copycat", "employee_id": 101})
	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "already in use")
}

func TestCreateUserValidation(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/users", gin.H{"name": "NoEmployeeID"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderAndSummarize(t *testing.T) {
	r, db := setupTest(t)
	ctx := context.Background()

	user := &models.User{Name: "Asif", EmployeeID: 101}
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, user))
	tea := &models.Item{Name: "Tea", Amount: 50}
	require.NoError(t, repository.NewItemRepository(db).Create(ctx, tea))

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"user_id":     user.ID,
		"paid_amount": 100,
		"items":       []gin.H{{"item_id": tea.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	today := time.Now().Format(DATE_FORMAT)
	w = doJSON(t, r, http.MethodGet, "/summary/orders?date="+today, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var users []*summary.UserDaySummary
	require.NoError(t, json.Unmarshal(payload, &users))

	require.Len(t, users, 1)
	assert.Equal(t, "Asif", users[0].UserName)
	assert.Equal(t, int64(100), users[0].TotalAmount)
	assert.Equal(t, summary.StatusSettled, users[0].Balance.Status)
	require.Len(t, users[0].Orders, 1)
	require.Len(t, users[0].Orders[0].Items, 1)
	assert.Equal(t, int64(2), users[0].Orders[0].Items[0].Quantity)
}

func TestSummaryRejectsBadDate(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/summary/orders?date=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r, db := setupTest(t)
	utils.SetJWTSecret("test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &models.Account{Username: "admin", Password: string(hash)}
	require.NoError(t, repository.NewAccountRepository(db).Create(context.Background(), account))

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
