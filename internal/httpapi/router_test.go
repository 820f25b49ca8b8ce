package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-orders/internal/broadcast"
	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/repo"
	"bazaar-orders/internal/service"
	"bazaar-orders/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthService struct {
	user domain.User
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == s.user.Username && password == s.user.Password {
		u := s.user
		return &u, nil
	}
	return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
}

func (s *stubAuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if id == s.user.ID {
		u := s.user
		return &u, nil
	}
	return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
}

type stubOrderService struct {
	orders  []domain.Order
	created []domain.OrderItem
}

func (s *stubOrderService) CreateOrder(ctx context.Context, items []domain.OrderItem) (*domain.Order, error) {
	s.created = items
	return &domain.Order{ID: 1, Status: domain.OrderPending, CreatedAt: time.Now(), Items: items}, nil
}

func (s *stubOrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderService) UpdateOrderStatus(ctx context.Context, orderId int64, status domain.OrderStatus) (*domain.Order, error) {
	for _, o := range s.orders {
		if o.ID == orderId {
			o.Status = status
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderId)
}

type stubProductService struct {
	products []domain.Product
}

func (s *stubProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
}

func (s *stubProductService) CreateProduct(ctx context.Context, name string, pricePerKg int64, imageURL *string) (*domain.Product, error) {
	return &domain.Product{ID: 1, Name: name, PricePerKg: pricePerKg, ImageURL: imageURL}, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id int64, update repo.ProductUpdate) (*domain.Product, error) {
	return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id int64) error {
	return nil
}

type stubStatsService struct{}

func (s *stubStatsService) Stats(ctx context.Context) (*service.Stats, error) {
	return &service.Stats{TotalRevenue: 8350, ProductSales: []service.ProductSales{}}, nil
}

type fixture struct {
	router   *gin.Engine
	sessions *session.Store
	orders   *stubOrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sessions := session.NewStore(time.Hour)
	orders := &stubOrderService{orders: []domain.Order{{ID: 7, Status: domain.OrderPending}}}

	router := NewRouter(Deps{
		Auth:      &stubAuthService{user: domain.User{ID: 3, Username: "sender", Password: "sender123", Role: domain.RoleSender}},
		Products:  &stubProductService{},
		Orders:    orders,
		Stats:     &stubStatsService{},
		Sessions:  sessions,
		Hub:       broadcast.NewHub(),
		UploadDir: t.TempDir(),
	})
	return &fixture{router: router, sessions: sessions, orders: orders}
}

func (f *fixture) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newFixture(t)

	w := f.request(http.MethodPost, "/api/auth/login",
		gin.H{"username": "sender", "password": "sender123"}, "")

	require.Equal(t, http.StatusOK, w.Code)
	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "sender", user.Username)
	assert.Equal(t, domain.RoleSender, user.Role)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	userId, ok := f.sessions.Get(cookies[0].Value)
	assert.True(t, ok)
	assert.Equal(t, int64(3), userId)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)

	w := f.request(http.MethodPost, "/api/auth/login",
		gin.H{"username": "sender", "password": "wrong"}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginRequiresBothFields(t *testing.T) {
	f := newFixture(t)

	w := f.request(http.MethodPost, "/api/auth/login", gin.H{"username": "sender"}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username and password required")
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	w := f.request(http.MethodGet, "/api/auth/me", nil, token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sender"`)
	// The credential never leaves the server.
	assert.NotContains(t, w.Body.String(), "sender123")
}

func TestMeUnauthenticated(t *testing.T) {
	f := newFixture(t)

	w := f.request(http.MethodGet, "/api/auth/me", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authenticated")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	w := f.request(http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := f.sessions.Get(token)
	assert.False(t, ok)
}

func TestOrdersRequireAuth(t *testing.T) {
	f := newFixture(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodPatch, "/api/orders/7"},
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/stats"},
	} {
		w := f.request(probe.method, probe.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", probe.method, probe.path)
	}
}

func TestCreateOrderRequiresItems(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	for _, body := range []any{gin.H{}, gin.H{"items": []any{}}, "not json"} {
		w := f.request(http.MethodPost, "/api/orders", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Items required")
	}
}

func TestCreateOrderPassesItemsThrough(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	w := f.request(http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{
		"productId":   5,
		"productName": "Gulla barozha",
		"pricePerKg":  4500,
		"paidAmount":  1350,
		"weightKg":    0.3,
	}}}, token)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.orders.created, 1)
	assert.Equal(t, int64(5), f.orders.created[0].ProductID)
	assert.Equal(t, int64(1350), f.orders.created[0].PaidAmount)
	assert.InDelta(t, 0.3, f.orders.created[0].WeightKg, 1e-9)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.OrderPending, order.Status)
}

func TestUpdateOrderStatusRequiresStatus(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	w := f.request(http.MethodPatch, "/api/orders/7", gin.H{}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Status required")
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	w := f.request(http.MethodPatch, "/api/orders/999", gin.H{"status": "completed"}, token)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductRequiresNameAndPrice(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name and price required")
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	token := f.sessions.Create(3)

	w := f.request(http.MethodGet, "/api/stats", nil, token)

	require.Equal(t, http.StatusOK, w.Code)
	var stats service.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(8350), stats.TotalRevenue)
}
