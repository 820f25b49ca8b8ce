package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
	stats  service.StatsService
}

func NewOrderHandler(orders service.OrderService, stats service.StatsService) *OrderHandler {
	return &OrderHandler{orders: orders, stats: stats}
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	PricePerKg  int64   `json:"pricePerKg"`
	PaidAmount  int64   `json:"paidAmount"`
	WeightKg    float64 `json:"weightKg"`
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Items required"})
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			PricePerKg:  it.PricePerKg,
			PaidAmount:  it.PaidAmount,
			WeightKg:    it.WeightKg,
		}
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status required"})
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
