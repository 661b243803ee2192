package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/http/middleware"
	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	engine *usecase.OrderEngine
}

func NewOrderHandler(engine *usecase.OrderEngine) *OrderHandler {
	return &OrderHandler{engine: engine}
}

type orderLineReq struct {
	ItemID   int64 `json:"itemId" binding:"required"`
	Quantity int64 `json:"quantity"`
}

type createOrderReq struct {
	Total decimal.Decimal `json:"total"`
	Items []orderLineReq  `json:"items" binding:"required"`
}

type orderLineResp struct {
	ItemID   int64  `json:"itemId"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

type orderResp struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Status    string          `json:"status"`
	Total     string          `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []orderLineResp `json:"items"`
}

func toOrderResp(o *domain.Order) orderResp {
	resp := orderResp{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total.String(),
		CreatedAt: o.CreatedAt,
		Items:     []orderLineResp{},
	}
	for _, line := range o.Items {
		resp.Items = append(resp.Items, orderLineResp{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price.String(),
			Quantity: line.Quantity,
		})
	}
	return resp
}

// CreateOrder converts the submitted cart into an order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	lines := make([]usecase.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.LineRequest{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	order, err := h.engine.Place(ctx, caller, req.Total, lines)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	middleware.CountTransition(string(order.Status))
	c.JSON(http.StatusCreated, toOrderResp(order))
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	h.transition(c, h.engine.Cancel)
}

func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	h.transition(c, h.engine.Complete)
}

func (h *OrderHandler) transition(c *gin.Context, op func(context.Context, domain.Caller, string) (*domain.Order, error)) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	order, err := op(ctx, caller, c.Param("id"))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	middleware.CountTransition(string(order.Status))
	c.JSON(http.StatusOK, toOrderResp(order))
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	orders, err := h.engine.ListMine(ctx, caller)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func writeEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
