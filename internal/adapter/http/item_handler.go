package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	catalog *usecase.Catalog
}

func NewItemHandler(catalog *usecase.Catalog) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

type itemResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       int64  `json:"stock"`
	Description string `json:"description,omitempty"`
	CategoryID  *int64 `json:"categoryId,omitempty"`
}

func toItemResp(it *domain.Item) itemResp {
	return itemResp{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price.String(),
		Stock:       it.Stock,
		Description: it.Description,
		CategoryID:  it.CategoryID,
	}
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	items, err := h.catalog.List(ctx)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	out := make([]itemResp, 0, len(items))
	for i := range items {
		out = append(out, toItemResp(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	it, err := h.catalog.Get(ctx, id)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResp(it))
}

type createItemReq struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Description string          `json:"description"`
	CategoryID  *int64          `json:"categoryId"`
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	it, err := h.catalog.Create(ctx, domain.Item{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItemResp(it))
}

type updateItemReq struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"stock"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"categoryId"`
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	it, err := h.catalog.Update(ctx, id, usecase.ItemPatch{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResp(it))
}
