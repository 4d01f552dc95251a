package orders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httpAuth "github.com/floriva/shop-telegram/api/http/auth"
	"github.com/floriva/shop-telegram/service/orders"
	"github.com/floriva/shop-telegram/service/products"
)

const (
	limitDefault = uint32(20)
	limitMax     = uint32(100)
)

type Handler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
}

type handler struct {
	svc orders.Service
}

func NewHandler(svc orders.Service) Handler {
	return handler{
		svc: svc,
	}
}

func (h handler) Create(ctx *gin.Context) {
	a, ok := httpAuth.GetAuth(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "request is not authenticated",
		})
		return
	}
	var in orders.CreateInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid order payload",
		})
		return
	}
	o, err := h.svc.Create(ctx.Request.Context(), a.User, in)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, o)
	case errors.Is(err, orders.ErrInvalidOrder), errors.Is(err, products.ErrNotFound):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to place the order",
		})
	}
}

func (h handler) List(ctx *gin.Context) {
	a, ok := httpAuth.GetAuth(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "request is not authenticated",
		})
		return
	}
	limit := limitDefault
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || n == 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid limit",
			})
			return
		}
		limit = uint32(n)
	}
	if limit > limitMax {
		limit = limitMax
	}
	page, err := h.svc.GetPage(ctx.Request.Context(), a.User.Id, limit, ctx.Query("cursor"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list the orders",
		})
		return
	}
	cursor := ""
	if uint32(len(page)) == limit {
		cursor = page[len(page)-1].Id
	}
	ctx.JSON(http.StatusOK, gin.H{
		"orders": page,
		"cursor": cursor,
	})
}

func (h handler) Get(ctx *gin.Context) {
	a, ok := httpAuth.GetAuth(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "request is not authenticated",
		})
		return
	}
	o, err := h.svc.Get(ctx.Request.Context(), a.User.Id, ctx.Param("id"))
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, o)
	case errors.Is(err, orders.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get the order",
		})
	}
}
