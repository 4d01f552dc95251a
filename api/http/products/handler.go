package products

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/floriva/shop-telegram/service/products"
)

const (
	limitDefault = uint32(20)
	limitMax     = uint32(100)
)

type Handler interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Categories(ctx *gin.Context)
}

type handler struct {
	stor products.Storage
}

func NewHandler(stor products.Storage) Handler {
	return handler{
		stor: stor,
	}
}

func (h handler) List(ctx *gin.Context) {
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
	page, err := h.stor.GetPage(ctx.Request.Context(), ctx.Query("category"), limit, ctx.Query("cursor"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list the products",
		})
		return
	}
	cursor := ""
	if uint32(len(page)) == limit {
		cursor = page[len(page)-1].Slug
	}
	ctx.JSON(http.StatusOK, gin.H{
		"products": page,
		"cursor":   cursor,
	})
}

func (h handler) Get(ctx *gin.Context) {
	p, err := h.stor.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, p)
	case errors.Is(err, products.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to get the product",
		})
	}
}

func (h handler) Categories(ctx *gin.Context) {
	cats, err := h.stor.GetCategories(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list the categories",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"categories": cats,
	})
}
