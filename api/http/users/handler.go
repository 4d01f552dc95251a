package users

import (
	"net/http"

	tgverifier "github.com/electrofocus/telegram-auth-verifier"
	"github.com/gin-gonic/gin"

	httpAuth "github.com/floriva/shop-telegram/api/http/auth"
	svcAuth "github.com/floriva/shop-telegram/service/auth"
	"github.com/floriva/shop-telegram/service/tokens"
	svcUsers "github.com/floriva/shop-telegram/service/users"
)

type Handler interface {

	// TelegramAuth is the Mini App login: verifies the posted init data,
	// updates or creates the user and issues the session token pair.
	TelegramAuth(ctx *gin.Context)

	// WidgetAuth is the browser fallback login with Telegram Login Widget
	// credentials.
	WidgetAuth(ctx *gin.Context)

	Refresh(ctx *gin.Context)

	Me(ctx *gin.Context)
}

type handler struct {
	verifier     svcAuth.Service
	svcUsers     svcUsers.Service
	svcTokens    tokens.Service
	secretWidget []byte
}

type telegramAuthRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func NewHandler(verifier svcAuth.Service, svcUsers svcUsers.Service, svcTokens tokens.Service, secretWidget []byte) Handler {
	return handler{
		verifier:     verifier,
		svcUsers:     svcUsers,
		svcTokens:    svcTokens,
		secretWidget: secretWidget,
	}
}

func (h handler) TelegramAuth(ctx *gin.Context) {
	var req telegramAuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "init_data is required",
		})
		return
	}
	d, err := h.verifier.Verify(req.InitData)
	if err != nil {
		ctx.JSON(httpAuth.StatusOf(err), gin.H{
			"error": err.Error(),
		})
		return
	}
	u, created, err := h.svcUsers.Upsert(ctx.Request.Context(), d.User)
	var p tokens.Pair
	if err == nil {
		p, err = h.svcTokens.Issue(u.Id)
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "login failed",
		})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, gin.H{
		"user":   u,
		"tokens": p,
	})
}

func (h handler) WidgetAuth(ctx *gin.Context) {
	var creds tgverifier.Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid credentials payload",
		})
		return
	}
	if err := creds.Verify(h.secretWidget); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}
	if creds.ID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "no user id",
		})
		return
	}
	u, created, err := h.svcUsers.Upsert(ctx.Request.Context(), svcAuth.TelegramUser{
		Id:        creds.ID,
		FirstName: creds.FirstName,
		LastName:  creds.LastName,
		UserName:  creds.Username,
		PhotoUrl:  creds.PhotoURL,
	})
	var p tokens.Pair
	if err == nil {
		p, err = h.svcTokens.Issue(u.Id)
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "login failed",
		})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, gin.H{
		"user":   u,
		"tokens": p,
	})
}

func (h handler) Refresh(ctx *gin.Context) {
	var req refreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "refresh is required",
		})
		return
	}
	access, err := h.svcTokens.Refresh(req.Refresh)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"access": access,
	})
}

func (h handler) Me(ctx *gin.Context) {
	a, ok := httpAuth.GetAuth(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "request is not authenticated",
		})
		return
	}
	ctx.JSON(http.StatusOK, a.User)
}
