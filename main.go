package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/telebot.v3"

	apiTelegram "github.com/floriva/shop-telegram/api/telegram"
	"github.com/floriva/shop-telegram/config"

	httpAuth "github.com/floriva/shop-telegram/api/http/auth"
	httpOrders "github.com/floriva/shop-telegram/api/http/orders"
	httpProducts "github.com/floriva/shop-telegram/api/http/products"
	httpUsers "github.com/floriva/shop-telegram/api/http/users"

	svcAuth "github.com/floriva/shop-telegram/service/auth"
	svcOrders "github.com/floriva/shop-telegram/service/orders"
	svcProducts "github.com/floriva/shop-telegram/service/products"
	svcTokens "github.com/floriva/shop-telegram/service/tokens"
	svcUsers "github.com/floriva/shop-telegram/service/users"
)

func main() {

	// init config and logger
	slog.Info("starting...")
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		slog.Error("failed to load the config", "err", err)
		os.Exit(1)
	}
	opts := slog.HandlerOptions{
		Level: slog.Level(cfg.Log.Level),
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &opts))

	ctx := context.Background()

	// init the storages
	storUsers, err := svcUsers.NewStorage(ctx, cfg.Db)
	if err != nil {
		panic(err)
	}
	defer storUsers.Close()
	storProducts, err := svcProducts.NewStorage(ctx, cfg.Db)
	if err != nil {
		panic(err)
	}
	defer storProducts.Close()
	storOrders, err := svcOrders.NewStorage(ctx, cfg.Db)
	if err != nil {
		panic(err)
	}
	defer storOrders.Close()

	// init the identity services
	verifier := svcAuth.NewService(
		cfg.Api.Telegram.Token,
		cfg.Api.Telegram.Auth.MaxAge,
		cfg.Api.Telegram.Auth.SkewFuture,
	)
	verifier = svcAuth.NewServiceLogging(verifier, log)
	users := svcUsers.NewService(storUsers)
	users = svcUsers.NewServiceLogging(users, log)
	tokens := svcTokens.NewService(cfg.Api.Token.SigningKey, cfg.Api.Token.TtlAccess, cfg.Api.Token.TtlRefresh)
	tokens = svcTokens.NewServiceLogging(tokens, log)

	// init the Telegram bot, see https://core.telegram.org/bots/api#html-style
	// for the markup the html policy allows
	s := telebot.Settings{
		Poller: &telebot.LongPoller{
			Timeout: 10 * time.Second,
		},
		Token: cfg.Api.Telegram.Token,
	}
	var b *telebot.Bot
	b, err = telebot.NewBot(s)
	if err != nil {
		panic(err)
	}
	err = b.SetCommands([]telebot.Command{
		{
			Text:        "start",
			Description: "Start",
		},
		{
			Text:        "shop",
			Description: "Open the Shop",
		},
		{
			Text:        "orders",
			Description: "My Orders",
		},
	})
	if err != nil {
		panic(err)
	}
	htmlPolicy := bluemonday.NewPolicy()
	htmlPolicy.AllowStandardURLs()
	htmlPolicy.
		AllowAttrs("href").
		OnElements("a")
	htmlPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre")

	// init the order service with the bot-backed buyer notifier
	notifier := svcOrders.NewNotifier(b, htmlPolicy, log)
	orders := svcOrders.NewService(storOrders, storProducts, notifier)
	orders = svcOrders.NewServiceLogging(orders, log)

	// assign the bot handlers
	urlWebApp := cfg.Api.Telegram.WebApp.Url
	kbd := apiTelegram.GetReplyKeyboard(urlWebApp)
	b.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return apiTelegram.LoggingHandlerFunc(next, log)
	})
	b.Handle("/start", apiTelegram.ErrorHandlerFunc(apiTelegram.StartHandlerFunc(users, urlWebApp), kbd, log))
	b.Handle("/shop", apiTelegram.ErrorHandlerFunc(apiTelegram.ShopHandlerFunc(urlWebApp), kbd, log))
	b.Handle("/orders", apiTelegram.ErrorHandlerFunc(apiTelegram.OrdersHandlerFunc(users, orders), kbd, log))
	go b.Start()

	// init the http API
	hUsers := httpUsers.NewHandler(verifier, users, tokens, []byte(cfg.Api.Telegram.Token))
	hProducts := httpProducts.NewHandler(storProducts)
	hOrders := httpOrders.NewHandler(orders)
	chain := httpAuth.NewChain(
		httpAuth.NewTokenAuthenticator(tokens, users),
		httpAuth.NewInitDataAuthenticator(verifier, users),
	)
	r := gin.Default()
	pub := r.Group(cfg.Api.Path)
	pub.POST("/auth/telegram", hUsers.TelegramAuth)
	pub.POST("/auth/widget", hUsers.WidgetAuth)
	pub.POST("/auth/refresh", hUsers.Refresh)
	pub.GET("/products", hProducts.List)
	pub.GET("/products/:slug", hProducts.Get)
	pub.GET("/categories", hProducts.Categories)
	authed := pub.Group("", httpAuth.RequireAuth(chain))
	authed.GET("/users/me", hUsers.Me)
	authed.POST("/orders", hOrders.Create)
	authed.GET("/orders", hOrders.List)
	authed.GET("/orders/:id", hOrders.Get)
	err = r.Run(fmt.Sprintf(":%d", cfg.Api.Port))
	if err != nil {
		panic(err)
	}
}
