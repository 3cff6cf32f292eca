package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IAN-www1/MOOBILE/internal/config"
	"github.com/IAN-www1/MOOBILE/internal/handlers"
	"github.com/IAN-www1/MOOBILE/internal/mailer"
	"github.com/IAN-www1/MOOBILE/internal/paypal"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Shared collaborators
	auth := &handlers.Auth{Secret: cfg.JWTSecret}
	payClient := paypal.NewClient(cfg.PayPalAPIBase, cfg.PayPalClientID, cfg.PayPalSecret)
	mail := mailer.LogMailer{}

	// 4. Setup Handlers
	customerHandler := &handlers.CustomerHandler{
		Store:   db,
		Auth:    auth,
		Mailer:  mail,
		BaseURL: cfg.BaseURL,
	}
	itemHandler := &handlers.ItemHandler{Store: db}
	cartHandler := &handlers.CartHandler{Store: db}
	orderHandler := &handlers.OrderHandler{
		Store:     db,
		UploadDir: cfg.UploadDir,
		BaseURL:   cfg.BaseURL,
	}
	ticketHandler := &handlers.TicketHandler{Store: db}
	favoriteHandler := &handlers.FavoriteHandler{Store: db}
	paypalHandler := &handlers.PayPalHandler{
		Store:   db,
		Client:  payClient,
		BaseURL: cfg.BaseURL,
	}
	profileImageHandler := &handlers.ProfileImageHandler{
		Store:     db,
		UploadDir: cfg.UploadDir,
		BaseURL:   cfg.BaseURL,
	}
	adminHandler := &handlers.AdminHandler{Store: db}

	mux := http.NewServeMux()

	// Uploaded images (profile pictures, proof of delivery)
	fileServer := http.FileServer(http.Dir(cfg.UploadDir))
	mux.Handle("/uploads/", http.StripPrefix("/uploads", fileServer))

	// Rate Limiter for credential endpoints (1 request per IP per 10s)
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Accounts
	mux.HandleFunc("POST /signup", rateLimiter.Middleware(customerHandler.Signup))
	mux.HandleFunc("POST /login", rateLimiter.Middleware(customerHandler.Login))
	mux.HandleFunc("POST /reset-password", rateLimiter.Middleware(customerHandler.RequestReset))
	mux.HandleFunc("POST /reset", rateLimiter.Middleware(customerHandler.Reset))
	mux.HandleFunc("GET /customers/{userId}", customerHandler.Details)
	mux.HandleFunc("POST /customer/change-password", auth.Require(customerHandler.ChangePassword))
	mux.HandleFunc("POST /customer/update-customer-info", auth.Require(customerHandler.UpdateInfo))
	mux.HandleFunc("PATCH /player/updatePlayerId", auth.Require(customerHandler.UpdatePlayerID))
	mux.HandleFunc("GET /player/orders/{orderId}/playerId", customerHandler.PlayerIDByOrder)

	// Catalog
	mux.HandleFunc("GET /items", itemHandler.ListItems)
	mux.HandleFunc("GET /items/{id}", itemHandler.GetItem)
	mux.HandleFunc("GET /items/{id}/favorites", itemHandler.FavoriteCount)
	mux.HandleFunc("GET /items/{id}/sold", itemHandler.SoldCount)
	mux.HandleFunc("POST /reviews/review/{itemId}", itemHandler.AddReview)

	// Cart
	mux.HandleFunc("GET /cart/{userId}", cartHandler.GetCart)
	mux.HandleFunc("POST /cart/add", cartHandler.AddToCart)
	mux.HandleFunc("POST /cart/remove", cartHandler.RemoveFromCart)
	mux.HandleFunc("POST /cart/remove-all", cartHandler.RemoveAll)

	// Orders
	mux.HandleFunc("POST /api/orders", orderHandler.PlaceOrder)
	mux.HandleFunc("GET /api/orders", orderHandler.ListOrders)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetOrder)
	mux.HandleFunc("PATCH /api/orders/{id}/status", orderHandler.UpdateStatus)
	mux.HandleFunc("PATCH /api/orders/{id}/upload", orderHandler.UploadProof)
	mux.HandleFunc("GET /api/orders/mobile/{userId}", orderHandler.OrdersByUser)
	mux.HandleFunc("PUT /api/orders/mobile/order/{orderId}/cancel", orderHandler.CancelOrder)
	mux.HandleFunc("PUT /api/orders/mobile/order/{orderId}/received", orderHandler.ReceiveOrder)

	// Tickets
	mux.HandleFunc("POST /tickets/submit", ticketHandler.Submit)
	mux.HandleFunc("GET /tickets", ticketHandler.ListAll)
	mux.HandleFunc("GET /tickets/user/{userId}", ticketHandler.ListByUser)
	mux.HandleFunc("POST /tickets/reply/{ticketId}", ticketHandler.Reply)

	// Favorites
	mux.HandleFunc("POST /favorites/add", favoriteHandler.Add)
	mux.HandleFunc("POST /favorites/remove", favoriteHandler.Remove)
	mux.HandleFunc("POST /favorites/removeAll", favoriteHandler.RemoveAll)
	mux.HandleFunc("GET /favorites/user/{userId}", favoriteHandler.ListByUser)

	// PayPal
	mux.HandleFunc("POST /paypal/create-paypal-order", paypalHandler.CreateOrder)
	mux.HandleFunc("GET /paypal/success", paypalHandler.Success)
	mux.HandleFunc("GET /paypal/cancel", paypalHandler.Cancel)

	// Profile images
	mux.HandleFunc("POST /api/userProfileImage/upload-profile-image", profileImageHandler.Upload)
	mux.HandleFunc("GET /api/userProfileImage/profile-image/{userId}", profileImageHandler.Get)

	// Operator dashboard
	mux.HandleFunc("GET /admin/stats", adminHandler.Dashboard)

	// 5. Middleware Setup
	// Chain: Logger -> Security Headers -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(mux),
	)

	// 6. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Goroutine to start the server
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
