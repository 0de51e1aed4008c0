package api

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, engine *wardrobe.Engine, jwtSecret string, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Log: log}
	stagingHandler := &StagingHandler{Engine: engine, Log: log}
	itemsHandler := &ItemsHandler{Engine: engine, Log: log}

	authMW := AuthMiddleware(jwtSecret)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Staging lifecycle.
	mux.Handle("POST /api/wardrobe/extract", authMW(http.HandlerFunc(stagingHandler.Extract)))
	mux.Handle("GET /api/wardrobe/staging/{token}", authMW(http.HandlerFunc(stagingHandler.Get)))
	mux.Handle("PUT /api/wardrobe/staging/{token}", authMW(http.HandlerFunc(stagingHandler.Update)))
	mux.Handle("POST /api/wardrobe/staging/{token}/confirm", authMW(http.HandlerFunc(stagingHandler.Confirm)))
	mux.Handle("DELETE /api/wardrobe/staging/{token}", authMW(http.HandlerFunc(stagingHandler.Discard)))
	mux.Handle("GET /api/wardrobe/staging/{token}/image", authMW(http.HandlerFunc(stagingHandler.GetImage)))

	// Confirmed wardrobe.
	mux.Handle("GET /api/wardrobe/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /api/wardrobe/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/wardrobe/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/wardrobe/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("GET /api/wardrobe/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	return LoggingMiddleware(log)(mux)
}
