package main

import (
	stdlog "log"
	"net/http"
	"time"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/config"
	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/handlers"
	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/logger"
	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/zanox"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Affiliate network adapter starting...")

	logger.L.Info("Initializing provider client...", "connectId", config.Cfg.ConnectID)
	client := zanox.NewClient(zanox.Config{
		ConnectID:         config.Cfg.ConnectID,
		SecretKey:         config.Cfg.SecretKey,
		AdSpaceID:         config.Cfg.AdSpaceID,
		BaseURL:           config.Cfg.BaseURL,
		Timeout:           config.Cfg.HTTPClientTimeout,
		RequestsPerSecond: config.Cfg.ProviderRateRPS,
	})

	logger.L.Info("Configuring routes...")
	affiliateHandler := handlers.NewAffiliateHandler(client)
	router := handlers.NewRouter(affiliateHandler)

	finalHandler := rateLimitMiddleware(router)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // report windows can take a while
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
