package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"atelier/internal/auth"
	"atelier/internal/cache"
	"atelier/internal/config"
	"atelier/internal/defaults"
	"atelier/internal/domain/models/content"
	"atelier/internal/handler"
	"atelier/internal/media"
	"atelier/internal/middleware"
	"atelier/internal/repository/factory"
	"atelier/internal/service/admin"
	"atelier/internal/service/advice"
	"atelier/internal/service/sanitizer"
	"atelier/internal/service/site"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"table_prefix", cfg.TablePrefix,
	)

	ctx := context.Background()

	// Remote document store behind the session cache
	backend, err := factory.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer func() { _ = backend.Close() }()

	session := cache.NewSession(backend.Store, logger,
		cache.WithRemoteTimeout(cfg.RemoteTimeout),
		cache.WithReferences(content.References...),
	)

	// Admin token verification
	jwtVerifier, err := auth.NewJWTVerifier(ctx, auth.VerifierConfig{
		JWKSURL:  cfg.AuthJWKSURL,
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Design advice - a missing key leaves the endpoint answering with the apology
	adviceProvider, providerErr := advice.NewProviderFactory(cfg).GetProvider(ctx, cfg.AdviceProvider)
	if providerErr != nil {
		logger.Warn("design advice provider unavailable",
			"provider", cfg.AdviceProvider,
			"error", providerErr,
		)
	}

	mediaService, err := media.NewService(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up media uploads: %v", err)
	}

	htmlSanitizer := sanitizer.NewInlineHTMLSanitizer()

	mux := handler.NewRouter(handler.Dependencies{
		Site:    site.NewService(session, defaults.MustLoadSite(), htmlSanitizer, logger),
		Admin:   admin.NewService(session, htmlSanitizer, logger),
		Advice:  advice.NewService(adviceProvider, providerErr, cfg.AdviceModel, logger),
		SignIn:  auth.NewIdentityClient(cfg.IdentityURL, cfg.IdentityAPIKey, logger),
		Media:   mediaService,
		Backend: cfg.StoreBackend,
	}, middleware.RequireAdmin(jwtVerifier, logger), logger)

	logger.Info("services initialized")

	// Build middleware chain
	// Order: CORS → Recovery → Logging → Routes
	var h http.Handler = mux
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Let background creates reach the store before closing it
	session.Wait()
	logger.Info("server stopped")
}
