package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	restctx "github.com/dlalic/unpacking/internal/api/rest/context"
	"github.com/dlalic/unpacking/internal/api/rest/handler"
	"github.com/dlalic/unpacking/internal/api/rest/middleware"
	"github.com/dlalic/unpacking/internal/api/rest/router"
	"github.com/dlalic/unpacking/internal/config"
	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/repository/postgres"
	"github.com/dlalic/unpacking/internal/security"
	"github.com/dlalic/unpacking/internal/service"
	"github.com/dlalic/unpacking/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	authorRepo := postgres.NewAuthorRepository(db)
	termRepo := postgres.NewTermRepository(db)
	snippetRepo := postgres.NewSnippetRepository(db)

	hasher, err := security.NewHasher(cfg.Auth.HasherSalt)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	tokenManager := token.NewJWT(cfg.Auth.JWTSecret)

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	userService := service.NewUser(userRepo, hasher, logger)
	authorService := service.NewAuthor(authorRepo, logger)
	termService := service.NewTerm(termRepo, logger)
	snippetService := service.NewSnippet(snippetRepo, logger)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatal("failed to ensure admin user", "error", err)
	}

	ctxMgr := restctx.NewManager()

	handlers := router.Handlers{
		Auth:    handler.NewAuth(authService, logger),
		User:    handler.NewUser(userService, ctxMgr, logger),
		Term:    handler.NewTerm(termService, ctxMgr, logger),
		Snippet: handler.NewSnippet(snippetService, ctxMgr, logger),
		Author:  handler.NewAuthor(authorService, ctxMgr, logger),
	}

	authenticate := middleware.NewAuthenticate(tokenManager, ctxMgr, logger)
	logging := middleware.NewLogging(logger)

	server := &http.Server{
		Addr:    cfg.HTTP.Address(),
		Handler: router.New(handlers, authenticate, logging),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", server.Addr)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
