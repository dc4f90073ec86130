package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jusunglee/mta-mcp/api/handlers"
	"github.com/jusunglee/mta-mcp/internal/logger"
	"github.com/jusunglee/mta-mcp/pkg/mta"
)

var version = "dev"

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		transport  = flag.String("transport", "stdio", "MCP transport: stdio or http")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	config, err := mta.LoadConfig(*configPath)

	logCfg := logger.DefaultConfig()
	logCfg.Level = config.Log.Level
	logCfg.FilePath = config.Log.File
	log := logger.New(logCfg)

	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if *port > 0 {
		config.Server.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mta.NewLocal(ctx, config, log)
	if err != nil {
		log.Fatal("Failed to create MTA client", "error", err)
	}

	mcpServer := handlers.NewServer(version, client, log)

	switch *transport {
	case "stdio":
		log.Info("Serving MCP over stdio", "tool", handlers.ToolName)
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatal("Stdio server failed", "error", err)
		}
	case "http":
		serveHTTP(ctx, config, client, mcpServer, log)
	default:
		log.Fatal("Unknown transport", "transport", *transport)
	}
}

func serveHTTP(ctx context.Context, config mta.Config, client mta.Client, mcpServer *server.MCPServer, log logger.Logger) {
	r := mux.NewRouter()
	r.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer))
	handlers.NewHandler(client).RegisterRoutes(r)

	r.Use(handlers.LoggingMiddleware(log))
	r.Use(handlers.CORSMiddleware)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(config.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: config.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", config.Server.Port, "mcp", "/mcp")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", "error", err)
	}

	log.Info("Server stopped")
}
