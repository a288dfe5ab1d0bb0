package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "novella/internal/adapters/mcp"
	"novella/internal/bootstrap"
	"novella/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "YAML config file")
	novelFlag := flag.String("novel", "", "novel file (overrides config)")
	profileFlag := flag.String("profile", "", "default reader profile (overrides config)")
	logFlag := flag.String("log", os.Getenv("NOVELLA_MCP_LOG"), "log file; stdout belongs to the protocol")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("novella-mcp: %v", err)
	}
	if *novelFlag != "" {
		cfg.Novel = *novelFlag
	}
	if *profileFlag != "" {
		cfg.Profile = *profileFlag
	}

	var logOut io.Writer = io.Discard
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("novella-mcp: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut)

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("novella-mcp: %v", err)
	}
	defer rt.Close()

	lib, err := rt.Library(ctx)
	if err != nil {
		log.Fatalf("novella-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"novella-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	tools := mcpadapter.NewTools(lib, cfg.Profile)
	mcpadapter.RegisterReadTools(mcpServer, tools)
	mcpadapter.RegisterWriteTools(mcpServer, tools)

	logger.Info("serving mcp", "novel", cfg.Novel, "profile", cfg.Profile)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("novella-mcp: %v", err)
	}
}
