package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TWRT/catalyst-bridge/internal/api"
	"github.com/TWRT/catalyst-bridge/internal/client/trello"
	"github.com/TWRT/catalyst-bridge/internal/config"
	"github.com/TWRT/catalyst-bridge/internal/mapping"
	"github.com/TWRT/catalyst-bridge/internal/render"
)

const usage = `Usage: catalyst-bridge <command> [arguments]

Commands:
  serve [-port N]            Run the webhook server
  check                      Validate the mapping and template files
  trello:boards              List boards and their ids
  trello:labels [boardId]    List the labels of a board
  trello:auth [appKey]       Print the URL used to obtain a Trello token
`

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("Error loading .env: ", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "serve":
		err = runServe(ctx, args)
	case "check":
		err = runCheck()
	case "trello:boards":
		err = runBoards(ctx)
	case "trello:labels":
		err = runLabels(ctx, args)
	case "trello:auth":
		err = runAuth(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n\n%s", command, usage)
		os.Exit(1)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func runServe(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	port := flags.Int("port", cfg.Port, "port to listen on")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := config.Require(
		config.EnvTrelloAppKey,
		config.EnvTrelloToken,
		config.EnvTrelloBoardID,
		config.EnvTrelloListID,
		config.EnvHookSecret,
	); err != nil {
		return err
	}

	mappingConfig, tpl, err := loadResources(cfg)
	if err != nil {
		return err
	}
	for _, warning := range mappingConfig.Warnings() {
		logger.Warn("mapping warning", "detail", warning)
	}

	trelloClient := trello.NewTrelloClient(cfg.TrelloAppKey, cfg.TrelloToken)
	router := api.SetupRouter(cfg, trelloClient, mappingConfig, tpl, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	fmt.Printf("🚀 Listening on :%d\n", *port)
	fmt.Println("📝 Endpoints:")
	fmt.Println("   GET  /health - Health check")
	fmt.Println("   POST /       - Form submission hook (also /hook, ?dry_run=true to preview)")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runCheck() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mappingConfig, tpl, err := loadResources(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Mapping %s: %d fields, %d label paths\n", cfg.MappingPath, len(mappingConfig.Fields), len(mappingConfig.Labels))
	fmt.Printf("✅ Template %s compiled\n", tpl.Name())
	for _, warning := range mappingConfig.Warnings() {
		fmt.Printf("⚠️  %s\n", warning)
	}
	return nil
}

func loadResources(cfg *config.Config) (*mapping.Config, *render.Template, error) {
	mappingConfig, err := mapping.LoadFile(cfg.MappingPath)
	if err != nil {
		return nil, nil, err
	}

	tpl, err := render.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		return nil, nil, err
	}
	return mappingConfig, tpl, nil
}
