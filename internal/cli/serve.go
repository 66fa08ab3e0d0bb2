package cli

import (
	"FaceAttendance/internal/config"
	"FaceAttendance/pkg/bcrypt"
	"FaceAttendance/pkg/face/dlib"
	"FaceAttendance/pkg/log"
	"FaceAttendance/pkg/redis"
	"FaceAttendance/pkg/storage"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. Pending database migrations are applied and the
face recognition models are loaded before the listener starts.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "Port to listen on (overrides APP_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := log.NewLogger()
	cfg := config.Load()

	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = cfg.Port
	}

	u := cfg.NewUtils()

	extractor, err := dlib.New(cfg.Face, u, logger)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		extractor.Close()
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	server, err := config.NewServer(
		config.WithFiber(config.NewFiber(logger, cfg.BodyLimit())),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithDatabase(cfg.Database),
		config.WithMiddleware(),
		config.WithExtractor(extractor),
		config.WithStorage(store),
		config.WithGalleryCache(redis.New(cfg.Redis, logger)),
		config.WithBcryptUtils(bcrypt.NewWithCost(cfg.BcryptCost)),
		config.WithUtils(u),
	)
	if err != nil {
		extractor.Close()
		return err
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(port)
	}()

	logger.Infof("Server listening on :%s", port)

	select {
	case err = <-errChan:
		logger.Errorf("Error starting server: %v", err)
	case <-sigChan:
		logger.Info("Shutting down server...")
	}

	if shutdownErr := server.Shutdown(); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}
