package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotes/internal/notes"
	"gonotes/internal/notes/adapters/services"
	"gonotes/internal/notes/config"
	"gonotes/pkg/logger"
	"gonotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateServer         = "failed to create notes server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "notes",
		Short:         "In-memory note service with an HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to a yaml/json/toml/.env config file; environment variables are used when empty")

	return cmd
}

// bootstrapLogger создает логгер до чтения конфигурации, по переменным окружения.
func bootstrapLogger() (*logger.Logger, logger.Environment, error) {
	env := logger.Production
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Development) {
		env = logger.Development
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		return nil, env, fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	return log, env, nil
}

func serve(parent context.Context, configPath string) error {
	log, env, err := bootstrapLogger()
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(log)

	defer func() {
		if syncErr := logger.Log(parent).Sync(); syncErr != nil && !isIgnorableSyncError(syncErr) {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, syncErr)
		}
	}()

	ctx := logger.NewRequestIDContext(parent, "")

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	log, err = logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(log)

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(env)),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	srv, err := notes.NewServer(ctx, cfg, log, services.NewSystemClock())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCreateServer, err)
	}

	// Ошибка Listen прерывает ожидание сигнала и запускает остановку.
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	startErr := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Error(ctx, notes.ErrStartHTTP, zap.Error(err))
			startErr <- err
			cancel()
		}
	}()

	var errs []error
	if err := shutdown.Wait(waitCtx, cfg.Shutdown.GetTimeout(), srv.Shutdown); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", ErrShutdown, err))
	}
	select {
	case err := <-startErr:
		errs = append([]error{err}, errs...)
	default:
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, ErrSyncStderr) || strings.Contains(msg, ErrSyncStdout)
}
