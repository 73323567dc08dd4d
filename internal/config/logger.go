package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/simp-lee/logger"
)

// SetupLogger builds a *logger.Logger from the LogConfig and installs it as
// the process-wide slog default. The caller owns the returned logger and
// must Close it on shutdown. Unknown level values fall back to "info";
// unknown format values fall back to the library's custom console format.
func SetupLogger(cfg *LogConfig) (*logger.Logger, error) {
	if cfg == nil {
		return nil, errors.New("log config is nil")
	}

	opts := []logger.Option{
		logger.WithLevel(logLevel(cfg.Level)),
		logger.WithMiddleware(logger.ContextMiddleware()),
		logger.WithConsoleFormat(logFormat(cfg.Format)),
		logger.WithConsoleColor(cfg.Color == nil || *cfg.Color),
	}
	opts = append(opts, fileOptions(cfg)...)

	log, err := logger.New(opts...)
	if err != nil {
		return nil, err
	}

	log.SetDefault()
	return log, nil
}

// fileOptions translates the optional file output settings. An empty file
// path disables file logging entirely.
func fileOptions(cfg *LogConfig) []logger.Option {
	if cfg.FilePath == "" {
		return nil
	}

	opts := []logger.Option{
		logger.WithFilePath(cfg.FilePath),
		logger.WithFileFormat(logFormat(cfg.Format)),
	}
	if cfg.MaxSizeMB > 0 {
		opts = append(opts, logger.WithMaxSizeMB(cfg.MaxSizeMB))
	}
	if cfg.RetentionDays > 0 {
		opts = append(opts, logger.WithRetentionDays(cfg.RetentionDays))
	}
	if cfg.MaxBackups > 0 {
		opts = append(opts, logger.WithMaxBackups(cfg.MaxBackups))
	}
	if cfg.CompressRotated != nil {
		opts = append(opts, logger.WithCompressRotated(*cfg.CompressRotated))
	}
	return opts
}

func logFormat(s string) logger.OutputFormat {
	switch strings.ToLower(s) {
	case "text":
		return logger.FormatText
	case "json":
		return logger.FormatJSON
	default:
		return logger.FormatCustom
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
