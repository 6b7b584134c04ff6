// Package logger provides structured logging for envcascade using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "envcheck", os.Stderr)
//	log = log.WithComponent("config")
//	log.Info("source resolved", logger.Fields(logger.FieldPath, path))
package logger
