package config

import (
	"fmt"
	"io"
	"os"

	"github.com/kbukum/envcascade/errors"
	"github.com/kbukum/envcascade/logger"
	"github.com/kbukum/envcascade/resolve"
	"github.com/kbukum/envcascade/schema"
	"github.com/kbukum/envcascade/util"
)

// Reporter presents a failed resolution to the operator.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) { f(err) }

// StderrReporter writes failures to standard error.
func StderrReporter() Reporter {
	return WriterReporter(os.Stderr)
}

// WriterReporter writes a failure as its message followed by one line per
// missing key and per validation error.
func WriterReporter(w io.Writer) Reporter {
	return ReporterFunc(func(err error) {
		fmt.Fprintln(w, err.Error())
		cfgErr, ok := errors.As(err)
		if !ok {
			return
		}
		for _, line := range cfgErr.MissingKeys {
			fmt.Fprintf(w, "  - %s\n", line)
		}
		for _, line := range cfgErr.ValidationErrors {
			fmt.Fprintf(w, "  - %s\n", line)
		}
	})
}

func logFailure(log *logger.Logger, err error) {
	cfgErr, ok := errors.As(err)
	if !ok {
		log.Error("configuration failed", logger.ErrorFields(err))
		return
	}

	fields := logger.Fields("code", string(cfgErr.Code))
	if cfgErr.Path != "" {
		fields[logger.FieldPath] = cfgErr.Path
	}
	if cfgErr.Key != "" {
		fields[logger.FieldEnvKey] = cfgErr.Key
	}
	if len(cfgErr.MissingKeys) > 0 {
		fields[logger.FieldMissingKeys] = cfgErr.MissingKeys
	}
	if len(cfgErr.ValidationErrors) > 0 {
		fields[logger.FieldValidationErrors] = cfgErr.ValidationErrors
	}
	log.Error(cfgErr.Error(), fields)
}

func logTrace(log *logger.Logger, spec schema.Spec, trace resolve.Trace) {
	for _, key := range util.SortedKeys(trace) {
		entry := trace[key]
		if spec[key].Secret {
			entry = entry.Masked()
		}
		log.Info("config trace", logger.Fields(
			logger.FieldKey, key,
			logger.FieldLayer, string(entry.ResolvedFrom),
			logger.FieldValue, entry.ResolvedValue,
			logger.FieldDefault, entry.Default,
			logger.FieldDotenv, entry.Dotenv,
			logger.FieldEnv, entry.Env,
			logger.FieldExtra, entry.IsExtra,
		))
	}
}
