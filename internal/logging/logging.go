// SPDX-License-Identifier: MIT

// Package logging holds the process-wide logrus logger used by the model
// loaders and the saltmag command.
package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Library components default to it when no
// logger is injected through their options.
var Log = logrus.New()

// SetLogLevel parses level and applies it to Log.
// Trace and panic levels are not exposed.
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("logging: bad level string %q", level)
	}

	return nil
}

// Or returns l when non-nil, otherwise Log.
func Or(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Log
	}

	return l
}
