// Package log builds the process logger from the logs.* settings.
//
// Components never reach for a global: they receive the logger (or an entry derived
// from it) and tag their records with a "component" field.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/key"
	"github.com/simud-cli/simud/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var logger = logrus.New()

// New returns a logger writing to out, formatted and levelled from configuration.
func New(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}

// Setup initializes the process logger once. With logs.write set the records go to a
// dated file under where.Logs(), otherwise to stderr.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = New(os.Stderr)
		return nil
	}

	path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logger = New(f)
	return nil
}

// L returns the process logger.
func L() *logrus.Logger {
	return logger
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return logger.WithField("component", name)
}
