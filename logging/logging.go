// Package logging configures the process-wide logrus logger and hands out
// per-component entries.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

func init() {
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Setup applies the configured level. Unknown levels fall back to info.
func Setup(out io.Writer, level string) {
	if out != nil {
		base.SetOutput(out)
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		base.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
}

// For returns a logger tagged with the component name.
func For(component string) *logrus.Entry {
	return base.WithField("component", component)
}

func Logger() *logrus.Logger { return base }
