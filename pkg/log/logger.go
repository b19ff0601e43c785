package log

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

// Logger returns the process wide logger.
func Logger() *logrus.Logger {
	return logger
}

// Configure sets level and format of the process wide logger.
// Empty values leave the current setting untouched.
func Configure(level, format string) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return errors.Wrapf(err, "error parsing log level %v", level)
		}
		logger.SetLevel(lvl)
	}
	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %v", format)
	}
	return nil
}
