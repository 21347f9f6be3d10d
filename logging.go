package feedparser

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger is the Driver's default logger: it emits nothing. Warnings
// and errors always go out through the Sink regardless of logger
// configuration; the logger only covers operational diagnostics (recoverable
// tokenizer quibbles, dialect-detection fallbacks) a caller opts into by
// supplying their own *logrus.Logger.
func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
