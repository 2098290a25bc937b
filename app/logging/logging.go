// Author: SGS Locations (2026). Apache 2.0 License

package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. Handlers and background work log through
// this instance so the output format can be switched in one place.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if os.Getenv("PHOTOSYNC_DEBUG") != "" {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Redacted truncates a credential for log output. Never log tokens or secrets
// in full.
func Redacted(secret string) string {
	if len(secret) <= 6 {
		return "******"
	}
	return secret[:6] + "..."
}
