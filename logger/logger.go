package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	log *logrus.Logger
	Log *logrus.Entry
)

// init keeps Log usable from tests and tools whose entry point is not main,
// before Init has been called with a real environment.
func init() {
	Init("test")
}

func Init(env string) {
	log = logrus.New()
	log.SetOutput(os.Stderr)

	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = log.WithFields(logrus.Fields{"service": "mataro", "env": env})
}
