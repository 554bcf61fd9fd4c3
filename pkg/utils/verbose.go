package utils

import "github.com/sirupsen/logrus"

var verbose bool

// SetVerbose enables per-packet output and debug logging.
func SetVerbose(v bool) {
	verbose = v
	if v {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func Verbose() bool { return verbose }
