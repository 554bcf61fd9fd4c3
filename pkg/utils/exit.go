package utils

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// CheckErrorAndExit reports err on stderr and in the log, then exits 1.
func CheckErrorAndExit(err error, msg string) {
	if err == nil {
		return
	}
	logrus.WithError(err).Error(msg)
	fmt.Fprintf(os.Stderr, "%s: %s\n", color.RedString(msg), err)
	os.Exit(1)
}
