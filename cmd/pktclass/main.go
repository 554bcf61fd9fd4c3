package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zxhio/pktclass/cmd/pktclass/classify"
	"github.com/zxhio/pktclass/cmd/pktclass/lookup"
	"github.com/zxhio/pktclass/cmd/pktclass/sizes"
	"github.com/zxhio/pktclass/cmd/pktclass/tcpflags"
	"github.com/zxhio/pktclass/pkg/builder"
	"github.com/zxhio/pktclass/pkg/utils"
)

const envLogFile = "PKTCLASS_LOG_FILE"

var (
	verbose bool
	version bool
	logFile string
)

const logoAscii = `        |    |       |
 |/\ |/ |_  /  | /\ /_ /_
 |        |`

var rootCmd = &cobra.Command{
	Use:   "pktclass",
	Short: "Packet classification registry and offline classifier\n\n" + color.HiBlueString(logoAscii),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
		utils.SetVerbose(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if version {
			fmt.Println(builder.BuildInfo())
			os.Exit(0)
		}
		cmd.Help()
	},
}

func setupLogger() {
	if logFile == "" {
		logFile = os.Getenv(envLogFile)
	}
	if logFile == "" {
		logrus.SetLevel(logrus.WarnLevel)
		return
	}

	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     60,
		Compress:   true,
	})
}

func main() {
	cobra.EnableTraverseRunHooks = true
	lookup.Export(rootCmd)
	tcpflags.Export(rootCmd)
	sizes.Export(rootCmd)
	classify.Export(rootCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file (env "+envLogFile+")")
	rootCmd.Flags().BoolVarP(&version, "version", "V", false, "Print version")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
