package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tarstars/entropy_tree/golang/entropy_tree/dtl"
)

var (
	configPath string
	logLevel   string
	logPath    string
	memprofile string
)

var rootCmd = &cobra.Command{
	Use:          "entropy_tree_main",
	Short:        "train, apply and inspect entropy decision trees",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLog(logLevel, logPath)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return writeMemProfile(memprofile)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "tree_config.json", "a config file for the run of the program")
	flags.StringVar(&logLevel, "log-level", "info", "one of panic, fatal, error, warn, info, debug, trace")
	flags.StringVar(&logPath, "log-file", "", "also write logs to this file, rotated daily")
	flags.StringVar(&memprofile, "memprofile", "", "write memory profile to `file`")

	rootCmd.AddCommand(trainCmd, predictCmd, graphCmd, evaluateCmd, profileCmd)
}

//initLog configures the standard logrus logger and hands it to dtl.
func initLog(level, path string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "bad log level %q", level)
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if path != "" {
		writer, err := rotatelogs.New(
			path+".%Y%m%d%H%M",
			rotatelogs.WithLinkName(path),
			rotatelogs.WithMaxAge(720*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			return errors.Wrapf(err, "open log file %s", path)
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, writer))
	}

	dtl.SetLogger(logger)
	return nil
}

func writeMemProfile(fileName string) (err error) {
	if fileName == "" {
		return nil
	}
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "could not create memory profile")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "could not write memory profile")
}

//HandleError logs a fatal error and stops the program. A nil error is ignored.
func HandleError(err error) {
	if err != nil {
		logrus.WithError(err).Error("app exit")
		os.Exit(-1)
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	HandleError(err)
}
