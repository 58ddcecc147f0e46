package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func newLogger(verbose bool, format string) (*logrus.Logger, error) {
	l := logrus.New()
	l.Out = os.Stderr
	switch format {
	case "", "text":
		l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	case "json":
		l.Formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("unknown log format %q, valid ones are text and json", format)
	}
	l.Level = logrus.WarnLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return l, nil
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.logger.Infof(format, a...)
}
