// Package logging configures the process-wide logrus logger shared by
// every ggcontainer subcommand.
package logging

import (
	"fmt"
	"path/filepath"
	"runtime"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

// Setup installs a nested-field formatter on the default logrus
// logger and sets its level from a "panic".."trace" string, falling
// back to info on an unrecognized level rather than failing startup
// over a typo in a flag.
func Setup(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetReportCaller(lvl >= logrus.DebugLevel)

	logrus.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		FieldsOrder:     []string{"component", "tensor"},
		TimestampFormat: "2006-01-02 15:04:05.000",
		ShowFullLevel:   true,

		CallerFirst: true,
		CustomCallerFormatter: func(frame *runtime.Frame) string {
			return fmt.Sprintf(" [%s:%d]", filepath.Base(frame.File), frame.Line)
		},
	})
}
