package smwgfx

import (
	"io/ioutil"
	"log"
)

// Logger receives leveled diagnostics.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

type stdLogger struct {
	debug, warn *log.Logger
}

func (l *stdLogger) Debugf(format string, v ...interface{}) {
	l.debug.Printf(format, v...)
}

func (l *stdLogger) Warnf(format string, v ...interface{}) {
	l.warn.Printf("warning: "+format, v...)
}

// NewLogger returns a Logger writing to l. Debug messages are discarded
// unless verbose is set. A nil l discards everything.
func NewLogger(l *log.Logger, verbose bool) Logger {
	discard := log.New(ioutil.Discard, "", 0)
	if l == nil {
		return &stdLogger{debug: discard, warn: discard}
	}
	if !verbose {
		return &stdLogger{debug: discard, warn: l}
	}
	return &stdLogger{debug: l, warn: l}
}
