package wa

import (
	"github.com/charmbracelet/log"
	walog "go.mau.fi/whatsmeow/util/log"
)

// charmLogger lets whatsmeow write through the application logger.
type charmLogger struct {
	l *log.Logger
}

var _ walog.Logger = charmLogger{}

func NewLogger(l *log.Logger, module string) walog.Logger {
	return charmLogger{l: l.WithPrefix(module)}
}

func (c charmLogger) Warnf(msg string, args ...interface{})  { c.l.Warnf(msg, args...) }
func (c charmLogger) Errorf(msg string, args ...interface{}) { c.l.Errorf(msg, args...) }
func (c charmLogger) Infof(msg string, args ...interface{})  { c.l.Infof(msg, args...) }
func (c charmLogger) Debugf(msg string, args ...interface{}) { c.l.Debugf(msg, args...) }

func (c charmLogger) Sub(module string) walog.Logger {
	prefix := module
	if p := c.l.GetPrefix(); p != "" {
		prefix = p + "/" + module
	}
	return charmLogger{l: c.l.WithPrefix(prefix)}
}
