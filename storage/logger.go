package storage

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// badgerLogger routes badger's printf-style logging into zerolog.
// Badger is chatty at info level, so its info and debug messages are
// demoted one level.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(trimMessage(format, args))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msg(trimMessage(format, args))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msg(trimMessage(format, args))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msg(trimMessage(format, args))
}

func trimMessage(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
