// FILE: lixenwraith/envproxy/log.go
package envproxy

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	loggerMu sync.RWMutex
	logger   log.FieldLogger = log.StandardLogger()
)

// SetLogger replaces the logger used for debug traces and strict=false
// warnings and returns the previous one. A nil logger restores the logrus
// standard logger.
func SetLogger(l log.FieldLogger) log.FieldLogger {
	if l == nil {
		l = log.StandardLogger()
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	prev := logger
	logger = l
	return prev
}

func getLogger() log.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
