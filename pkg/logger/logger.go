package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu          sync.RWMutex
	base        *zap.Logger
	serviceName = "gateway"
)

func SetServiceName(newName string) string {
	mu.Lock()
	defer mu.Unlock()
	oldName := serviceName
	serviceName = newName
	return oldName
}

// Init подменяет логгер целиком (например, на zap.NewNop в тестах).
func Init(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

func get() (*zap.Logger, string) {
	mu.RLock()
	l, name := base, serviceName
	mu.RUnlock()
	if l != nil {
		return l, name
	}

	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base, _ = zap.NewProduction()
	}
	return base, serviceName
}

func Info(format string, args ...interface{}) {
	l, name := get()
	l.With(zap.String("service", name)).Info(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	l, name := get()
	l.With(zap.String("service", name)).Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	l, name := get()
	l.With(zap.String("service", name)).Fatal(fmt.Sprintf(format, args...))
}
