package utils

import (
	"log"
	"os"
)

// Notifier is the notification surface used by the screen services.
// Implementations must be non-blocking and fire-and-forget.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Logger is a simple logger for the application. It also implements
// Notifier so screen-level success/error notifications land in the log.
type Logger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
}

// NewLogger creates a new logger
func NewLogger() *Logger {
	return &Logger{
		infoLog:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLog: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLog.Printf(format, v...)
}

// Error logs an error notification
func (l *Logger) Error(message string) {
	l.errorLog.Print(message)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.errorLog.Printf(format, v...)
}

// Success logs a success notification
func (l *Logger) Success(message string) {
	l.infoLog.Print(message)
}
