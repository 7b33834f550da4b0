/**
 * @description
 * Structured logger for the opportunity-scoring backend.
 * Info messages go to stdout, errors to stderr, so log shippers don't
 * mislabel routine output as errors.
 *
 * @dependencies
 * - standard "os"
 * - standard "log"
 * - standard "fmt"
 */

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	// InfoLogger writes to stdout.
	InfoLogger *log.Logger
	// ErrorLogger writes to stderr.
	ErrorLogger *log.Logger
	// debugEnabled gates Debug() calls; set from LOG_LEVEL at startup via SetDebug.
	debugEnabled bool
)

func init() {
	InfoLogger = log.New(os.Stdout, "", 0)
	ErrorLogger = log.New(os.Stderr, "", 0)
}

// SetDebug toggles whether Debug() emits anything. level is matched
// case-insensitively against "debug".
func SetDebug(level string) {
	debugEnabled = strings.EqualFold(level, "debug")
}

// Info logs an info message to stdout
func Info(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	InfoLogger.Println(message)
}

// Debug logs a message to stdout only when the configured log level is "debug".
// Used for the per-market skip/overwrite paths the scoring cycle and rule
// change-detection are allowed to log at debug volume.
func Debug(format string, v ...interface{}) {
	if !debugEnabled {
		return
	}
	message := fmt.Sprintf(format, v...)
	InfoLogger.Println("[debug] " + message)
}

// Error logs an error message to stderr
func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	ErrorLogger.Println(message)
}

// Fatal logs an error and exits
func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	ErrorLogger.Fatalln(message)
}

// New creates a new logger that writes to the specified writer
func New(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

