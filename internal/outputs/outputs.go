// Package outputs provides GitHub Actions output and logging utilities.
package outputs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	stdout io.Writer = os.Stdout
)

// SetWriter redirects log and fallback output to w and returns a function
// restoring the previous writer.
func SetWriter(w io.Writer) (restore func()) {
	mu.Lock()
	prev := stdout
	stdout = w
	mu.Unlock()
	return func() {
		mu.Lock()
		stdout = prev
		mu.Unlock()
	}
}

func printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(stdout, format, args...)
}

// SetOutput writes a value to GITHUB_OUTPUT.
func SetOutput(name, value string) {
	outputFile := os.Getenv("GITHUB_OUTPUT")
	if outputFile == "" {
		printf("::set-output name=%s::%s\n", name, value)
		return
	}

	// Use the log writer directly to avoid a second file descriptor that
	// races with it and causes truncated output.
	var w io.Writer
	switch outputFile {
	case "/dev/stdout":
		mu.Lock()
		w = stdout
		mu.Unlock()
	case "/dev/stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			printf("::set-output name=%s::%s\n", name, value)
			return
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if strings.Contains(value, "\n") {
		delimiter := fmt.Sprintf("ghadelimiter_%d", time.Now().UnixNano())
		_, _ = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		_, _ = fmt.Fprintf(w, "%s=%s\n", name, value)
	}
}

// SetJSONOutput marshals v and writes it as output name.
func SetJSONOutput(name string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	SetOutput(name, string(data))
	return string(data), nil
}

// SetBoolOutput writes "true" or "false" as output name.
func SetBoolOutput(name string, value bool) {
	SetOutput(name, fmt.Sprintf("%t", value))
}

// LogInfo prints an info message.
func LogInfo(msg string) {
	printf("%s\n", msg)
}

// LogDebug prints a debug message, shown only when step debug logging is on.
func LogDebug(msg string) {
	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		printf("::debug::%s\n", line)
	}
}

// LogNotice prints a notice message.
func LogNotice(msg string) {
	printf("::notice::%s\n", msg)
}

// LogError prints an error message.
func LogError(msg string) {
	printf("::error::%s\n", msg)
}
