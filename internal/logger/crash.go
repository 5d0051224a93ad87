package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// CrashLogDir is the crash report directory inside the config dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is how many reports are kept.
	MaxCrashLogs = 10
)

// crashContext is what we know about the running command when it panics.
type crashContext struct {
	mu          sync.RWMutex
	fs          afero.Fs
	basePath    string
	version     string
	command     string
	description string
	lastPrompt  string
}

var globalContext = newCrashContext()

func newCrashContext() *crashContext {
	return &crashContext{fs: afero.NewOsFs()}
}

// SetBasePath sets the directory that holds crash_logs (the config dir).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand records the command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetDescription records the product description being generated.
func SetDescription(desc string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.description = truncateForLog(strings.TrimSpace(desc), 500)
}

// SetLastPrompt records the last prompt sent to the backend.
func SetLastPrompt(prompt string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastPrompt = truncateForLog(prompt, 2000)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog is one crash report.
type CrashLog struct {
	Timestamp   time.Time
	Version     string
	Command     string
	PanicValue  string
	StackTrace  string
	Description string
	LastPrompt  string
	GoVersion   string
	OS          string
	Arch        string
}

// HandlePanic recovers a panic, writes a crash report and exits.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	path, err := WriteCrashLog(newCrashLog(r))
	reportCrash(os.Stderr, r, path, err)
	os.Exit(1)
}

func reportCrash(w io.Writer, panicValue any, path string, writeErr error) {
	if writeErr != nil {
		fmt.Fprintf(w, "\n[CRASH] Failed to write crash log: %v\n", writeErr)
		fmt.Fprintf(w, "[CRASH] Panic: %v\n%s\n", panicValue, debug.Stack())
		return
	}
	fmt.Fprintf(w, "\nwireframe encountered an unexpected error.\n")
	fmt.Fprintf(w, "A crash log has been saved to:\n  %s\n\n", path)
}

func newCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:   time.Now(),
		Version:     globalContext.version,
		Command:     globalContext.command,
		PanicValue:  fmt.Sprintf("%v", panicValue),
		StackTrace:  string(debug.Stack()),
		Description: globalContext.description,
		LastPrompt:  globalContext.lastPrompt,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
}

// WriteCrashLog writes log under the crash directory and returns its path.
func WriteCrashLog(log CrashLog) (string, error) {
	fs, dir := crashFS()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	if err := cleanOldCrashLogs(fs, dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := filepath.Join(dir, crashLogName(log.Timestamp))
	if err := afero.WriteFile(fs, path, []byte(formatCrashLog(log)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashFS() (afero.Fs, string) {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	base := globalContext.basePath
	if base == "" {
		base = ".wireframe"
	}
	return globalContext.fs, filepath.Join(base, CrashLogDir)
}

func crashLogName(t time.Time) string {
	return fmt.Sprintf("crash_%s.log", t.Format("20060102_150405.000"))
}

func isCrashLog(name string) bool {
	return strings.HasPrefix(name, "crash_") && strings.HasSuffix(name, ".log")
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80) + "\n"
	section := func(title, body string) {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(strings.TrimRight(body, "\n") + "\n")
	}

	sb.WriteString(rule)
	sb.WriteString("WIREFRAME CRASH LOG\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	section("PANIC VALUE", log.PanicValue)
	section("STACK TRACE", log.StackTrace)
	if log.Description != "" {
		section("DESCRIPTION", log.Description)
	}
	if log.LastPrompt != "" {
		section("LAST PROMPT", log.LastPrompt)
	}

	sb.WriteString("\n" + rule)
	sb.WriteString("END OF CRASH LOG\n")
	sb.WriteString(rule)
	return sb.String()
}

// cleanOldCrashLogs keeps room for one more report within MaxCrashLogs.
func cleanOldCrashLogs(fs afero.Fs, dir string) error {
	logs, err := listCrashLogs(fs, dir)
	if err != nil {
		return err
	}
	excess := len(logs) - (MaxCrashLogs - 1)
	for i := 0; i < excess; i++ {
		if err := fs.Remove(logs[i]); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(logs[i]), err)
		}
	}
	return nil
}

func listCrashLogs(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var logs []string
	for _, e := range entries {
		if !e.IsDir() && isCrashLog(e.Name()) {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	// Names embed the timestamp, so lexical order is oldest first.
	sort.Strings(logs)
	return logs, nil
}

// ListCrashLogs returns the paths of stored crash reports, oldest first.
func ListCrashLogs() ([]string, error) {
	fs, dir := crashFS()
	return listCrashLogs(fs, dir)
}
