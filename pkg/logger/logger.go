package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// Category represents a log category
type Category string

const (
	CategoryAPI       Category = "api"
	CategoryWebSocket Category = "websocket"
	CategoryStore     Category = "store"
	CategorySeed      Category = "seed"
	CategorySession   Category = "session"
	CategoryScheduler Category = "scheduler"
	CategoryStartup   Category = "startup"
)

// AllCategories lists every category that gets its own log file.
var AllCategories = []Category{
	CategoryAPI,
	CategoryWebSocket,
	CategoryStore,
	CategorySeed,
	CategorySession,
	CategoryScheduler,
	CategoryStartup,
}

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes one JSON-lines file per category and day.
type Logger struct {
	mu       sync.Mutex
	logDir   string
	writers  map[Category]*os.File
	console  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
	})
	return err
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logDir:   logDir,
		writers:  make(map[Category]*os.File),
		console:  console,
		minLevel: LevelDebug,
	}, nil
}

// SetMinLevel drops entries below level.
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := levelRank[level]; ok {
		l.minLevel = level
	}
}

func fileNameFor(category Category, day time.Time) string {
	return fmt.Sprintf("%s_%s.log", category, day.Format("2006-01-02"))
}

// getWriter returns or creates a file writer for the category
func (l *Logger) getWriter(category Category) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	filename := fileNameFor(category, time.Now())

	if writer, exists := l.writers[category]; exists {
		if info, err := writer.Stat(); err == nil && info.Name() == filename {
			return writer, nil
		}
		writer.Close()
	}

	file, err := os.OpenFile(filepath.Join(l.logDir, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l.writers[category] = file
	return file, nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	l.mu.Lock()
	min := l.minLevel
	l.mu.Unlock()
	if levelRank[entry.Level] < levelRank[min] {
		return
	}

	entry.Timestamp = time.Now()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("Error marshaling log entry: %v\n", err)
		return
	}

	writer, err := l.getWriter(entry.Category)
	if err != nil {
		fmt.Printf("Error getting log writer: %v\n", err)
	} else {
		fmt.Fprintln(writer, string(jsonData))
	}

	if l.console {
		l.printToConsole(entry)
	}
}

func (l *Logger) printToConsole(entry LogEntry) {
	levelColors := map[Level]string{
		LevelDebug: "\033[36m",
		LevelInfo:  "\033[32m",
		LevelWarn:  "\033[33m",
		LevelError: "\033[31m",
	}
	reset := "\033[0m"

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]%s [%s] [%s] %s: %s",
		levelColors[entry.Level],
		entry.Level,
		reset,
		entry.Timestamp.Format("15:04:05.000"),
		entry.Category,
		entry.Action,
		entry.Message,
	)
	if entry.SessionID != "" {
		fmt.Fprintf(&b, " (session: %s)", entry.SessionID)
	}
	if entry.Duration != "" {
		fmt.Fprintf(&b, " (duration: %s)", entry.Duration)
	}
	if entry.Error != "" {
		fmt.Fprintf(&b, " ERROR: %s", entry.Error)
	}
	if len(entry.Data) > 0 {
		dataJSON, _ := json.MarshalIndent(entry.Data, "    ", "  ")
		fmt.Fprintf(&b, "\n    Data: %s", string(dataJSON))
	}
	fmt.Println(b.String())
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, writer := range l.writers {
		writer.Close()
	}
	l.writers = make(map[Category]*os.File)
}

// Default returns the default logger
func Default() *Logger {
	if defaultLogger == nil {
		Init("logs", true)
	}
	return defaultLogger
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Info(CategoryStartup, action, message, data)
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryStartup, action, message, err, data)
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryStartup, action, message, data)
}

// Seed logs dataset bootstrap events
func Seed(action, message string, data map[string]interface{}) {
	Info(CategorySeed, action, message, data)
}

// SeedError is the diagnostic channel for dataset fetch failures.
func SeedError(action, message string, err error, data map[string]interface{}) {
	Error(CategorySeed, action, message, err, data)
}

// Store logs key-value store operations
func Store(action, message string, data map[string]interface{}) {
	Debug(CategoryStore, action, message, data)
}

// StoreError logs key-value store failures
func StoreError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryStore, action, message, err, data)
}

// Session logs session lifecycle events
func Session(sessionID, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:     LevelInfo,
		Category:  CategorySession,
		Action:    action,
		Message:   message,
		Data:      data,
		SessionID: sessionID,
	})
}

// WebSocket logs WebSocket related events
func WebSocket(action, message string, data map[string]interface{}) {
	Info(CategoryWebSocket, action, message, data)
}

// WebSocketError logs WebSocket errors
func WebSocketError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryWebSocket, action, message, err, data)
}

// Scheduler logs scheduler events
func Scheduler(action, message string, data map[string]interface{}) {
	Info(CategoryScheduler, action, message, data)
}

// SchedulerWarn logs scheduler warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryScheduler, action, message, data)
}

// SchedulerError logs scheduler errors
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryScheduler, action, message, err, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelInfo,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelError,
		Category: category,
		Action:   action,
		Message:  message,
		Error:    errString(err),
		Data:     data,
	})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelDebug,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelWarn,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// GetTypeName returns the dynamic type name of v, for diagnostics.
func GetTypeName(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // empty = all
	Level    Level    // empty = all
	Lines    int      // default 100, max 1000
	Search   string   // matched against message, action and error
}

// ReadLogs reads log entries from files
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads today's entries, newest first.
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000
	}

	categories := AllCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}

	search := strings.ToLower(opts.Search)
	today := time.Now()
	var entries []LogEntry

	for _, cat := range categories {
		file, err := os.Open(filepath.Join(l.logDir, fileNameFor(cat, today)))
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var entry LogEntry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}

			if opts.Level != "" && entry.Level != opts.Level {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(entry.Message), search) &&
				!strings.Contains(strings.ToLower(entry.Action), search) &&
				!strings.Contains(strings.ToLower(entry.Error), search) {
				continue
			}

			entries = append(entries, entry)
		}
		file.Close()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}

	return entries, nil
}

// GetLogDir returns the log directory path
func GetLogDir() string {
	return Default().logDir
}

// ListLogFiles returns list of log files
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

// ListLogFiles returns list of log files in the log directory
func (l *Logger) ListLogFiles() ([]string, error) {
	var files []string

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
