package log

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/motemen/go-loghttp"
)

// Logger is the global logger instance
var Logger *slog.Logger

// InitLogger initializes the global logger.
// The level is Debug when POSTVIEW_DEBUG is set.
func InitLogger() {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}

	if DebugEnabled() {
		opts.Level = slog.LevelDebug
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(Logger)

	loghttp.DefaultTransport.LogRequest = func(req *http.Request) {
		Debug("HTTP request",
			"method", req.Method,
			"url", req.URL.String(),
		)
	}

	loghttp.DefaultTransport.LogResponse = func(resp *http.Response) {
		Debug("HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL.String(),
			"status_code", resp.StatusCode,
			"content_length", resp.ContentLength,
		)
	}
}

func init() {
	InitLogger()
}

// DebugEnabled reports whether POSTVIEW_DEBUG is set
func DebugEnabled() bool {
	return os.Getenv("POSTVIEW_DEBUG") != ""
}

// HTTPClient returns a client whose transport logs every request at debug level
func HTTPClient() *http.Client {
	return &http.Client{Transport: loghttp.DefaultTransport}
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
