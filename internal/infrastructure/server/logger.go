package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/infrastructure/config"
)

// InterceptorLogger adapts a logrus logger to the grpc logging interceptor.
func InterceptorLogger(logger logrus.FieldLogger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		entry := logger.WithFields(pairsToFields(fields))
		switch lvl {
		case logging.LevelDebug:
			entry.Debug(msg)
		case logging.LevelWarn:
			entry.Warn(msg)
		case logging.LevelError:
			entry.Error(msg)
		default:
			entry.Info(msg)
		}
	})
}

// pairsToFields turns alternating key/value arguments into logrus fields, skipping non-string keys.
func pairsToFields(kv []any) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			fields[key] = kv[i+1]
		}
	}
	return fields
}

// Logger logs one line per connect request to w.
func Logger(w io.Writer) connect.UnaryInterceptorFunc {
	logger := slog.New(slog.NewTextHandler(w, nil))
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			duration := time.Since(start)
			code := connect.CodeOf(err)
			level := determineLogLevel(code, err)
			attrs := buildLogAttributes(req, code, duration, err)

			logger.LogAttrs(ctx, level, "request completed", attrs...)

			return resp, err
		}
	}
}

func determineLogLevel(code connect.Code, err error) slog.Level {
	if err == nil {
		return slog.LevelInfo
	}
	switch code {
	case connect.CodeInvalidArgument, connect.CodeFailedPrecondition, connect.CodeNotFound,
		connect.CodeAlreadyExists, connect.CodeCanceled:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func buildLogAttributes(req connect.AnyRequest, code connect.Code, duration time.Duration, err error) []slog.Attr {
	status := "ok"
	if err != nil {
		status = code.String()
	}
	attrs := []slog.Attr{
		slog.String("procedure", req.Spec().Procedure),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	appendStringAttr(&attrs, "http_method", req.HTTPMethod())
	appendStringAttr(&attrs, "protocol", req.Peer().Protocol)
	appendStringAttr(&attrs, "peer_addr", req.Peer().Addr)

	header := req.Header()
	appendStringAttr(&attrs, "user_agent", header.Get("User-Agent"))
	appendStringAttr(&attrs, "request_id", header.Get("X-Request-Id"))
	appendStringAttr(&attrs, "client_ip", firstForwardedFor(header))
	if cl := contentLength(header); cl >= 0 {
		attrs = append(attrs, slog.Int("request_bytes", cl))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	return attrs
}

func appendStringAttr(attrs *[]slog.Attr, key, value string) {
	if value != "" {
		*attrs = append(*attrs, slog.String(key, value))
	}
}

func firstForwardedFor(header http.Header) string {
	for _, part := range strings.Split(header.Get("X-Forwarded-For"), ",") {
		if candidate := strings.TrimSpace(part); candidate != "" {
			return candidate
		}
	}
	return ""
}

func contentLength(header http.Header) int {
	if parsed, err := strconv.Atoi(header.Get("Content-Length")); err == nil {
		return parsed
	}
	return -1
}

// NewLogger builds a configured logrus logger from application config.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	switch cfg.Log.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "", "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Log.Format)
	}
	return logger, nil
}
