// Package logger 基于 logrus 的日志输出，并适配为 kratos log.Logger。
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
)

const callerKey = "caller"

// CustomFormatter 自定义日志格式: [TIME] [LEVEL] [FILE:LINE] MSG k=v...
type CustomFormatter struct{}

// Format 实现 logrus.Formatter 接口
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if c, ok := entry.Data[callerKey]; ok {
		fileLine = fmt.Sprint(c)
	} else if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	// 对齐级别长度，例如 INFO, WARN, ERRO
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	timeStr := entry.Time.Format("2006-01-02 15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] [%s] %s", timeStr, level, fileLine, entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		if k == callerKey {
			continue
		}
		fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

// New 创建 logrus 实例，同时输出到控制台和文件（filePath 为空时只输出到控制台）
func New(levelStr string, filePath string) (*logrus.Logger, func(), error) {
	l := logrus.New()
	l.SetFormatter(&CustomFormatter{})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	cleanup := func() {}
	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, file)
		cleanup = func() { _ = file.Close() }
	}
	l.SetOutput(io.MultiWriter(writers...))

	return l, cleanup, nil
}

// Logger 将 kratos 的 key/value 日志写入 logrus
type Logger struct {
	log *logrus.Logger
}

var _ klog.Logger = (*Logger)(nil)

// NewLogger 包装 logrus 实例
func NewLogger(l *logrus.Logger) *Logger {
	return &Logger{log: l}
}

// Log 实现 kratos log.Logger
func (l *Logger) Log(level klog.Level, keyvals ...interface{}) error {
	lv := toLogrusLevel(level)
	if !l.log.IsLevelEnabled(lv) {
		return nil
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}

	var msg string
	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		switch key {
		case klog.DefaultMessageKey:
			msg = fmt.Sprint(keyvals[i+1])
		case callerKey:
			fields[callerKey] = keyvals[i+1]
		case "ts":
			// logrus 自带时间
		default:
			fields[key] = keyvals[i+1]
		}
	}
	l.log.WithFields(fields).Log(lv, msg)
	return nil
}

func toLogrusLevel(level klog.Level) logrus.Level {
	switch level {
	case klog.LevelDebug:
		return logrus.DebugLevel
	case klog.LevelWarn:
		return logrus.WarnLevel
	case klog.LevelError:
		return logrus.ErrorLevel
	case klog.LevelFatal:
		// Fatal 交给调用方处理退出
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func sortedKeys(m logrus.Fields) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
