// Package log 提供基于zap的日志实现
//
// 支持控制台与文件双输出、日志轮转（lumberjack）、结构化字段。
// 所有模块通过 pkg/interfaces/infrastructure/log.Logger 使用本实现。
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	logInterface "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
)

// Options 日志实现的配置项
type Options struct {
	Level            string // debug/info/warn/error/fatal
	FilePath         string // 为空时只输出到控制台
	ToConsole        bool   // 是否同时输出到stdout
	MaxSizeMB        int    // 单个日志文件上限（MB）
	MaxBackups       int    // 最多保留的轮转文件数
	MaxAgeDays       int    // 轮转文件最长保留天数
	Compress         bool   // 是否压缩轮转文件
	EnableCaller     bool   // 是否记录调用位置
	EnableStacktrace bool   // Error及以上是否附带堆栈
}

// DefaultOptions 返回默认日志配置：info级别、仅控制台输出
func DefaultOptions() *Options {
	return &Options{
		Level:      "info",
		ToConsole:  true,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}
}

// Logger 实现 log.Logger 接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

var (
	globalLogger logInterface.Logger
	mu           sync.RWMutex
)

func init() {
	logger, err := New(DefaultOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化默认日志器失败: %v\n", err)
		return
	}
	SetLogger(logger)
}

// zapLevel 把级别字符串翻译为zap级别，未知级别回退到info
func zapLevel(level string) zapcore.Level {
	switch logInterface.Level(level) {
	case logInterface.DebugLevel:
		return zapcore.DebugLevel
	case logInterface.InfoLevel:
		return zapcore.InfoLevel
	case logInterface.WarnLevel:
		return zapcore.WarnLevel
	case logInterface.ErrorLevel:
		return zapcore.ErrorLevel
	case logInterface.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// fileWriter 创建带轮转的日志文件写入器
func fileWriter(path string, opts *Options) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}), nil
}

// New 根据配置创建日志记录器
func New(opts *Options) (logInterface.Logger, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	level := zap.NewAtomicLevelAt(zapLevel(opts.Level))

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if opts.ToConsole || opts.FilePath == "" {
		consoleConfig := encoderConfig
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if opts.FilePath != "" {
		writer, err := fileWriter(opts.FilePath, opts)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			writer,
			level,
		))
	}

	zapOptions := []zap.Option{}
	if opts.EnableCaller {
		// 跳过一层封装，使调用位置指向真实业务代码
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if opts.EnableStacktrace {
		zapOptions = append(zapOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zapOptions...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// toZapFields 把键值对参数转换为zap字段
//
// 参数必须成对出现：key1, value1, key2, value2, ...
// 奇数个参数时丢弃最后一个。
func toZapFields(args ...interface{}) []zap.Field {
	if len(args)%2 != 0 {
		args = args[:len(args)-1]
	}
	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

func (l *Logger) Debug(msg string) { l.sugar.Debug(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

func (l *Logger) Info(msg string) { l.sugar.Info(msg) }

func (l *Logger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

func (l *Logger) Warn(msg string) { l.sugar.Warn(msg) }

func (l *Logger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

func (l *Logger) Error(msg string) { l.sugar.Error(msg) }

func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

func (l *Logger) Fatal(msg string) { l.sugar.Fatal(msg) }

func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 返回带有额外字段的Logger
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	return &Logger{
		zapLogger: l.zapLogger.With(toZapFields(args...)...),
		sugar:     l.sugar.With(args...),
	}
}

// Sync 同步日志缓冲区到输出
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// GetZapLogger 获取底层的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}
