package log

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hust-tianbo/go_roaring/log/rollwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 包级函数 -> zapLog方法 -> zapLog.log -> zap
const defaultCallerSkip = 3

var defaultConfig = []OutputConfig{
	{
		Writer:    OutputConsole,
		Level:     "info",
		Formatter: "console",
	},
}

// Levels zapcore level
var Levels = map[string]zapcore.Level{
	"":      zapcore.DebugLevel,
	"trace": zapcore.DebugLevel,
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

var levelToZapLevel = map[Level]zapcore.Level{
	LevelTrace: zapcore.DebugLevel,
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
}

var zapLevelToLevel = map[zapcore.Level]Level{
	zapcore.DebugLevel: LevelDebug,
	zapcore.InfoLevel:  LevelInfo,
	zapcore.WarnLevel:  LevelWarn,
	zapcore.ErrorLevel: LevelError,
	zapcore.FatalLevel: LevelFatal,
}

// NewZapLog 创建一个zap默认实现的logger，失败返回nil
func NewZapLog(c Config) Logger {
	logger, err := newZapLogWithCallerSkip(c, defaultCallerSkip)
	if err != nil {
		fmt.Printf("new zap log fail:%v\n", err)
		return nil
	}
	return logger
}

func newZapLogWithCallerSkip(c Config, callerSkip int) (*zapLog, error) {
	cores := make([]zapcore.Core, 0, len(c))
	levels := make([]zap.AtomicLevel, 0, len(c))
	for i := range c {
		o := c[i]
		writer, ok := writers[o.Writer]
		if !ok {
			return nil, fmt.Errorf("log writer core:%s no registered", o.Writer)
		}

		decoder := &Decoder{OutputConfig: &o}
		if err := writer.Setup(o.Writer, decoder); err != nil {
			return nil, fmt.Errorf("log writer setup core:%s fail:%w", o.Writer, err)
		}

		cores = append(cores, decoder.Core)
		levels = append(levels, decoder.ZapLevel)
	}

	logger := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCallerSkip(callerSkip),
		zap.AddCaller(),
	)
	return &zapLog{levels: levels, logger: logger}, nil
}

func newConsoleCore(c *OutputConfig) (zapcore.Core, zap.AtomicLevel) {
	lvl := zap.NewAtomicLevelAt(Levels[c.Level])
	return zapcore.NewCore(newEncoder(c), zapcore.Lock(os.Stdout), lvl), lvl
}

func newFileCore(c *OutputConfig) (zapcore.Core, zap.AtomicLevel, error) {
	opts := []rollwriter.Option{
		rollwriter.WithMaxDay(c.WriteConfig.MaxDay),
		rollwriter.WithMaxHistory(c.WriteConfig.MaxHistory),
		rollwriter.WithMaxSize(int64(c.WriteConfig.MaxSize)),
	}
	// 按时间滚动时文件名带上时间后缀
	if c.WriteConfig.RollType == RollByTime {
		opts = append(opts, rollwriter.WithTimeFormat(c.WriteConfig.TimeSplit.Format()))
	}

	writer, err := rollwriter.NewRollWriter(c.WriteConfig.Filename, opts...)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	var ws zapcore.WriteSyncer
	if c.WriteConfig.WriteMode == WriteSync {
		ws = zapcore.AddSync(writer)
	} else {
		ws = rollwriter.NewAsyncRollWriter(writer,
			rollwriter.WithCanDropLog(c.WriteConfig.WriteMode == WriteFast),
		)
	}

	lvl := zap.NewAtomicLevelAt(Levels[c.Level])
	return zapcore.NewCore(newEncoder(c), ws, lvl), lvl, nil
}

func newEncoder(cfg *OutputConfig) zapcore.Encoder {
	zapCfg := zapcore.EncoderConfig{
		MessageKey:     GetLogEncoderKey("M", cfg.FormatConfig.MessageKey),
		LevelKey:       GetLogEncoderKey("L", cfg.FormatConfig.LevelKey),
		TimeKey:        GetLogEncoderKey("T", cfg.FormatConfig.TimeKey),
		NameKey:        GetLogEncoderKey("N", cfg.FormatConfig.NameKey),
		CallerKey:      GetLogEncoderKey("C", cfg.FormatConfig.CallerKey),
		StacktraceKey:  GetLogEncoderKey("S", cfg.FormatConfig.StacktraceKey),
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     NewTimeEncoder(cfg.FormatConfig.TimeFmt),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Formatter == "json" {
		return zapcore.NewJSONEncoder(zapCfg)
	}
	return zapcore.NewConsoleEncoder(zapCfg)
}

func GetLogEncoderKey(defaultKey, key string) string {
	if key == "" {
		return defaultKey
	}
	return key
}

func NewTimeEncoder(format string) zapcore.TimeEncoder {
	switch format {
	case "":
		return func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(t.Local().Format("2006-01-02 15:04:05.000"))
		}
	case "seconds": // 序列化成秒
		return zapcore.EpochTimeEncoder
	case "milliseconds": // 序列化成毫秒
		return zapcore.EpochMillisTimeEncoder
	case "nanoseconds":
		return zapcore.EpochNanosTimeEncoder
	default:
		// 自定义的时间格式
		return func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(t.Format(format))
		}
	}
}

// zapLog 基于zaplogger的Logger实现
type zapLog struct {
	levels []zap.AtomicLevel
	logger *zap.Logger
}

// WithFields 设置一些业务自定义数据到每条log里, fields 必须kv成对出现
func (l *zapLog) WithFields(fields ...string) Logger {
	zapfields := make([]zap.Field, len(fields)/2)
	for index := range zapfields {
		zapfields[index] = zap.String(fields[2*index], fields[2*index+1])
	}
	return &zapLog{levels: l.levels, logger: l.logger.With(zapfields...)}
}

func (l *zapLog) log(level zapcore.Level, msg func() string) {
	if ce := l.logger.Check(level, ""); ce != nil {
		ce.Message = msg()
		ce.Write()
	}
}

func (l *zapLog) Trace(args ...interface{}) {
	l.log(zapcore.DebugLevel, func() string { return fmt.Sprint(args...) })
}

func (l *zapLog) Tracef(format string, args ...interface{}) {
	l.log(zapcore.DebugLevel, func() string { return fmt.Sprintf(format, args...) })
}

func (l *zapLog) Debug(args ...interface{}) {
	l.log(zapcore.DebugLevel, func() string { return fmt.Sprint(args...) })
}

func (l *zapLog) Debugf(format string, args ...interface{}) {
	l.log(zapcore.DebugLevel, func() string { return fmt.Sprintf(format, args...) })
}

func (l *zapLog) Info(args ...interface{}) {
	l.log(zapcore.InfoLevel, func() string { return fmt.Sprint(args...) })
}

func (l *zapLog) Infof(format string, args ...interface{}) {
	l.log(zapcore.InfoLevel, func() string { return fmt.Sprintf(format, args...) })
}

func (l *zapLog) Warn(args ...interface{}) {
	l.log(zapcore.WarnLevel, func() string { return fmt.Sprint(args...) })
}

func (l *zapLog) Warnf(format string, args ...interface{}) {
	l.log(zapcore.WarnLevel, func() string { return fmt.Sprintf(format, args...) })
}

func (l *zapLog) Error(args ...interface{}) {
	l.log(zapcore.ErrorLevel, func() string { return fmt.Sprint(args...) })
}

func (l *zapLog) Errorf(format string, args ...interface{}) {
	l.log(zapcore.ErrorLevel, func() string { return fmt.Sprintf(format, args...) })
}

func (l *zapLog) Fatal(args ...interface{}) {
	l.logger.Fatal(fmt.Sprint(args...))
}

func (l *zapLog) Fatalf(format string, args ...interface{}) {
	l.logger.Fatal(fmt.Sprintf(format, args...))
}

// Sync calls the zap logger's Sync method, flushing any buffered log entries.
func (l *zapLog) Sync() error {
	return l.logger.Sync()
}

// SetLevel 设置输出端日志级别
func (l *zapLog) SetLevel(output string, level Level) {
	i, e := strconv.Atoi(output)
	if e != nil || i < 0 || i >= len(l.levels) {
		return
	}
	l.levels[i].SetLevel(levelToZapLevel[level])
}

// GetLevel 获取输出端日志级别
func (l *zapLog) GetLevel(output string) Level {
	i, e := strconv.Atoi(output)
	if e != nil || i < 0 || i >= len(l.levels) {
		return LevelDebug
	}
	return zapLevelToLevel[l.levels[i].Level()]
}
