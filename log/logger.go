package log

// Level 日志级别
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

func (l Level) String() string {
	return levelNames[l]
}

// 输出端名字
const (
	OutputConsole = "console"
	OutputFile    = "file"
)

// 文件滚动方式
const (
	RollBySize = "size"
	RollByTime = "time"
)

// 文件写入模式
const (
	WriteSync  = 1 // 同步写
	WriteAsync = 2 // 异步写，队列满时阻塞
	WriteFast  = 3 // 异步写，队列满时丢弃
)

// Logger 日志接口
type Logger interface {
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	// Sync 刷新缓冲中的日志
	Sync() error

	// SetLevel 设置第output个输出端的日志级别
	SetLevel(output string, level Level)
	GetLevel(output string) Level

	// WithFields 生成带有固定kv字段的logger，fields必须成对出现
	WithFields(fields ...string) Logger
}
