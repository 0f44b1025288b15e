package log

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// Config log config每个log可以支持多个output
type Config []OutputConfig

type OutputConfig struct {
	Writer      string      `yaml:"writer"`
	WriteConfig WriteConfig `yaml:"writer_config"`

	Formatter    string       `yaml:"formatter"`
	FormatConfig FormatConfig `yaml:"formatter_config"`

	// Level 控制日志级别 debug info error
	Level string `yaml:"level"`

	// CallerSkip 控制log函数嵌套深度
	CallerSkip int `yaml:"caller_skip"`
}

type TimeSplit string

const (
	// Hour 按小时分割
	Hour TimeSplit = "hour"

	// Day 按天分割
	Day TimeSplit = "day"

	// Month 按月分割
	Month TimeSplit = "month"

	// Year 按年分割
	Year TimeSplit = "year"
)

// Format 时间分割对应的strftime文件名后缀
func (t TimeSplit) Format() string {
	switch t {
	case Hour:
		return ".%Y%m%d%H"
	case Month:
		return ".%Y%m"
	case Year:
		return ".%Y"
	default:
		return ".%Y%m%d"
	}
}

type WriteConfig struct {
	// LogPath 日志路径名
	LogPath string `yaml:"log_path"`
	// Filename 日志路径文件名
	Filename string `yaml:"filename"`
	// WriteMode 日志写入模式 1.同步，2.异步，3.极速(队列满丢弃)
	WriteMode int `yaml:"write_mode"`
	// RollType 文件滚动类型，按大小分割文件，按时间分割文件
	RollType string `yaml:"roll_type"`
	// MaxDay 日志最大保留天数
	MaxDay int `yaml:"max_day"`
	// MaxHistory 日志最大历史文件数
	MaxHistory int `yaml:"max_history"`

	// MaxSize 日志最大大小，单位MB
	MaxSize int `yaml:"max_size"`

	// 按时间分割时，作为时间分割文件的时间单位
	TimeSplit TimeSplit `yaml:"time_split"`
}

type FormatConfig struct {
	// TimeFmt 日志输出时间格式
	TimeFmt string `yaml:"time_fmt"`

	// TimeKey 日志输出时间Key
	TimeKey string `yaml:"time_key"`

	// LevelKey 日志级别输出Key
	LevelKey string `yaml:"level_key"`

	// NameKey 日志名称Key
	NameKey string `yaml:"name_key"`

	// CallerKey 日志输出调用者Key
	CallerKey string `yaml:"caller_key"`

	// MessageKey 日志输出消息体Key
	MessageKey string `yaml:"message_key"`

	// StacktraceKey 日志输出堆栈trace key
	StacktraceKey string `yaml:"stacktrace_key"`
}

// LoadConfig 解析yaml格式的日志配置
func LoadConfig(data []byte) (Config, error) {
	conf := Config{}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	if len(conf) == 0 {
		return nil, errors.New("log config output empty")
	}
	return conf, nil
}

// SetupYAML 解析yaml配置并注册名为name的logger，name为default时替换默认logger
func SetupYAML(name string, data []byte) error {
	return DefaultLogFactory.Setup(name, &yamlDecoder{data: data})
}

type yamlDecoder struct {
	data []byte
}

func (d *yamlDecoder) Decode(conf interface{}) error {
	return yaml.Unmarshal(d.data, conf)
}
