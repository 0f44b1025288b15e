package log

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	RegisterWriter(OutputConsole, DefaultConsoleWriterFactory)
	RegisterWriter(OutputFile, DefaultFileWriterFactory)
	DefaultLogger = NewZapLog(defaultConfig)
}

var (
	writers = make(map[string]FactoryInterface)
	logs    = make(map[string]Logger)

	DefaultLogFactory           = &Factory{}
	DefaultConsoleWriterFactory = &ConsoleWriterFactory{}
	DefaultFileWriterFactory    = &FileWriterFactory{}
)

type FactoryInterface interface {
	Setup(name string, configDec DecodeInterface) error
}

type DecodeInterface interface {
	Decode(interface{}) error
}

func Register(name string, logger Logger) {
	logs[name] = logger
}

// Get 获取句柄
func Get(name string) Logger {
	return logs[name]
}

func RegisterWriter(name string, writer FactoryInterface) {
	writers[name] = writer
}

// Factory 根据配置创建logger并注册
type Factory struct{}

func (f *Factory) Setup(name string, configDec DecodeInterface) error {
	if configDec == nil {
		return errors.New("log config decoder empty")
	}

	conf := Config{}
	if err := configDec.Decode(&conf); err != nil {
		return err
	}
	if len(conf) == 0 {
		return errors.New("log config output empty")
	}

	callerSkip := defaultCallerSkip
	for _, o := range conf {
		if o.CallerSkip != 0 {
			callerSkip = o.CallerSkip
		}
	}

	logger, err := newZapLogWithCallerSkip(conf, callerSkip)
	if err != nil {
		return err
	}

	Register(name, logger)
	if name == "default" {
		SetLogger(logger)
	}
	return nil
}

// Decoder 传给writer工厂的配置，工厂写回Core和级别
type Decoder struct {
	OutputConfig *OutputConfig
	Core         zapcore.Core
	ZapLevel     zap.AtomicLevel
}

// Decode 解析writer配置
func (d *Decoder) Decode(conf interface{}) error {
	output, ok := conf.(**OutputConfig)
	if !ok {
		return fmt.Errorf("decoder config type:%T invalid, not **OutputConfig", conf)
	}
	*output = d.OutputConfig
	return nil
}

func outputOf(configDec DecodeInterface) (*Decoder, *OutputConfig, error) {
	decoder, ok := configDec.(*Decoder)
	if !ok {
		return nil, nil, errors.New("log writer decoder type invalid")
	}
	conf := &OutputConfig{}
	if err := decoder.Decode(&conf); err != nil {
		return nil, nil, err
	}
	return decoder, conf, nil
}

type ConsoleWriterFactory struct{}

// Setup 加载配置 生成console输出的core
func (f *ConsoleWriterFactory) Setup(name string, configDec DecodeInterface) error {
	if configDec == nil {
		return errors.New("console writer decoder empty")
	}
	decoder, conf, err := outputOf(configDec)
	if err != nil {
		return err
	}
	decoder.Core, decoder.ZapLevel = newConsoleCore(conf)
	return nil
}

// FileWriterFactory 生成文件输出的core
type FileWriterFactory struct{}

func (f *FileWriterFactory) Setup(name string, configDec DecodeInterface) error {
	if configDec == nil {
		return errors.New("file writer decoder empty")
	}
	decoder, conf, err := outputOf(configDec)
	if err != nil {
		return err
	}

	// 复制一份，避免修改调用方的配置
	wc := conf.WriteConfig
	if wc.LogPath != "" {
		wc.Filename = filepath.Join(wc.LogPath, wc.Filename)
	}
	if wc.RollType == "" {
		wc.RollType = RollBySize
	}
	if wc.WriteMode == 0 {
		wc.WriteMode = WriteFast // 默认极速写模式，日志满丢弃，防止阻塞服务
	}
	fileConf := *conf
	fileConf.WriteConfig = wc

	decoder.Core, decoder.ZapLevel, err = newFileCore(&fileConf)
	return err
}
