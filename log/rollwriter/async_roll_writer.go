package rollwriter

import (
	"bytes"
	"errors"
	"io"
	"time"
)

type AsyncOptions struct {
	LogQueueSize      int
	WriteLogSize      int  // 刷盘的大小，单位字节
	WriterLogInterval int  // 刷盘的间隔时间，单位ms
	CanDropLog        bool // 队列满时是否丢弃日志
}

type AsyncOption func(*AsyncOptions)

func WithLogQueueSize(n int) AsyncOption {
	return func(opts *AsyncOptions) {
		opts.LogQueueSize = n
	}
}

func WithWriteLogSize(size int) AsyncOption {
	return func(opts *AsyncOptions) {
		opts.WriteLogSize = size
	}
}

func WithWriteLogInterval(interval int) AsyncOption {
	return func(opts *AsyncOptions) {
		opts.WriterLogInterval = interval
	}
}

func WithCanDropLog(drop bool) AsyncOption {
	return func(opts *AsyncOptions) {
		opts.CanDropLog = drop
	}
}

// AsyncRollWriter 异步批量写入的writer
type AsyncRollWriter struct {
	logger io.Writer
	opts   *AsyncOptions

	logChan  chan []byte
	syncChan chan chan struct{}
}

func NewAsyncRollWriter(logger io.Writer, opt ...AsyncOption) *AsyncRollWriter {
	opts := &AsyncOptions{
		LogQueueSize:      1000,
		WriteLogSize:      2 * 1024,
		WriterLogInterval: 100,
	}
	for _, o := range opt {
		o(opts)
	}

	w := &AsyncRollWriter{
		logger:   logger,
		opts:     opts,
		logChan:  make(chan []byte, opts.LogQueueSize),
		syncChan: make(chan chan struct{}),
	}
	go w.batchWriteLog()
	return w
}

func (w *AsyncRollWriter) Write(data []byte) (int, error) {
	log := make([]byte, len(data))
	copy(log, data)
	if w.opts.CanDropLog {
		select {
		case w.logChan <- log:
		default:
			return 0, errors.New("log is full, drop")
		}
	} else {
		w.logChan <- log
	}
	return len(data), nil
}

// Sync 等待队列中已有的日志写完
func (w *AsyncRollWriter) Sync() error {
	done := make(chan struct{})
	w.syncChan <- done
	<-done
	return nil
}

func (w *AsyncRollWriter) Close() error {
	return w.Sync()
}

func (w *AsyncRollWriter) batchWriteLog() {
	buffer := bytes.NewBuffer(make([]byte, 0, w.opts.WriteLogSize*2))
	ticker := time.NewTicker(time.Millisecond * time.Duration(w.opts.WriterLogInterval))
	defer ticker.Stop()

	flush := func() {
		if buffer.Len() > 0 {
			_, _ = w.logger.Write(buffer.Bytes())
			buffer.Reset()
		}
	}

	for {
		select {
		case <-ticker.C:
			flush()
		case data := <-w.logChan:
			buffer.Write(data)
			if buffer.Len() >= w.opts.WriteLogSize {
				flush()
			}
		case done := <-w.syncChan:
			// 先把队列中剩余的日志取出来
			for n := len(w.logChan); n > 0; n-- {
				buffer.Write(<-w.logChan)
			}
			flush()
			close(done)
		}
	}
}
