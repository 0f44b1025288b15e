package rollwriter

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lestrrat-go/strftime"
)

var _ io.WriteCloser = (*RollWriter)(nil)

// 每隔reopenInterval秒重新检查一次文件名
const reopenInterval = 10

type Options struct {
	MaxSize    int64  // 日志文件最大大小，字节
	MaxHistory int    // 保留的最大文件数
	MaxDay     int    // 日志最大保留天数
	TimeFormat string // 按时间分割文件的时间格式
}

type Option func(*Options)

// WithMaxSize 单位MB
func WithMaxSize(size int64) Option {
	return func(opt *Options) {
		opt.MaxSize = size * 1024 * 1024
	}
}

func WithMaxDay(day int) Option {
	return func(opt *Options) {
		opt.MaxDay = day
	}
}

func WithMaxHistory(n int) Option {
	return func(opt *Options) {
		opt.MaxHistory = n
	}
}

func WithTimeFormat(s string) Option {
	return func(opt *Options) {
		opt.TimeFormat = s
	}
}

// RollWriter 按大小或时间滚动的文件writer
type RollWriter struct {
	filePath string
	opts     *Options

	pattern  *strftime.Strftime // 文件名模式
	currDir  string
	currPath string
	currSize int64
	currFile atomic.Pointer[os.File]
	openTime int64

	mu       sync.Mutex
	once     sync.Once
	notifyCh chan struct{} // 触发过期日志清理
}

func NewRollWriter(filePath string, opt ...Option) (*RollWriter, error) {
	opts := &Options{}
	for _, o := range opt {
		o(opts)
	}

	if filePath == "" {
		return nil, errors.New("no file path")
	}

	pattern, err := strftime.New(filePath + opts.TimeFormat)
	if err != nil {
		return nil, err
	}

	w := &RollWriter{
		filePath: filePath,
		opts:     opts,
		pattern:  pattern,
		currDir:  filepath.Dir(filePath),
	}
	if err := os.MkdirAll(w.currDir, 0755); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RollWriter) Write(v []byte) (int, error) {
	if w.currFile.Load() == nil || time.Now().Unix()-atomic.LoadInt64(&w.openTime) > reopenInterval {
		w.mu.Lock()
		w.reopenFile()
		w.mu.Unlock()
	}

	f := w.currFile.Load()
	if f == nil {
		return 0, errors.New("curr file not exist")
	}

	n, err := f.Write(v)
	atomic.AddInt64(&w.currSize, int64(n))

	if w.opts.MaxSize > 0 && atomic.LoadInt64(&w.currSize) >= w.opts.MaxSize {
		w.mu.Lock()
		w.backupFile()
		w.mu.Unlock()
	}
	return n, err
}

func (w *RollWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	f := w.currFile.Swap(nil)
	if f == nil {
		return nil
	}
	return f.Close()
}

// CurrentPath 当前正在写入的文件
func (w *RollWriter) CurrentPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currPath
}

// reopenFile 按时间模式计算文件名，文件名变化时切换文件
func (w *RollWriter) reopenFile() {
	if w.currFile.Load() != nil && time.Now().Unix()-atomic.LoadInt64(&w.openTime) <= reopenInterval {
		return
	}
	currPath := w.pattern.FormatString(time.Now())
	if w.currPath != currPath {
		w.currPath = currPath
		w.notifyExpire()
	}
	_ = w.doReopenFile(w.currPath)
}

func (w *RollWriter) doReopenFile(path string) error {
	atomic.StoreInt64(&w.openTime, time.Now().Unix())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	if last := w.currFile.Swap(f); last != nil {
		last.Close()
	}
	if st, err := f.Stat(); err == nil {
		atomic.StoreInt64(&w.currSize, st.Size())
	}
	return nil
}

// backupFile 超过大小后重命名当前文件并新开文件
func (w *RollWriter) backupFile() {
	if atomic.LoadInt64(&w.currSize) < w.opts.MaxSize {
		return
	}
	atomic.StoreInt64(&w.currSize, 0)

	backup := w.currPath + "." + time.Now().Format("bk-20060102-150405.000000")
	if _, err := os.Stat(w.currPath); err == nil {
		_ = os.Rename(w.currPath, backup)
	}
	_ = w.doReopenFile(w.currPath)
	w.notifyExpire()
}

func (w *RollWriter) notifyExpire() {
	if w.opts.MaxHistory == 0 && w.opts.MaxDay == 0 {
		return
	}
	w.once.Do(func() {
		w.notifyCh = make(chan struct{}, 1)
		go func() {
			for range w.notifyCh {
				w.expireFiles()
			}
		}()
	})
	select {
	case w.notifyCh <- struct{}{}:
	default:
	}
}

func (w *RollWriter) expireFiles() {
	files, err := w.history()
	if err != nil || len(files) == 0 {
		return
	}
	var remove []historyFile
	files = expireWithMaxHistory(files, &remove, w.opts.MaxHistory)
	expireWithDay(files, &remove, w.opts.MaxDay)
	for _, f := range remove {
		_ = os.Remove(filepath.Join(w.currDir, f.name))
	}
}

type historyFile struct {
	name    string
	modTime time.Time
}

// 超过最大日志个数后，删除最旧的文件
func expireWithMaxHistory(files []historyFile, remove *[]historyFile, maxHistory int) []historyFile {
	if maxHistory == 0 || len(files) <= maxHistory {
		return files
	}
	*remove = append(*remove, files[maxHistory:]...)
	return files[:maxHistory]
}

// 超过最大日期后，即删除
func expireWithDay(files []historyFile, remove *[]historyFile, maxDay int) []historyFile {
	if maxDay == 0 {
		return files
	}
	var remain []historyFile
	deadline := time.Now().Add(-24 * time.Hour * time.Duration(maxDay))
	for _, f := range files {
		if f.modTime.Before(deadline) {
			*remove = append(*remove, f)
		} else {
			remain = append(remain, f)
		}
	}
	return remain
}

// history 查找目录下同一个日志生成的历史文件，按修改时间从新到旧排序
func (w *RollWriter) history() ([]historyFile, error) {
	entries, err := os.ReadDir(w.currDir)
	if err != nil {
		return nil, err
	}

	prefix := filepath.Base(w.filePath)
	current := filepath.Base(w.currPath)
	var files []historyFile
	for _, e := range entries {
		if e.IsDir() || e.Name() == current || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, historyFile{name: e.Name(), modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})
	return files, nil
}
