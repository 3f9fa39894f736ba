package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce 连续保存时的合并窗口
const DefaultDebounce = 200 * time.Millisecond

// Update 一次热加载结果
// 解析或校验失败时 Config 为 nil，Err 非空；调用方应继续使用旧配置
type Update struct {
	Config *MeterConfig
	Err    error
}

// Watcher 监听磁盘上的配置文件并热加载
//
// 监听的是文件所在目录，以兼容编辑器"写临时文件再重命名"的保存方式。
// 只保留最新一次结果：消费方来不及读取时，旧结果被丢弃。
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	fsw     *fsnotify.Watcher
	updates chan Update
}

// NewWatcher 创建配置监听器
// 参数：
//   - path: 磁盘上的配置文件路径
//   - debounce: 合并窗口，<= 0 时使用 DefaultDebounce
//   - logger: 可为 nil
func NewWatcher(path string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config dir %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logger.With(zap.String("config", abs)),
		fsw:      fsw,
		updates:  make(chan Update, 1),
	}, nil
}

// Updates 热加载结果通道，Run 返回后关闭
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Path 监听的文件绝对路径
func (w *Watcher) Path() string {
	return w.path
}

// Run 阻塞运行直到 ctx 取消
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	w.logger.Debug("config watcher started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("config watcher stopped")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config changed", zap.Stringer("op", ev.Op))
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// 重命名保存的中间状态，等待下一次 Create
		w.logger.Debug("config not readable yet", zap.Error(err))
		return
	}

	cfg, err := ParseMeterConfig(data)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.Error(err))
	} else {
		w.logger.Info("config reloaded", zap.Int("variants", len(cfg.Variants)))
	}
	w.publish(Update{Config: cfg, Err: err})
}

// publish 只有 Run 所在的 goroutine 会发送
func (w *Watcher) publish(u Update) {
	select {
	case w.updates <- u:
		return
	default:
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- u
}
