// Package embedded 提供内置配置文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在项目根目录（embed.go），由宿主在启动时注入。
// 未注入时（如 cmd/meterctl、单元测试）所有读取都返回错误，
// 调用方应回退到代码内置的默认值或磁盘文件。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// Prefix 内置资源路径前缀
const Prefix = "data/"

// ErrNotInitialized 尚未调用 Init
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu     sync.RWMutex
	dataFS fs.FS
)

// Init 注入内置文件系统
// 参数：
//   - data: 以项目根目录为根的文件系统，内容位于 "data/" 下；传 nil 表示清除
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
}

// IsInitialized 返回是否已注入文件系统
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dataFS != nil
}

// normalize 统一分隔符、去掉 "./" 前缀并校验路径前缀
func normalize(path string) (fs.FS, string, error) {
	mu.RLock()
	fsys := dataFS
	mu.RUnlock()
	if fsys == nil {
		return nil, "", ErrNotInitialized
	}

	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, Prefix) {
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with '%s')", path, Prefix)
	}
	return fsys, path, nil
}

// Open 打开内置文件
func Open(path string) (fs.File, error) {
	fsys, p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(p)
}

// ReadFile 读取内置文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, p)
}

// Exists 检查内置文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配内置文件
func Glob(pattern string) ([]string, error) {
	fsys, p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, p)
}

// ReadDir 读取内置目录
func ReadDir(path string) ([]fs.DirEntry, error) {
	fsys, p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(fsys, p)
}

// Stat 获取内置文件信息
func Stat(path string) (fs.FileInfo, error) {
	fsys, p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.Stat(fsys, p)
}
