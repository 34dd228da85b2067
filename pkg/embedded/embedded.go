// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存这个文件系统，并允许用磁盘上的目录覆盖其中的文件，
// 方便不重新编译就调整 data/ 下的配置和地图。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// ErrNotInitialized 在 Init() 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 设置嵌入的数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// FS 返回嵌入的数据文件系统，路径以 "data/" 开头
func FS() (fs.FS, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	return dataFS, nil
}

// cleanPath 标准化路径并检查前缀
func cleanPath(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Exists 检查嵌入数据中是否有该文件
func Exists(path string) bool {
	if !initialized {
		return false
	}
	path, err := cleanPath(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, path)
	return err == nil
}

// Layered 两层文件系统：Overlay 中存在的文件优先，否则读取 Base
//
// Overlay 可以为 nil。用于让工作目录下的 data/ 覆盖编译进程序的版本。
type Layered struct {
	Overlay fs.FS
	Base    fs.FS
}

// Open 实现 fs.FS
func (l Layered) Open(name string) (fs.File, error) {
	if l.Overlay != nil {
		f, err := l.Overlay.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if l.Base == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return l.Base.Open(name)
}

// WithOverlay 返回嵌入数据叠加磁盘目录后的文件系统
// dir 为空时只使用嵌入数据
func WithOverlay(dir fs.FS) (fs.FS, error) {
	base, err := FS()
	if err != nil {
		return nil, err
	}
	if dir == nil {
		return base, nil
	}
	return Layered{Overlay: dir, Base: base}, nil
}
