package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// AnimationConfigPath 默认动画配置文件路径
const AnimationConfigPath = "data/animations.yaml"

// AnimationClip 一段帧动画
//
// 帧号是精灵表中从左到右、从上到下的序号，Start..End 为闭区间。
// Repeat 为 -1 表示无限循环，0 表示只播放一次。
type AnimationClip struct {
	Key       string  `yaml:"key"`
	Sheet     string  `yaml:"sheet"`
	Start     int     `yaml:"start"`
	End       int     `yaml:"end"`
	FrameRate float64 `yaml:"frameRate"`
	Repeat    int     `yaml:"repeat"`
}

// Frames 返回动画的帧号序列
func (c AnimationClip) Frames() []int {
	frames := make([]int, 0, c.End-c.Start+1)
	for i := c.Start; i <= c.End; i++ {
		frames = append(frames, i)
	}
	return frames
}

// Loops 是否无限循环
func (c AnimationClip) Loops() bool {
	return c.Repeat < 0
}

// AnimationConfig 所有帧动画定义
//
// 配置文件位置: data/animations.yaml
type AnimationConfig struct {
	Animations []AnimationClip `yaml:"animations"`

	byKey map[string]AnimationClip
}

// LoadAnimationConfig 加载动画配置
func LoadAnimationConfig(fsys fs.FS, path string) (*AnimationConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation config: %w", err)
	}
	return ParseAnimationConfig(data)
}

// ParseAnimationConfig 解析 YAML 格式的动画配置并建立索引
func ParseAnimationConfig(data []byte) (*AnimationConfig, error) {
	var cfg AnimationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse animation config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid animation config: %w", err)
	}
	return &cfg, nil
}

// Validate 校验动画定义并建立键索引
func (c *AnimationConfig) Validate() error {
	c.byKey = make(map[string]AnimationClip, len(c.Animations))
	for _, clip := range c.Animations {
		if clip.Key == "" {
			return fmt.Errorf("animation with empty key")
		}
		if _, dup := c.byKey[clip.Key]; dup {
			return fmt.Errorf("duplicate animation key %q", clip.Key)
		}
		if clip.Sheet == "" {
			return fmt.Errorf("animation %q: sheet is empty", clip.Key)
		}
		if clip.Start < 0 || clip.Start > clip.End {
			return fmt.Errorf("animation %q: frame range invalid: start(%d) end(%d)", clip.Key, clip.Start, clip.End)
		}
		if clip.FrameRate <= 0 {
			return fmt.Errorf("animation %q: frame rate must be positive", clip.Key)
		}
		if clip.Repeat < -1 {
			return fmt.Errorf("animation %q: repeat must be -1 or >= 0, got %d", clip.Key, clip.Repeat)
		}
		c.byKey[clip.Key] = clip
	}
	return nil
}

// Get 按键获取动画
func (c *AnimationConfig) Get(key string) (AnimationClip, bool) {
	if c.byKey == nil {
		if err := c.Validate(); err != nil {
			return AnimationClip{}, false
		}
	}
	clip, ok := c.byKey[key]
	return clip, ok
}

// CheckSheets 确认每段动画引用的精灵表都存在且帧号不越界
func (c *AnimationConfig) CheckSheets(sheets map[string]SheetConfig) error {
	for _, clip := range c.Animations {
		sheet, ok := sheets[clip.Sheet]
		if !ok {
			return fmt.Errorf("animation %q references unknown sheet %q", clip.Key, clip.Sheet)
		}
		if sheet.Frames > 0 && clip.End >= sheet.Frames {
			return fmt.Errorf("animation %q: frame %d out of range for sheet %q (%d frames)",
				clip.Key, clip.End, clip.Sheet, sheet.Frames)
		}
	}
	return nil
}
