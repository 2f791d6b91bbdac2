package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/decker502/wavegrid/pkg/embedded"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

// PresetDir 内置预设所在目录（相对于嵌入文件系统根）
const PresetDir = "data/presets"

// DefaultPresetName 未指定预设时使用的名称
const DefaultPresetName = "default"

// ErrPresetNotFound 内置预设不存在
var ErrPresetNotFound = errors.New("预设不存在")

// WaveConfig 波浪网格配置文件的顶层结构
type WaveConfig struct {
	// Name 预设名称（仅用于显示）
	Name string `yaml:"name,omitempty"`

	Grid   GridConfig   `yaml:"grid"`
	Wave   WaveSection  `yaml:"wave"`
	Colors ColorsConfig `yaml:"colors"`
}

// GridConfig 网格尺寸
type GridConfig struct {
	Rows    int     `yaml:"rows"`
	Columns int     `yaml:"columns"`
	Spacing float64 `yaml:"spacing"`
}

// WaveSection 波浪参数
type WaveSection struct {
	WaveSpeed            float64 `yaml:"wave_speed"`
	EnvelopePeriod       float64 `yaml:"envelope_period"`
	MinAmplitude         float64 `yaml:"min_amplitude"`
	MaxAmplitude         float64 `yaml:"max_amplitude"`
	WaveDensity          float64 `yaml:"wave_density"`
	VerticalAmplitudeMod float64 `yaml:"vertical_amplitude_mod"`
	// Axis 位移轴："x" / "y" / "z"，无法识别时回退为 z
	Axis string `yaml:"axis"`
}

// ColorsConfig 三种状态颜色（十六进制，如 "#ffd34d"）
type ColorsConfig struct {
	Base   string `yaml:"base"`
	Peak   string `yaml:"peak"`
	Trough string `yaml:"trough"`
}

// DefaultWaveConfig 返回默认配置
// YAML 解析在默认配置之上进行，缺省字段保留默认值
func DefaultWaveConfig() *WaveConfig {
	return &WaveConfig{
		Name: DefaultPresetName,
		Grid: GridConfig{
			Rows:    12,
			Columns: 24,
			Spacing: 1.0,
		},
		Wave: WaveSection{
			WaveSpeed:            2.0,
			EnvelopePeriod:       8.0,
			MinAmplitude:         0.2,
			MaxAmplitude:         1.0,
			WaveDensity:          0.5,
			VerticalAmplitudeMod: 0.3,
			Axis:                 "z",
		},
		Colors: ColorsConfig{
			Base:   "#3c4a5a",
			Peak:   "#ffd34d",
			Trough: "#4dc3ff",
		},
	}
}

// ParseWaveConfig 解析 YAML 数据并执行校验与修正
//
// 参数：
//   - data: YAML 内容
//   - source: 来源描述（文件路径或预设名，用于错误信息和日志）
//
// 返回：
//   - *WaveConfig: 修正后的配置
//   - error: 解析失败或存在无法修正的参数
func ParseWaveConfig(data []byte, source string) (*WaveConfig, error) {
	cfg := DefaultWaveConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析波浪配置 %s 失败: %w", source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("波浪配置 %s 验证失败: %w", source, err)
	}
	cfg.normalize(source)

	return cfg, nil
}

// LoadWaveConfig 从磁盘 YAML 文件加载配置
func LoadWaveConfig(filePath string) (*WaveConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", filePath, err)
	}

	cfg, err := ParseWaveConfig(data, filePath)
	if err != nil {
		return nil, err
	}

	log.Printf("[Config] Loaded wave config from %s", filePath)
	return cfg, nil
}

// LoadPreset 加载内置预设
// 名称不含扩展名，如 "calm"；不存在时返回的错误满足 errors.Is(err, ErrPresetNotFound)
func LoadPreset(name string) (*WaveConfig, error) {
	if name == "" {
		name = DefaultPresetName
	}

	presetPath := path.Join(PresetDir, name+".yaml")
	if !embedded.Exists(presetPath) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	data, err := embedded.ReadFile(presetPath)
	if err != nil {
		return nil, fmt.Errorf("无法读取预设 %s: %w", name, err)
	}

	cfg, err := ParseWaveConfig(data, name)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	log.Printf("[Config] Loaded preset %q (%dx%d)", cfg.Name, cfg.Grid.Rows, cfg.Grid.Columns)
	return cfg, nil
}

// ListPresets 返回内置预设名称（字母序）
func ListPresets() ([]string, error) {
	matches, err := embedded.Glob(path.Join(PresetDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("无法列出预设: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Resolve 按命令行约定选择配置来源：configPath 非空时读磁盘文件，否则加载内置预设
func Resolve(configPath, preset string) (*WaveConfig, error) {
	if configPath != "" {
		return LoadWaveConfig(configPath)
	}
	return LoadPreset(preset)
}

// Validate 检查无法修正的参数
func (c *WaveConfig) Validate() error {
	if c.Wave.EnvelopePeriod <= 0 {
		return fmt.Errorf("envelope_period 必须大于 0，当前为 %v", c.Wave.EnvelopePeriod)
	}
	if c.Grid.Spacing <= 0 {
		return fmt.Errorf("spacing 必须大于 0，当前为 %v", c.Grid.Spacing)
	}
	for field, value := range map[string]string{
		"colors.base":   c.Colors.Base,
		"colors.peak":   c.Colors.Peak,
		"colors.trough": c.Colors.Trough,
	} {
		if _, err := parseHexColor(value); err != nil {
			return fmt.Errorf("%s 颜色格式错误: %w", field, err)
		}
	}
	return nil
}

// normalize 修正可以修正的参数并记录警告
func (c *WaveConfig) normalize(source string) {
	if c.Grid.Rows < 1 {
		log.Printf("[Config] Warning: %s rows=%d, clamped to 1", source, c.Grid.Rows)
		c.Grid.Rows = 1
	}
	if c.Grid.Columns < 1 {
		log.Printf("[Config] Warning: %s columns=%d, clamped to 1", source, c.Grid.Columns)
		c.Grid.Columns = 1
	}
	if c.Wave.MinAmplitude > c.Wave.MaxAmplitude {
		log.Printf("[Config] Warning: %s min_amplitude %.3f > max_amplitude %.3f, swapped",
			source, c.Wave.MinAmplitude, c.Wave.MaxAmplitude)
		c.Wave.MinAmplitude, c.Wave.MaxAmplitude = c.Wave.MaxAmplitude, c.Wave.MinAmplitude
	}
	if axis, ok := wave.ParseAxis(c.Wave.Axis); !ok {
		log.Printf("[Config] Warning: %s unknown axis %q, using z", source, c.Wave.Axis)
		c.Wave.Axis = axis.String()
	}
}

// Layout 返回网格布局
func (c *WaveConfig) Layout() utils.GridLayout {
	return utils.NewGridLayout(c.Grid.Rows, c.Grid.Columns, c.Grid.Spacing)
}

// ToParams 转换为核心计算使用的波浪参数
func (c *WaveConfig) ToParams() (wave.Params, error) {
	base, err := parseHexColor(c.Colors.Base)
	if err != nil {
		return wave.Params{}, fmt.Errorf("colors.base 颜色格式错误: %w", err)
	}
	peak, err := parseHexColor(c.Colors.Peak)
	if err != nil {
		return wave.Params{}, fmt.Errorf("colors.peak 颜色格式错误: %w", err)
	}
	trough, err := parseHexColor(c.Colors.Trough)
	if err != nil {
		return wave.Params{}, fmt.Errorf("colors.trough 颜色格式错误: %w", err)
	}

	axis, _ := wave.ParseAxis(c.Wave.Axis)

	return wave.Params{
		WaveSpeed:            c.Wave.WaveSpeed,
		EnvelopePeriod:       c.Wave.EnvelopePeriod,
		MinAmplitude:         c.Wave.MinAmplitude,
		MaxAmplitude:         c.Wave.MaxAmplitude,
		WaveDensity:          c.Wave.WaveDensity,
		VerticalAmplitudeMod: c.Wave.VerticalAmplitudeMod,
		Axis:                 axis,
		BaseColor:            base,
		PeakColor:            peak,
		TroughColor:          trough,
	}, nil
}

// parseHexColor 解析 "#rrggbb" 格式颜色，允许省略 '#'
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
