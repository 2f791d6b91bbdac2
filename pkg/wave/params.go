// Package wave 实现波浪网格的核心计算
//
// 本包只包含纯函数：时间包络、行振幅衰减、相位、位移以及波峰/波谷颜色状态机。
// 每帧的遍历和格子状态写回由 systems.WaveFieldSystem 负责。
//
// 计算流程（每帧）：
//
//	E(t)     = lerp(min, max, 0.5*(cos(2πt/period)+1))   // 整场共享
//	V(row)   = mod + (1-mod)*sin(π·row/(rows-1))          // rows == 1 时为 mod
//	A(row)   = E(t) * V(row)                              // 每行共享
//	phase    = speed*t - row*density
//	s        = sin(phase)
//	d        = A(row) * s
package wave

import (
	"image/color"
	"math"

	"github.com/decker502/wavegrid/pkg/utils"
)

// Axis 位移作用的坐标轴
type Axis int

const (
	// AxisZ 与行方向正交的水平轴（默认）
	AxisZ Axis = iota
	// AxisX 行方向
	AxisX
	// AxisY 竖直方向
	AxisY
)

// String 返回轴名称（与配置文件中的写法一致）
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// ParseAxis 解析轴名称
// 返回:
//   - Axis: 解析结果，无法识别时为 AxisZ
//   - bool: 是否识别成功
func ParseAxis(name string) (Axis, bool) {
	switch name {
	case "x", "X":
		return AxisX, true
	case "y", "Y":
		return AxisY, true
	case "z", "Z", "":
		return AxisZ, true
	default:
		return AxisZ, false
	}
}

// Params 波浪参数，初始化后不可变
//
// 约束（前置条件，由配置加载负责保证）：
//   - MinAmplitude ≤ MaxAmplitude
//   - EnvelopePeriod > 0
type Params struct {
	WaveSpeed            float64 // 相位速度（弧度/秒）
	EnvelopePeriod       float64 // 包络完整周期（秒）
	MinAmplitude         float64 // 包络下限
	MaxAmplitude         float64 // 包络上限
	WaveDensity          float64 // 每行相位错开量（弧度）
	VerticalAmplitudeMod float64 // 首末行的振幅下限比例
	Axis                 Axis    // 位移作用轴

	BaseColor   color.RGBA
	PeakColor   color.RGBA
	TroughColor color.RGBA
}

// DefaultParams 返回默认波浪参数
func DefaultParams() Params {
	return Params{
		WaveSpeed:            2.0,
		EnvelopePeriod:       8.0,
		MinAmplitude:         0.2,
		MaxAmplitude:         1.0,
		WaveDensity:          0.5,
		VerticalAmplitudeMod: 0.3,
		Axis:                 AxisZ,
		BaseColor:            color.RGBA{R: 60, G: 74, B: 90, A: 255},
		PeakColor:            color.RGBA{R: 255, G: 211, B: 77, A: 255},
		TroughColor:          color.RGBA{R: 77, G: 195, B: 255, A: 255},
	}
}

// Envelope 计算时间包络 E(t)
// 在 [MinAmplitude, MaxAmplitude] 间以 EnvelopePeriod 为周期平滑振荡，E(0) = MaxAmplitude
func (p Params) Envelope(t float64) float64 {
	mix := 0.5 * (math.Cos(2*math.Pi*t/p.EnvelopePeriod) + 1)
	return utils.Lerp(p.MinAmplitude, p.MaxAmplitude, mix)
}

// RowPhaseOffset 返回行的相位错开量 φ(row) = row * WaveDensity
func (p Params) RowPhaseOffset(row int) float64 {
	return float64(row) * p.WaveDensity
}

// Phase 返回格子所在行在时刻 t 的相位
func (p Params) Phase(t float64, row int) float64 {
	return p.WaveSpeed*t - p.RowPhaseOffset(row)
}

// Sample 返回时刻 t 该行的正弦采样值 s ∈ [-1, 1]
func (p Params) Sample(t float64, row int) float64 {
	return math.Sin(p.Phase(t, row))
}

// ColorFor 返回颜色状态对应的颜色
func (p Params) ColorFor(state ColorState) color.RGBA {
	switch state {
	case StatePeak:
		return p.PeakColor
	case StateTrough:
		return p.TroughColor
	default:
		return p.BaseColor
	}
}
