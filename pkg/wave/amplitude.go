package wave

import (
	"math"

	"github.com/decker502/wavegrid/pkg/utils"
)

// VerticalFactor 计算行振幅衰减系数 V(row)
//
// 首行和末行取最小值 mod，中间行达到 1。
// rows == 1 时没有"中间"，直接返回 mod，避免除以 0。
func VerticalFactor(row, rows int, mod float64) float64 {
	if rows <= 1 {
		return mod
	}
	return mod + (1-mod)*math.Sin(math.Pi*float64(row)/float64(rows-1))
}

// RowAmplitudes 计算每行振幅 A(row) = E(t) * V(row)
//
// dst 长度不足时会重新分配；返回写入后的切片，供每帧复用。
func (p Params) RowAmplitudes(dst []float64, t float64, rows int) []float64 {
	if rows < 1 {
		rows = 1
	}
	if cap(dst) < rows {
		dst = make([]float64, rows)
	}
	dst = dst[:rows]

	envelope := p.Envelope(t)
	for row := 0; row < rows; row++ {
		dst[row] = envelope * VerticalFactor(row, rows, p.VerticalAmplitudeMod)
	}
	return dst
}

// Displace 将标量位移 d 加到 initial 的指定轴上，其余两轴保持不变
func Displace(initial utils.Vec3, d float64, axis Axis) utils.Vec3 {
	switch axis {
	case AxisX:
		initial.X += d
	case AxisY:
		initial.Y += d
	default:
		initial.Z += d
	}
	return initial
}
