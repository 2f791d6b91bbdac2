package utils

import "math"

// TopDownProjection 俯视投影：世界 XZ 平面 → 屏幕坐标
//
// 世界 X 对应屏幕 X，世界 Z 对应屏幕 Y（向下为正），Y 分量被忽略。
// 缩放比例根据布局范围和视口大小自动计算，使整个网格（含最大位移余量）居中可见。
type TopDownProjection struct {
	Scale   float64 // 每个世界单位对应的像素数
	OriginX float64 // 世界原点在屏幕上的 X
	OriginY float64 // 世界原点在屏幕上的 Y
}

// NewTopDownProjection 为给定布局和视口创建投影
//
// 参数:
//   - layout: 网格布局
//   - margin: 世界单位的额外边距（一般取最大振幅加半个间距）
//   - viewW, viewH: 视口尺寸（像素或终端字符）
func NewTopDownProjection(layout GridLayout, margin float64, viewW, viewH int) TopDownProjection {
	halfX, halfZ := layout.Extent()
	halfX += margin
	halfZ += margin

	scale := math.Inf(1)
	if halfX > 0 {
		scale = math.Min(scale, float64(viewW)/(2*halfX))
	}
	if halfZ > 0 {
		scale = math.Min(scale, float64(viewH)/(2*halfZ))
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		scale = 1
	}

	return TopDownProjection{
		Scale:   scale,
		OriginX: float64(viewW) / 2,
		OriginY: float64(viewH) / 2,
	}
}

// Project 将世界坐标投影到屏幕坐标
func (p TopDownProjection) Project(pos Vec3) (screenX, screenY float64) {
	return p.OriginX + pos.X*p.Scale, p.OriginY + pos.Z*p.Scale
}
