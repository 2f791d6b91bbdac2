package components

import (
	"image/color"

	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

// WaveCellComponent 波浪网格中的一个格子
//
// 格子的身份 (Row, Col) 和初始坐标在创建时确定，之后不再修改；
// PreviousSine 只由 WaveFieldSystem 在每帧末尾写回，用于颜色状态机的边沿判定。
type WaveCellComponent struct {
	// Row 行索引（0 ≤ Row < rows）
	Row int

	// Col 列索引（0 ≤ Col < columns）
	Col int

	// InitialPosition 初始世界坐标（由 GridLayout 计算）
	InitialPosition utils.Vec3

	// PreviousSine 上一帧的正弦采样值，初始为 0
	PreviousSine float64
}

// WaveVisualComponent 格子的渲染句柄
//
// 宿主（ebiten 窗口、终端预览等）读取此组件绘制格子。
// 当宿主移除此组件或销毁实体时，WaveFieldSystem 会跳过该格子，
// 格子的 PreviousSine 保持不变。
type WaveVisualComponent struct {
	// Position 本帧位移后的世界坐标
	Position utils.Vec3

	// Color 当前颜色（只在状态机规则命中时写入）
	Color color.RGBA

	// State 当前颜色状态
	State wave.ColorState

	// EnteredAt 最近一次进入波峰/波谷状态的时刻（秒），用于渲染闪光淡出
	// 负值表示从未进入
	EnteredAt float64
}
