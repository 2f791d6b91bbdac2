package config

import "image/color"

// 窗口与渲染常量
const (
	// GameWindowWidth 逻辑屏幕宽度（Ebitengine 自动缩放到实际窗口）
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// CellRadiusRatio 圆点基础半径占网格间距（像素）的比例
	CellRadiusRatio = 0.3
	// MinCellRadius 圆点最小半径（像素）
	MinCellRadius = 1.5
)

// BackgroundColor 画面背景色
var BackgroundColor = color.RGBA{R: 16, G: 18, B: 24, A: 255}
