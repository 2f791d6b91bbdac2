package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/wavegrid/pkg/components"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

const (
	// FlashDuration 进入波峰/波谷后光晕淡出的时长（秒）
	FlashDuration = 0.6
	// dotTextureRadius 共享圆点纹理的半径（像素），绘制时按需缩放
	dotTextureRadius = 32
	// hudLineHeight HUD 行高
	hudLineHeight = 16
)

// WaveRenderSystem 波浪网格渲染系统
//
// 所有格子共用一张白色圆点纹理，通过 ColorScale 着色、GeoM 缩放定位。
// 位移沿 Y 轴时俯视投影看不到位置变化，因此圆点半径随高度变化。
type WaveRenderSystem struct {
	entityManager *ecs.EntityManager
	projection    utils.TopDownProjection
	cellRadius    float64 // 圆点基础半径（像素）

	dot     *ebiten.Image // 懒加载，避免在游戏循环外创建 GPU 资源
	hudFace *text.GoXFace
}

// NewWaveRenderSystem 创建渲染系统
// 参数:
//   - em: 实体管理器
//   - projection: 世界坐标到屏幕坐标的投影
//   - cellRadius: 圆点基础半径（像素）
func NewWaveRenderSystem(em *ecs.EntityManager, projection utils.TopDownProjection, cellRadius float64) *WaveRenderSystem {
	return &WaveRenderSystem{
		entityManager: em,
		projection:    projection,
		cellRadius:    cellRadius,
		hudFace:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// SetProjection 替换投影（窗口尺寸或网格变化时调用）
func (s *WaveRenderSystem) SetProjection(projection utils.TopDownProjection, cellRadius float64) {
	s.projection = projection
	s.cellRadius = cellRadius
}

// Draw 绘制所有格子
// 参数:
//   - screen: 目标图像
//   - elapsed: 当前累计时间（用于光晕淡出）
func (s *WaveRenderSystem) Draw(screen *ebiten.Image, elapsed float64) {
	if s.dot == nil {
		s.dot = newDotTexture(dotTextureRadius)
	}

	entities := ecs.GetEntitiesWith1[*components.WaveVisualComponent](s.entityManager)
	for _, entityID := range entities {
		visual, ok := ecs.GetComponent[*components.WaveVisualComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		x, y := s.projection.Project(visual.Position)
		radius := DotRadius(s.cellRadius, visual.Position.Y)

		// 光晕：新进入波峰/波谷时向外扩散并淡出
		if visual.State != wave.StateBase && visual.EnteredAt >= 0 {
			if alpha := FlashAlpha(elapsed - visual.EnteredAt); alpha > 0 {
				halo := radius * (1.4 + 0.8*(1-alpha))
				s.drawDot(screen, x, y, halo, visual.Color, float32(alpha*0.5))
			}
		}

		s.drawDot(screen, x, y, radius, visual.Color, 1)
	}
}

// DrawHUD 在左上角绘制多行文本
func (s *WaveRenderSystem) DrawHUD(screen *ebiten.Image, lines []string) {
	y := 8.0
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, y)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, s.hudFace, op)
		y += hudLineHeight
	}
}

// drawDot 以 (x, y) 为圆心绘制半径为 radius 的圆点
func (s *WaveRenderSystem) drawDot(screen *ebiten.Image, x, y, radius float64, c color.RGBA, alpha float32) {
	if radius <= 0 {
		return
	}
	scale := radius / dotTextureRadius

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-dotTextureRadius, -dotTextureRadius)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.dot, op)
}

// newDotTexture 生成白色实心圆纹理
func newDotTexture(radius int) *ebiten.Image {
	size := radius * 2
	img := ebiten.NewImage(size, size)
	r := float32(radius)
	vector.DrawFilledCircle(img, r, r, r, color.White, true)
	return img
}

// FlashAlpha 返回进入状态 age 秒后的光晕不透明度（1 → 0）
// age 超出 [0, FlashDuration) 时返回 0
func FlashAlpha(age float64) float64 {
	if age < 0 || age >= FlashDuration {
		return 0
	}
	return 1 - utils.EaseOutCubic(age/FlashDuration)
}

// DotRadius 按高度调整圆点半径：y > 0 放大，y < 0 缩小，最小为基础半径的 30%
func DotRadius(base, height float64) float64 {
	return base * math.Max(0.3, 1+0.25*height)
}
