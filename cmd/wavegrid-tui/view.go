package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/wavegrid/pkg/components"
	"github.com/decker502/wavegrid/pkg/config"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/entities"
	"github.com/decker502/wavegrid/pkg/systems"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

// 终端字符高宽比约为 2:1，投影时纵向使用两倍分辨率再折半
const cellAspect = 2.0

// hudRows 顶部保留给 HUD 的行数
const hudRows = 2

// field 终端预览使用的波浪场
type field struct {
	cfg           *config.WaveConfig
	entityManager *ecs.EntityManager
	cells         entities.CellIndex
	system        *systems.WaveFieldSystem
	projection    utils.TopDownProjection
}

// newField 按配置创建格子实体和波浪场系统，并按终端尺寸计算投影
func newField(cfg *config.WaveConfig, width, height int) (*field, error) {
	params, err := cfg.ToParams()
	if err != nil {
		return nil, fmt.Errorf("波浪参数无效: %w", err)
	}

	layout := cfg.Layout()
	em := ecs.NewEntityManager()
	cells := entities.NewWaveGridEntities(em, layout, params)

	f := &field{
		cfg:           cfg,
		entityManager: em,
		cells:         cells,
		system:        systems.NewWaveFieldSystem(em, layout, params),
	}
	f.resize(width, height)
	return f, nil
}

// resize 终端尺寸变化时重新计算投影
func (f *field) resize(width, height int) {
	layout := f.cfg.Layout()
	margin := math.Abs(f.cfg.Wave.MaxAmplitude) + layout.Spacing/2
	viewH := height - hudRows
	if viewH < 1 {
		viewH = 1
	}
	f.projection = utils.NewTopDownProjection(layout, margin, width, int(float64(viewH)*cellAspect))
}

// toTerminal 将世界坐标转换为终端字符坐标
func (f *field) toTerminal(pos utils.Vec3) (int, int) {
	x, y := f.projection.Project(pos)
	return int(math.Round(x)), hudRows + int(math.Round(y/cellAspect))
}

// draw 把一帧的结果画到屏幕上
func (f *field) draw(screen tcell.Screen, frames []systems.CellFrame, status string) {
	screen.Clear()

	elapsed := f.system.Clock().Elapsed()
	for _, frame := range frames {
		visual, ok := ecs.GetComponent[*components.WaveVisualComponent](f.entityManager, frame.Entity)
		if !ok {
			continue
		}

		flash := 0.0
		if visual.State != wave.StateBase && visual.EnteredAt >= 0 {
			flash = systems.FlashAlpha(elapsed - visual.EnteredAt)
		}

		x, y := f.toTerminal(frame.Position)
		style := tcell.StyleDefault.Foreground(terminalColor(frame.Color, frame.Sine, flash))
		screen.SetContent(x, y, cellGlyph(frame.State, frame.Position.Y), nil, style)
	}

	drawText(screen, 0, 0, tcell.StyleDefault.Foreground(tcell.ColorWhite), status)
	drawText(screen, 0, 1, tcell.StyleDefault.Foreground(tcell.ColorGray), "q quit  space pause  +/- speed  r preset")
	screen.Show()
}

// cellGlyph 根据颜色状态选择字符；位移沿 Y 轴时用字符粗细表示高度
func cellGlyph(state wave.ColorState, height float64) rune {
	switch state {
	case wave.StatePeak:
		return '▲'
	case wave.StateTrough:
		return '▼'
	}
	switch {
	case height > 0.5:
		return '●'
	case height < -0.5:
		return '·'
	default:
		return '•'
	}
}

// terminalColor 计算终端前景色
//
// 基础亮度随正弦采样起伏（0.55 ~ 1.0），新进入波峰/波谷时按 flash 向白色混合。
func terminalColor(c color.RGBA, sine, flash float64) tcell.Color {
	base, _ := colorful.MakeColor(c)

	h, s, v := base.Hsv()
	v *= 0.775 + 0.225*sine
	shaded := colorful.Hsv(h, s, utils.Clamp01(v))

	if flash > 0 {
		shaded = shaded.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, utils.Clamp01(flash)*0.6)
	}

	r, g, b := shaded.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawText 从 (x, y) 开始逐字符写入文本
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
