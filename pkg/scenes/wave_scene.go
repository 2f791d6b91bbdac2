package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/wavegrid/pkg/config"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/entities"
	"github.com/decker502/wavegrid/pkg/game"
	"github.com/decker502/wavegrid/pkg/systems"
	"github.com/decker502/wavegrid/pkg/utils"
)

const (
	// timeScaleStep 每次按 +/- 调整的倍速
	timeScaleStep = 0.25
	// maxTimeScale 倍速上限
	maxTimeScale = 4.0
)

// WaveScene 运行单个波浪预设的场景
//
// 场景拥有自己的实体管理器：切换预设时整个场景被替换，格子实体随之释放。
type WaveScene struct {
	cfg           *config.WaveConfig
	entityManager *ecs.EntityManager
	cells         entities.CellIndex

	fieldSystem  *systems.WaveFieldSystem
	renderSystem *systems.WaveRenderSystem
	audioManager *game.AudioManager // 可为 nil

	showHUD bool
}

// NewWaveScene 按配置创建场景
// 参数:
//   - cfg: 已校验的波浪配置
//   - width, height: 逻辑屏幕尺寸
//   - audioManager: 波峰/波谷提示音（可为 nil）
func NewWaveScene(cfg *config.WaveConfig, width, height int, audioManager *game.AudioManager) (*WaveScene, error) {
	params, err := cfg.ToParams()
	if err != nil {
		return nil, fmt.Errorf("波浪参数无效: %w", err)
	}

	layout := cfg.Layout()
	if layout.Clamped() {
		log.Printf("[WaveScene] Warning: grid size clamped to %dx%d", layout.Rows, layout.Columns)
	}

	em := ecs.NewEntityManager()
	cells := entities.NewWaveGridEntities(em, layout, params)

	projection, radius := ProjectionFor(layout, params.MaxAmplitude, width, height)

	log.Printf("[WaveScene] Preset %q ready: %d cells, scale %.1f px/unit", cfg.Name, layout.CellCount(), projection.Scale)

	return &WaveScene{
		cfg:           cfg,
		entityManager: em,
		cells:         cells,
		fieldSystem:   systems.NewWaveFieldSystem(em, layout, params),
		renderSystem:  systems.NewWaveRenderSystem(em, projection, radius),
		audioManager:  audioManager,
		showHUD:       true,
	}, nil
}

// ProjectionFor 计算让整个网格（含最大位移）居中可见的投影和圆点半径
func ProjectionFor(layout utils.GridLayout, maxAmplitude float64, width, height int) (utils.TopDownProjection, float64) {
	margin := math.Abs(maxAmplitude) + layout.Spacing/2
	projection := utils.NewTopDownProjection(layout, margin, width, height)
	radius := math.Max(config.MinCellRadius, layout.Spacing*projection.Scale*config.CellRadiusRatio)
	return projection, radius
}

// FieldSystem 返回波浪场系统
func (s *WaveScene) FieldSystem() *systems.WaveFieldSystem {
	return s.fieldSystem
}

// Cells 返回 [row][col] → 实体ID 索引
func (s *WaveScene) Cells() entities.CellIndex {
	return s.cells
}

// EntityManager 返回场景的实体管理器
func (s *WaveScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Update 处理输入并推进一帧
func (s *WaveScene) Update(deltaTime float64) {
	s.handleInput()
	s.Advance(deltaTime)
}

// Advance 推进波浪场（不读取输入），有格子进入波峰或波谷时播放提示音
func (s *WaveScene) Advance(deltaTime float64) {
	s.fieldSystem.Update(deltaTime)

	stats := s.fieldSystem.Stats()
	if stats.PeaksEntered > 0 {
		s.audioManager.PlaySound(game.SoundCrest)
	} else if stats.TroughsEntered > 0 {
		s.audioManager.PlaySound(game.SoundTrough)
	}

	s.entityManager.RemoveMarkedEntities() // 总是最后清理
}

// handleInput 空格暂停，+/- 调整倍速，H 切换 HUD，M 切换声音
func (s *WaveScene) handleInput() {
	clock := s.fieldSystem.Clock()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		clock.TogglePause()
		log.Printf("[WaveScene] Paused: %v", clock.IsPaused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.AdjustTimeScale(timeScaleStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.AdjustTimeScale(-timeScaleStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.showHUD = !s.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && s.audioManager != nil {
		s.audioManager.SetEnabled(!s.audioManager.IsEnabled())
	}
}

// AdjustTimeScale 调整倍速，结果限制在 [0, maxTimeScale]
func (s *WaveScene) AdjustTimeScale(delta float64) {
	clock := s.fieldSystem.Clock()
	scale := math.Min(maxTimeScale, math.Max(0, clock.TimeScale()+delta))
	clock.SetTimeScale(scale)
	log.Printf("[WaveScene] Time scale: %.2f", scale)
}

// Draw 绘制格子和 HUD
func (s *WaveScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	elapsed := s.fieldSystem.Clock().Elapsed()
	s.renderSystem.Draw(screen, elapsed)

	if s.showHUD {
		s.renderSystem.DrawHUD(screen, s.HUDLines())
	}
}

// HUDLines 返回 HUD 文本
func (s *WaveScene) HUDLines() []string {
	clock := s.fieldSystem.Clock()
	params := s.fieldSystem.Params()
	stats := s.fieldSystem.Stats()

	status := "running"
	if clock.IsPaused() {
		status = "paused"
	}

	return []string{
		fmt.Sprintf("preset %s  %dx%d  axis %s", s.cfg.Name, s.cfg.Grid.Rows, s.cfg.Grid.Columns, params.Axis),
		fmt.Sprintf("t %.2fs  x%.2f  %s", clock.Elapsed(), clock.TimeScale(), status),
		fmt.Sprintf("envelope %.3f  [%.2f, %.2f]", params.Envelope(clock.Elapsed()), params.MinAmplitude, params.MaxAmplitude),
		fmt.Sprintf("peaks +%d  troughs +%d  resets %d  skipped %d", stats.PeaksEntered, stats.TroughsEntered, stats.Resets, stats.Skipped),
		"space pause  +/- speed  r preset  h hud  m sound",
	}
}
