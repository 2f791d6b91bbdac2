package systems

import (
	"image/color"
	"log"

	"github.com/decker502/wavegrid/pkg/components"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/game"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

// CellFrame 单个格子在一帧中的输出
type CellFrame struct {
	Entity       ecs.EntityID
	Row, Col     int
	Displacement float64         // 标量位移 d = A(row) * s
	Sine         float64         // 本帧正弦采样 s
	Position     utils.Vec3      // 位移后的世界坐标
	State        wave.ColorState // 判定后的颜色状态
	Color        color.RGBA      // 判定后的颜色
	Fired        bool            // 颜色规则命中（宿主需要写入颜色）
	Entered      bool            // 进入了新的颜色状态
}

// StepStats 单帧统计
type StepStats struct {
	Visited        int // 参与计算的格子数
	Skipped        int // 缺少渲染句柄而跳过的格子数
	PeaksEntered   int // 进入波峰状态的格子数
	TroughsEntered int // 进入波谷状态的格子数
	Resets         int // 回到基础色的格子数
}

// WaveFieldSystem 波浪场系统
//
// 每帧流程：
//  1. 计算共享的时间包络 E(t) 和每行振幅 A(row)（每帧只算一次）
//  2. 按实体ID升序遍历格子；缺少 WaveVisualComponent 的格子跳过，保留其状态
//  3. 对每个格子：采样 s、执行颜色状态机、写入渲染句柄、输出 CellFrame
//  4. 无条件写回 PreviousSine = s
//
// 格子之间互不读取本帧状态，因此遍历顺序不影响结果。
type WaveFieldSystem struct {
	entityManager *ecs.EntityManager
	params        wave.Params
	rows          int
	clock         *game.WaveClock

	// 每帧复用的缓冲区
	rowAmplitudes []float64
	frames        []CellFrame
	stats         StepStats
}

// NewWaveFieldSystem 创建波浪场系统
// 参数：
//   - em: 实体管理器（格子实体由 entities.NewWaveGridEntities 创建）
//   - layout: 网格布局（提供行数）
//   - params: 波浪参数
func NewWaveFieldSystem(em *ecs.EntityManager, layout utils.GridLayout, params wave.Params) *WaveFieldSystem {
	return &WaveFieldSystem{
		entityManager: em,
		params:        params,
		rows:          layout.Rows,
		clock:         game.NewWaveClock(),
		frames:        make([]CellFrame, 0, layout.CellCount()),
	}
}

// Clock 返回系统自带的时钟（宿主可暂停、调整倍速）
func (s *WaveFieldSystem) Clock() *game.WaveClock {
	return s.clock
}

// Params 返回波浪参数
func (s *WaveFieldSystem) Params() wave.Params {
	return s.params
}

// Stats 返回最近一次 Step 的统计
func (s *WaveFieldSystem) Stats() StepStats {
	return s.stats
}

// Update 推进自带时钟并执行一帧
// 参数：
//   - deltaTime: 帧间隔（秒）
func (s *WaveFieldSystem) Update(deltaTime float64) []CellFrame {
	s.clock.Advance(deltaTime)
	return s.Step(s.clock.Elapsed())
}

// Step 以累计时间 elapsed 计算一帧
//
// 返回的切片在下一次 Step 前有效，宿主应立即消费。
func (s *WaveFieldSystem) Step(elapsed float64) []CellFrame {
	s.rowAmplitudes = s.params.RowAmplitudes(s.rowAmplitudes, elapsed, s.rows)
	s.frames = s.frames[:0]
	s.stats = StepStats{}

	entities := ecs.GetEntitiesWith1[*components.WaveCellComponent](s.entityManager)
	for _, entityID := range entities {
		cell, ok := ecs.GetComponent[*components.WaveCellComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		// 渲染句柄缺失：跳过本帧，保留 PreviousSine
		visual, ok := ecs.GetComponent[*components.WaveVisualComponent](s.entityManager, entityID)
		if !ok {
			s.stats.Skipped++
			continue
		}

		frame := s.evaluateCell(entityID, cell, visual, elapsed)
		s.frames = append(s.frames, frame)
		s.stats.Visited++
	}

	return s.frames
}

// evaluateCell 计算单个格子并写回组件
func (s *WaveFieldSystem) evaluateCell(entityID ecs.EntityID, cell *components.WaveCellComponent, visual *components.WaveVisualComponent, elapsed float64) CellFrame {
	row := cell.Row
	if row < 0 || row >= s.rows {
		// 不属于当前布局的格子（宿主手动添加），按边缘行处理
		log.Printf("[WaveFieldSystem] Warning: cell entity %d has row %d outside [0, %d)", entityID, row, s.rows)
		row = clampRow(row, s.rows)
	}

	sine := s.params.Sample(elapsed, row)
	displacement := s.rowAmplitudes[row] * sine
	position := wave.Displace(cell.InitialPosition, displacement, s.params.Axis)

	transition := wave.Classify(sine, cell.PreviousSine, visual.State)

	visual.Position = position
	if transition.Fired {
		visual.State = transition.State
		visual.Color = s.params.ColorFor(transition.State)
	}
	if transition.Entered {
		switch transition.State {
		case wave.StatePeak:
			s.stats.PeaksEntered++
			visual.EnteredAt = elapsed
		case wave.StateTrough:
			s.stats.TroughsEntered++
			visual.EnteredAt = elapsed
		default:
			s.stats.Resets++
		}
	}

	cell.PreviousSine = sine

	return CellFrame{
		Entity:       entityID,
		Row:          cell.Row,
		Col:          cell.Col,
		Displacement: displacement,
		Sine:         sine,
		Position:     position,
		State:        visual.State,
		Color:        visual.Color,
		Fired:        transition.Fired,
		Entered:      transition.Entered,
	}
}

// clampRow 将行号限制在 [0, rows)
func clampRow(row, rows int) int {
	if row < 0 {
		return 0
	}
	if row >= rows {
		return rows - 1
	}
	return row
}
