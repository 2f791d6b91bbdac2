package entities

import (
	"log"

	"github.com/decker502/wavegrid/pkg/components"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

// CellIndex 以 [row][col] 索引格子实体，提供 O(1) 查找
type CellIndex [][]ecs.EntityID

// At 返回 (row, col) 对应的实体ID，越界时返回 0（无效ID）
func (ci CellIndex) At(row, col int) ecs.EntityID {
	if row < 0 || row >= len(ci) {
		return 0
	}
	if col < 0 || col >= len(ci[row]) {
		return 0
	}
	return ci[row][col]
}

// NewWaveGridEntities 按布局为每个格子创建实体
//
// 每个实体携带：
//   - WaveCellComponent：身份、初始坐标、PreviousSine=0
//   - WaveVisualComponent：渲染句柄，初始为基础色、位于初始坐标
//
// 实体按行优先顺序创建，因此 ID 升序即行优先顺序。
//
// 参数:
//   - em: 实体管理器
//   - layout: 网格布局
//   - params: 波浪参数（用于初始颜色）
//
// 返回:
//   - CellIndex: [row][col] → EntityID
func NewWaveGridEntities(em *ecs.EntityManager, layout utils.GridLayout, params wave.Params) CellIndex {
	index := make(CellIndex, layout.Rows)
	for row := range index {
		index[row] = make([]ecs.EntityID, layout.Columns)
	}

	for _, c := range layout.Cells() {
		pos := layout.Position(c.Row, c.Col)

		entityID := em.CreateEntity()
		ecs.AddComponent(em, entityID, &components.WaveCellComponent{
			Row:             c.Row,
			Col:             c.Col,
			InitialPosition: pos,
			PreviousSine:    0,
		})
		ecs.AddComponent(em, entityID, &components.WaveVisualComponent{
			Position:  pos,
			Color:     params.BaseColor,
			State:     wave.StateBase,
			EnteredAt: -1,
		})
		index[c.Row][c.Col] = entityID
	}

	log.Printf("[WaveCellFactory] Created %d cell entities (%dx%d, spacing %.2f)",
		layout.CellCount(), layout.Rows, layout.Columns, layout.Spacing)

	return index
}
