package entities

import (
	"testing"

	"github.com/decker502/wavegrid/pkg/components"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

func TestNewWaveGridEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	layout := utils.NewGridLayout(3, 4, 1.5)
	params := wave.DefaultParams()

	index := NewWaveGridEntities(em, layout, params)

	if em.EntityCount() != 12 {
		t.Fatalf("EntityCount = %d, want 12", em.EntityCount())
	}
	if len(index) != 3 || len(index[0]) != 4 {
		t.Fatalf("index shape = %dx%d, want 3x4", len(index), len(index[0]))
	}

	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Columns; col++ {
			id := index.At(row, col)
			cell, ok := ecs.GetComponent[*components.WaveCellComponent](em, id)
			if !ok {
				t.Fatalf("cell (%d,%d) missing WaveCellComponent", row, col)
			}
			if cell.Row != row || cell.Col != col {
				t.Errorf("cell identity = (%d,%d), want (%d,%d)", cell.Row, cell.Col, row, col)
			}
			if cell.InitialPosition != layout.Position(row, col) {
				t.Errorf("cell (%d,%d) position = %+v, want %+v", row, col, cell.InitialPosition, layout.Position(row, col))
			}
			if cell.PreviousSine != 0 {
				t.Errorf("cell (%d,%d) PreviousSine = %v, want 0", row, col, cell.PreviousSine)
			}

			visual, ok := ecs.GetComponent[*components.WaveVisualComponent](em, id)
			if !ok {
				t.Fatalf("cell (%d,%d) missing WaveVisualComponent", row, col)
			}
			if visual.Color != params.BaseColor || visual.State != wave.StateBase {
				t.Errorf("cell (%d,%d) initial visual = %+v, want base color", row, col, visual)
			}
		}
	}
}

func TestNewWaveGridEntities_RowMajorIDs(t *testing.T) {
	em := ecs.NewEntityManager()
	index := NewWaveGridEntities(em, utils.NewGridLayout(2, 3, 1), wave.DefaultParams())

	var prev ecs.EntityID
	for row := range index {
		for col := range index[row] {
			if index[row][col] <= prev {
				t.Fatalf("ids not row-major at (%d,%d)", row, col)
			}
			prev = index[row][col]
		}
	}
}

func TestCellIndex_AtOutOfRange(t *testing.T) {
	index := CellIndex{{1, 2}, {3, 4}}

	tests := []struct {
		name     string
		row, col int
		want     ecs.EntityID
	}{
		{"正常", 1, 0, 3},
		{"行越界", 2, 0, 0},
		{"列越界", 0, 2, 0},
		{"负数", -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := index.At(tt.row, tt.col); got != tt.want {
				t.Errorf("At(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
			}
		})
	}
}
