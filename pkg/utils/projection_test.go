package utils

import (
	"math"
	"testing"
)

func TestTopDownProjection_CentersOrigin(t *testing.T) {
	layout := NewGridLayout(3, 5, 1)
	proj := NewTopDownProjection(layout, 0.5, 800, 600)

	x, y := proj.Project(Vec3{})
	if x != 400 || y != 300 {
		t.Errorf("origin projected to (%v, %v), want (400, 300)", x, y)
	}
}

func TestTopDownProjection_FitsViewport(t *testing.T) {
	layout := NewGridLayout(4, 10, 2)
	const margin = 1.0
	proj := NewTopDownProjection(layout, margin, 640, 480)

	// 带边距的四个角都应落在视口内
	halfX, halfZ := layout.Extent()
	corners := []Vec3{
		{X: -halfX - margin, Z: -halfZ - margin},
		{X: halfX + margin, Z: halfZ + margin},
	}
	for _, c := range corners {
		x, y := proj.Project(c)
		if x < -1e-9 || x > 640+1e-9 || y < -1e-9 || y > 480+1e-9 {
			t.Errorf("corner %+v projected outside viewport: (%v, %v)", c, x, y)
		}
	}
}

func TestTopDownProjection_SingleCellNoMargin(t *testing.T) {
	// 1x1 且无边距时范围为 0，缩放回退为 1，不能出现 Inf/NaN
	proj := NewTopDownProjection(NewGridLayout(1, 1, 1), 0, 100, 100)
	if math.IsInf(proj.Scale, 0) || math.IsNaN(proj.Scale) || proj.Scale != 1 {
		t.Errorf("Scale = %v, want 1", proj.Scale)
	}
}
