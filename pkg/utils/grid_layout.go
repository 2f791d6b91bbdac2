package utils

// 波浪网格布局
//
// 网格在 XZ 平面展开并以原点为中心：列沿 X 轴，行沿 Z 轴，Y 恒为 0。
// 布局在初始化时计算一次，之后不可变。
//
// 公式：
//
//	offsetX = (columns-1) * spacing / 2
//	offsetZ = (rows-1) * spacing / 2
//	pos(row, col) = (col*spacing - offsetX, 0, row*spacing - offsetZ)

// GridCoord 格子坐标 (row, col)
type GridCoord struct {
	Row int
	Col int
}

// GridLayout 波浪网格的布局参数
type GridLayout struct {
	Rows    int     // 行数（≥ 1）
	Columns int     // 列数（≥ 1）
	Spacing float64 // 格子间距

	offsetX float64
	offsetZ float64
	clamped bool
}

// NewGridLayout 创建网格布局
//
// 行数、列数小于 1 时静默修正为 1（这是约定的默认行为，不是错误），
// 调用方可通过 Clamped() 得知是否发生了修正并自行记录日志。
//
// 参数:
//   - rows: 行数
//   - columns: 列数
//   - spacing: 相邻格子中心的距离
func NewGridLayout(rows, columns int, spacing float64) GridLayout {
	clamped := false
	if rows < 1 {
		rows = 1
		clamped = true
	}
	if columns < 1 {
		columns = 1
		clamped = true
	}
	return GridLayout{
		Rows:    rows,
		Columns: columns,
		Spacing: spacing,
		offsetX: float64(columns-1) * spacing / 2,
		offsetZ: float64(rows-1) * spacing / 2,
		clamped: clamped,
	}
}

// Clamped 报告构造时行数或列数是否被修正
func (l GridLayout) Clamped() bool {
	return l.clamped
}

// CellCount 返回格子总数
func (l GridLayout) CellCount() int {
	return l.Rows * l.Columns
}

// Position 返回格子 (row, col) 的初始世界坐标
func (l GridLayout) Position(row, col int) Vec3 {
	return Vec3{
		X: float64(col)*l.Spacing - l.offsetX,
		Y: 0,
		Z: float64(row)*l.Spacing - l.offsetZ,
	}
}

// Cells 按行优先顺序返回所有格子坐标
func (l GridLayout) Cells() []GridCoord {
	cells := make([]GridCoord, 0, l.CellCount())
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Columns; col++ {
			cells = append(cells, GridCoord{Row: row, Col: col})
		}
	}
	return cells
}

// Positions 返回 (row, col) → 初始坐标 的完整映射
func (l GridLayout) Positions() map[GridCoord]Vec3 {
	positions := make(map[GridCoord]Vec3, l.CellCount())
	for _, c := range l.Cells() {
		positions[c] = l.Position(c.Row, c.Col)
	}
	return positions
}

// Extent 返回布局在 X、Z 方向上的半宽（用于相机取景）
func (l GridLayout) Extent() (halfX, halfZ float64) {
	return l.offsetX, l.offsetZ
}
