// Package trace 记录波浪场的时间序列并输出 PNG 曲线图
//
// 用于离线检查波浪参数：每帧采样指定列上每一行的位移、正弦值和颜色状态，
// 运行结束后按行绘制曲线，并输出每行的统计摘要。
package trace

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decker502/wavegrid/pkg/systems"
	"github.com/decker502/wavegrid/pkg/wave"
)

// Sample 单个格子在一帧中的记录
type Sample struct {
	Frame        int
	Time         float64
	Displacement float64
	Sine         float64
	State        wave.ColorState
	Entered      bool
}

// RowSummary 单行的统计摘要
type RowSummary struct {
	Row             int
	Samples         int
	MinDisplacement float64
	MaxDisplacement float64
	MeanAbs         float64 // 平均绝对位移
	PeaksEntered    int
	TroughsEntered  int
}

// WavePlotter 记录指定列上每一行的时间序列
type WavePlotter struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string
	column    int

	// samples 按行号分组
	samples  map[int][]Sample
	envelope plotter.XYs
	frameIdx int
}

// NewWavePlotter 创建记录第 column 列的绘图器
func NewWavePlotter(column int) *WavePlotter {
	return &WavePlotter{
		column:  column,
		samples: make(map[int][]Sample),
	}
}

// Start 为新一轮运行做准备，创建输出目录
func (wp *WavePlotter) Start(outputDir string) error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	wp.outputDir = outputDir
	wp.enabled = true
	wp.frameIdx = 0
	wp.samples = make(map[int][]Sample)
	wp.envelope = nil
	return nil
}

// Stop 停止采样，之后调用 GeneratePlots 输出图片
func (wp *WavePlotter) Stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.enabled = false
}

// IsEnabled 是否正在记录
func (wp *WavePlotter) IsEnabled() bool {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.enabled
}

// Sample 记录一帧
// 参数：
//   - frames: WaveFieldSystem.Step 的输出
//   - elapsed: 本帧累计时间
//   - envelope: 本帧时间包络 E(t)
func (wp *WavePlotter) Sample(frames []systems.CellFrame, elapsed, envelope float64) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.enabled {
		return
	}
	wp.frameIdx++

	wp.envelope = append(wp.envelope, plotter.XY{X: elapsed, Y: envelope})

	for _, f := range frames {
		if f.Col != wp.column {
			continue
		}
		wp.samples[f.Row] = append(wp.samples[f.Row], Sample{
			Frame:        wp.frameIdx,
			Time:         elapsed,
			Displacement: f.Displacement,
			Sine:         f.Sine,
			State:        f.State,
			Entered:      f.Entered,
		})
	}
}

// Samples 返回某一行的记录副本
func (wp *WavePlotter) Samples(row int) []Sample {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return append([]Sample(nil), wp.samples[row]...)
}

// Summary 返回每行的统计摘要（按行号升序）
func (wp *WavePlotter) Summary() []RowSummary {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	rows := wp.sortedRows()
	result := make([]RowSummary, 0, len(rows))
	for _, row := range rows {
		samples := wp.samples[row]
		if len(samples) == 0 {
			continue
		}

		disp := make([]float64, len(samples))
		abs := make([]float64, len(samples))
		s := RowSummary{Row: row, Samples: len(samples)}
		for i, sample := range samples {
			disp[i] = sample.Displacement
			if sample.Displacement < 0 {
				abs[i] = -sample.Displacement
			} else {
				abs[i] = sample.Displacement
			}
			if sample.Entered {
				switch sample.State {
				case wave.StatePeak:
					s.PeaksEntered++
				case wave.StateTrough:
					s.TroughsEntered++
				}
			}
		}
		s.MinDisplacement = floats.Min(disp)
		s.MaxDisplacement = floats.Max(disp)
		s.MeanAbs = floats.Sum(abs) / float64(len(abs))

		result = append(result, s)
	}
	return result
}

// WriteSummary 以表格形式输出统计摘要
func (wp *WavePlotter) WriteSummary(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%4s %8s %10s %10s %10s %6s %8s\n",
		"row", "samples", "min", "max", "mean|d|", "peaks", "troughs"); err != nil {
		return err
	}
	for _, s := range wp.Summary() {
		if _, err := fmt.Fprintf(w, "%4d %8d %10.4f %10.4f %10.4f %6d %8d\n",
			s.Row, s.Samples, s.MinDisplacement, s.MaxDisplacement, s.MeanAbs, s.PeaksEntered, s.TroughsEntered); err != nil {
			return err
		}
	}
	return nil
}

// GeneratePlots 输出位移、正弦与状态、时间包络三张图
// 返回生成的图片数量
func (wp *WavePlotter) GeneratePlots() (int, error) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.outputDir == "" {
		return 0, fmt.Errorf("no output directory configured")
	}
	if len(wp.samples) == 0 {
		return 0, nil
	}

	rows := wp.sortedRows()
	colors := generateColors(len(rows))

	pDisp := newPlot(fmt.Sprintf("Column %d - Displacement", wp.column), "Time (s)", "d")
	pState := newPlot(fmt.Sprintf("Column %d - Color State", wp.column), "Time (s)", "state (1 peak, -1 trough)")

	for i, row := range rows {
		samples := wp.samples[row]
		dispPts := make(plotter.XYs, 0, len(samples))
		statePts := make(plotter.XYs, 0, len(samples))
		for _, s := range samples {
			dispPts = append(dispPts, plotter.XY{X: s.Time, Y: s.Displacement})
			statePts = append(statePts, plotter.XY{X: s.Time, Y: stateLevel(s.State)})
		}

		label := fmt.Sprintf("row %d", row)
		if err := addLine(pDisp, dispPts, colors[i], label); err != nil {
			return 0, err
		}
		if err := addLine(pState, statePts, colors[i], label); err != nil {
			return 0, err
		}
	}

	pEnv := newPlot("Envelope E(t)", "Time (s)", "amplitude")
	if err := addLine(pEnv, wp.envelope, color.Black, "E(t)"); err != nil {
		return 0, err
	}

	outputs := []struct {
		p    *plot.Plot
		name string
	}{
		{pDisp, fmt.Sprintf("col_%02d_displacement.png", wp.column)},
		{pState, fmt.Sprintf("col_%02d_state.png", wp.column)},
		{pEnv, "envelope.png"},
	}

	count := 0
	for _, o := range outputs {
		file := filepath.Join(wp.outputDir, o.name)
		if err := o.p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
			return count, fmt.Errorf("save %s: %w", o.name, err)
		}
		count++
	}
	return count, nil
}

// sortedRows 返回已记录的行号（升序），调用方需持有锁
func (wp *WavePlotter) sortedRows() []int {
	rows := make([]int, 0, len(wp.samples))
	for row := range wp.samples {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p
}

func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, label string) error {
	if len(pts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// stateLevel 把颜色状态映射为曲线高度
func stateLevel(state wave.ColorState) float64 {
	switch state {
	case wave.StatePeak:
		return 1
	case wave.StateTrough:
		return -1
	default:
		return 0
	}
}

// generateColors 为每行生成区分度高的颜色
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		colors[i] = colorful.Hsl(360*float64(i)/float64(n), 0.7, 0.5).Clamped()
	}
	return colors
}

// Run 以固定步长 dt 执行 frames 帧并逐帧采样
// 第 i 帧的时间为 i*dt，避免累加误差
func Run(field *systems.WaveFieldSystem, wp *WavePlotter, frames int, dt float64) {
	params := field.Params()
	for i := 0; i < frames; i++ {
		t := float64(i) * dt
		out := field.Step(t)
		wp.Sample(out, t, params.Envelope(t))
	}
}
