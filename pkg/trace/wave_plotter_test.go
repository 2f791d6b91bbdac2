package trace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/entities"
	"github.com/decker502/wavegrid/pkg/systems"
	"github.com/decker502/wavegrid/pkg/utils"
	"github.com/decker502/wavegrid/pkg/wave"
)

func newTestField(rows, cols int) *systems.WaveFieldSystem {
	em := ecs.NewEntityManager()
	layout := utils.NewGridLayout(rows, cols, 1)
	params := wave.DefaultParams()
	entities.NewWaveGridEntities(em, layout, params)
	return systems.NewWaveFieldSystem(em, layout, params)
}

func TestNewWavePlotter(t *testing.T) {
	wp := NewWavePlotter(2)

	require.NotNil(t, wp)
	assert.Equal(t, 2, wp.column)
	assert.False(t, wp.IsEnabled())
	assert.NotNil(t, wp.samples)
}

func TestWavePlotter_StartStop(t *testing.T) {
	wp := NewWavePlotter(0)
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, wp.Start(dir))
	assert.True(t, wp.IsEnabled())
	assert.DirExists(t, dir)

	wp.Stop()
	assert.False(t, wp.IsEnabled())
}

func TestWavePlotter_SampleIgnoredWhenDisabled(t *testing.T) {
	wp := NewWavePlotter(0)
	field := newTestField(2, 2)

	wp.Sample(field.Step(0), 0, 1)

	assert.Empty(t, wp.Samples(0))
}

func TestWavePlotter_SampleFiltersColumn(t *testing.T) {
	wp := NewWavePlotter(1)
	require.NoError(t, wp.Start(t.TempDir()))
	field := newTestField(3, 4)

	Run(field, wp, 10, 0.1)

	for row := 0; row < 3; row++ {
		samples := wp.Samples(row)
		require.Len(t, samples, 10, "row %d", row)
		assert.Equal(t, 1, samples[0].Frame)
		assert.InDelta(t, 0.9, samples[9].Time, 1e-9)
	}
	assert.Empty(t, wp.Samples(3))
}

func TestWavePlotter_Summary(t *testing.T) {
	wp := NewWavePlotter(0)
	require.NoError(t, wp.Start(t.TempDir()))
	field := newTestField(3, 1)

	// 默认参数下相位速度 2 rad/s，10 秒覆盖多个完整周期
	Run(field, wp, 600, 1.0/60)

	summary := wp.Summary()
	require.Len(t, summary, 3)

	params := wave.DefaultParams()
	for i, s := range summary {
		assert.Equal(t, i, s.Row)
		assert.Equal(t, 600, s.Samples)
		assert.LessOrEqual(t, s.MinDisplacement, 0.0)
		assert.GreaterOrEqual(t, s.MaxDisplacement, 0.0)
		assert.LessOrEqual(t, s.MaxDisplacement, params.MaxAmplitude+1e-9)
		assert.Greater(t, s.MeanAbs, 0.0)
		assert.Positive(t, s.PeaksEntered, "row %d should reach a crest", i)
		assert.Positive(t, s.TroughsEntered, "row %d should reach a trough", i)
	}

	// 中间行的纵向系数为 1，振幅大于首末行
	assert.Greater(t, summary[1].MaxDisplacement, summary[0].MaxDisplacement)
}

func TestWavePlotter_WriteSummary(t *testing.T) {
	wp := NewWavePlotter(0)
	require.NoError(t, wp.Start(t.TempDir()))
	Run(newTestField(2, 1), wp, 30, 0.1)

	var buf bytes.Buffer
	require.NoError(t, wp.WriteSummary(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3) // 表头 + 2 行
	assert.Contains(t, lines[0], "troughs")
}

func TestWavePlotter_GeneratePlots(t *testing.T) {
	wp := NewWavePlotter(0)
	dir := t.TempDir()
	require.NoError(t, wp.Start(dir))
	Run(newTestField(3, 2), wp, 120, 1.0/30)
	wp.Stop()

	count, err := wp.GeneratePlots()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, name := range []string{"col_00_displacement.png", "col_00_state.png", "envelope.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestWavePlotter_GeneratePlotsWithoutStart(t *testing.T) {
	wp := NewWavePlotter(0)
	_, err := wp.GeneratePlots()
	assert.Error(t, err)
}

func TestWavePlotter_GeneratePlotsNoSamples(t *testing.T) {
	wp := NewWavePlotter(0)
	require.NoError(t, wp.Start(t.TempDir()))

	count, err := wp.GeneratePlots()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenerateColors(t *testing.T) {
	assert.Nil(t, generateColors(0))
	assert.Len(t, generateColors(5), 5)
}
