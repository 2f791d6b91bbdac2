// wavegrid-tui 在终端中预览波浪网格
//
// 使用方式（在仓库根目录运行）：
//
//	go run ./cmd/wavegrid-tui --preset storm --sound
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/wavegrid/pkg/config"
	"github.com/decker502/wavegrid/pkg/embedded"
)

var (
	presetFlag = flag.String("preset", config.DefaultPresetName, "内置预设名称")
	configFlag = flag.String("config", "", "波浪配置文件路径（优先于 --preset）")
	soundFlag  = flag.Bool("sound", false, "进入波峰时播放提示音")
	dataFlag   = flag.String("data", ".", "包含 data/presets 的目录")
	logFlag    = flag.String("log", "", "日志文件（终端被占用，默认不输出日志）")
)

// viewer 终端预览主循环状态
type viewer struct {
	screen  tcell.Screen
	field   *field
	chime   *chime
	presets []string
	current string
}

func newViewer() (*viewer, error) {
	presets, err := config.ListPresets()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(*configFlag, *presetFlag)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	width, height := screen.Size()
	f, err := newField(cfg, width, height)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	v := &viewer{
		screen:  screen,
		field:   f,
		chime:   &chime{},
		presets: presets,
		current: cfg.Name,
	}

	if *soundFlag {
		c, err := newChime()
		if err != nil {
			// 没有声音也可以运行
			log.Printf("[TUI] Audio initialization failed: %v", err)
		}
		v.chime = c
	}

	return v, nil
}

// nextPreset 切换到下一个内置预设
func (v *viewer) nextPreset() {
	if len(v.presets) == 0 {
		return
	}
	next := v.presets[0]
	for i, name := range v.presets {
		if name == v.current {
			next = v.presets[(i+1)%len(v.presets)]
			break
		}
	}

	cfg, err := config.LoadPreset(next)
	if err != nil {
		log.Printf("[TUI] Warning: %v", err)
		return
	}
	width, height := v.screen.Size()
	f, err := newField(cfg, width, height)
	if err != nil {
		log.Printf("[TUI] Warning: %v", err)
		return
	}
	v.field = f
	v.current = next
}

// handleInput 处理按键，返回 false 表示退出
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		clock := v.field.system.Clock()
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			clock.TogglePause()
		case '+', '=':
			clock.SetTimeScale(clock.TimeScale() + 0.25)
		case '-':
			clock.SetTimeScale(clock.TimeScale() - 0.25)
		case 'r':
			v.nextPreset()
		}

	case *tcell.EventResize:
		width, height := v.screen.Size()
		v.field.resize(width, height)
		v.screen.Sync()
	}

	return true
}

func (v *viewer) run() {
	const tick = 16 * time.Millisecond // ~60 FPS
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			frames := v.field.system.Update(dt)
			stats := v.field.system.Stats()
			if stats.PeaksEntered > 0 {
				v.chime.play(now)
			}

			v.field.draw(v.screen, frames, v.status())
		}
	}
}

// status 返回 HUD 状态行
func (v *viewer) status() string {
	clock := v.field.system.Clock()
	stats := v.field.system.Stats()
	state := "running"
	if clock.IsPaused() {
		state = "paused"
	}
	return fmt.Sprintf("%s  t=%.1fs x%.2f %s  peaks+%d troughs+%d",
		v.current, clock.Elapsed(), clock.TimeScale(), state, stats.PeaksEntered, stats.TroughsEntered)
}

func (v *viewer) cleanup() {
	v.chime.close()
	v.screen.Fini()
}

func main() {
	flag.Parse()

	// 终端画面占用 stdout/stderr，日志只写文件
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		file, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		log.SetOutput(file)
	}

	embedded.Init(os.DirFS(*dataFlag))

	v, err := newViewer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run()
}
