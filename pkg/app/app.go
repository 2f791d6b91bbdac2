// Package app 提供波浪网格桌面应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，main.go 只负责解析命令行参数、
// 初始化嵌入资源并启动 Ebitengine 主循环。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/wavegrid/pkg/config"
	"github.com/decker502/wavegrid/pkg/game"
	"github.com/decker502/wavegrid/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Preset 内置预设名称，为空时使用默认预设
	Preset string
	// ConfigPath 磁盘上的 YAML 配置文件，非空时优先于 Preset
	ConfigPath string
	// Sound 启用波峰/波谷提示音
	Sound bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 音频上下文每个进程只能创建一次，未启用声音时不创建
	var audioContext *audio.Context
	if cfg.Sound {
		audioContext = audio.NewContext(game.AudioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(preset string) (game.Scene, error) {
		waveCfg, err := config.LoadPreset(preset)
		if err != nil {
			return nil, err
		}
		return scenes.NewWaveScene(waveCfg, config.GameWindowWidth, config.GameWindowHeight, audioManager)
	})

	presets, err := config.ListPresets()
	if err != nil {
		return nil, fmt.Errorf("预设列表加载失败: %w", err)
	}
	sceneManager.SetPresets(presets)
	log.Printf("[App] %d presets available: %v", len(presets), presets)

	// 磁盘配置优先：直接构造场景，R 键仍可切换到内置预设
	if cfg.ConfigPath != "" {
		waveCfg, err := config.LoadWaveConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		scene, err := scenes.NewWaveScene(waveCfg, config.GameWindowWidth, config.GameWindowHeight, audioManager)
		if err != nil {
			return nil, fmt.Errorf("场景创建失败: %w", err)
		}
		sceneManager.SwitchTo(scene)
		log.Printf("[App] Starting with config file: %s", cfg.ConfigPath)
	} else {
		preset := cfg.Preset
		if preset == "" {
			preset = config.DefaultPresetName
		}
		if err := sceneManager.LoadPreset(preset); err != nil {
			if errors.Is(err, config.ErrPresetNotFound) {
				return nil, fmt.Errorf("%w（可用预设: %v）", err, presets)
			}
			return nil, err
		}
		log.Printf("[App] Starting preset: %s", preset)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// R 切换到下一个内置预设
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.sceneManager.NextPreset(); err != nil {
			log.Printf("[App] Warning: switch preset failed: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
