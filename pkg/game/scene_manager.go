package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按预设名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(preset string) (Scene, error)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene  Scene
	currentPreset string
	sceneFactory  SceneFactory
	presets       []string // 可循环切换的预设列表
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadPreset to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetPresets 设置 NextPreset 循环的预设列表
func (sm *SceneManager) SetPresets(presets []string) {
	sm.presets = append([]string(nil), presets...)
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentPreset 返回当前场景对应的预设名称
func (sm *SceneManager) CurrentPreset() string {
	return sm.currentPreset
}

// LoadPreset 通过工厂创建指定预设的场景并切换
// 创建失败时保留当前场景
func (sm *SceneManager) LoadPreset(preset string) error {
	log.Printf("[SceneManager] 加载预设: %s", preset)

	if sm.sceneFactory == nil {
		return fmt.Errorf("SceneFactory 未设置")
	}

	newScene, err := sm.sceneFactory(preset)
	if err != nil {
		return fmt.Errorf("无法创建预设场景 %s: %w", preset, err)
	}

	sm.SwitchTo(newScene)
	sm.currentPreset = preset
	log.Printf("[SceneManager] 成功切换到预设: %s", preset)
	return nil
}

// NextPreset 切换到预设列表中的下一个（到末尾后回到第一个）
func (sm *SceneManager) NextPreset() error {
	if len(sm.presets) == 0 {
		return fmt.Errorf("预设列表为空")
	}

	next := sm.presets[0]
	for i, name := range sm.presets {
		if name == sm.currentPreset {
			next = sm.presets[(i+1)%len(sm.presets)]
			break
		}
	}
	return sm.LoadPreset(next)
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
