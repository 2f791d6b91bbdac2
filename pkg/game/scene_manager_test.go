package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	name         string
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func mockFactory(created *[]string) SceneFactory {
	return func(preset string) (Scene, error) {
		if preset == "broken" {
			return nil, errors.New("bad preset")
		}
		*created = append(*created, preset)
		return &MockScene{name: preset}, nil
	}
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // Should not panic
	sm.Draw(nil)     // Should not panic
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSceneManagerLoadPreset(t *testing.T) {
	var created []string
	sm := NewSceneManager()
	sm.SetSceneFactory(mockFactory(&created))

	if err := sm.LoadPreset("calm"); err != nil {
		t.Fatalf("LoadPreset() error = %v", err)
	}
	if sm.CurrentPreset() != "calm" {
		t.Errorf("CurrentPreset() = %q, want calm", sm.CurrentPreset())
	}

	// 创建失败时保留当前场景
	before := sm.GetCurrentScene()
	if err := sm.LoadPreset("broken"); err == nil {
		t.Error("expected error for broken preset")
	}
	if sm.GetCurrentScene() != before || sm.CurrentPreset() != "calm" {
		t.Error("failed LoadPreset should keep the current scene")
	}
}

func TestSceneManagerLoadPresetWithoutFactory(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.LoadPreset("calm"); err == nil {
		t.Error("expected error when factory is not set")
	}
}

func TestSceneManagerNextPreset(t *testing.T) {
	var created []string
	sm := NewSceneManager()
	sm.SetSceneFactory(mockFactory(&created))
	sm.SetPresets([]string{"calm", "default", "storm"})

	if err := sm.LoadPreset("default"); err != nil {
		t.Fatalf("LoadPreset() error = %v", err)
	}

	want := []string{"storm", "calm", "default"}
	for _, w := range want {
		if err := sm.NextPreset(); err != nil {
			t.Fatalf("NextPreset() error = %v", err)
		}
		if sm.CurrentPreset() != w {
			t.Errorf("CurrentPreset() = %q, want %q", sm.CurrentPreset(), w)
		}
	}

	if len(created) != 4 {
		t.Errorf("factory called %d times, want 4", len(created))
	}
}

func TestSceneManagerNextPresetEmpty(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.NextPreset(); err == nil {
		t.Error("expected error for empty preset list")
	}
}
