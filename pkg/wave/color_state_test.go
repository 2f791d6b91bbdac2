package wave

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		s, prev     float64
		current     ColorState
		wantState   ColorState
		wantFired   bool
		wantEntered bool
	}{
		{"上升越过波峰", 0.95, 0.5, StateBase, StatePeak, true, true},
		{"波峰处持平", 0.95, 0.95, StatePeak, StatePeak, true, false},
		{"阈值之上继续上升", 0.98, 0.95, StatePeak, StatePeak, true, false},
		{"阈值之上开始下降", 0.95, 0.98, StatePeak, StateBase, true, true},
		{"下降越过波谷", -0.95, -0.5, StateBase, StateTrough, true, true},
		{"阈值之下开始回升", -0.92, -0.97, StateTrough, StateBase, true, true},
		{"离开波峰区域", 0.5, 0.95, StatePeak, StateBase, true, true},
		{"离开波谷区域", -0.5, -0.95, StateTrough, StateBase, true, true},
		{"中性区域保持", 0.2, 0.1, StateBase, StateBase, false, false},
		{"阈值本身不算波峰", 0.9, 0.5, StateBase, StateBase, false, false},
		{"阈值本身不算波谷", -0.9, -0.5, StateBase, StateBase, false, false},
		{"中性区域保持当前状态", 0.3, 0.2, StatePeak, StatePeak, false, false},
		{"已是基础色时离开波峰仍写入", 0.5, 0.95, StateBase, StateBase, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.s, tt.prev, tt.current)
			want := Transition{State: tt.wantState, Fired: tt.wantFired, Entered: tt.wantEntered}
			if got != want {
				t.Errorf("Classify(%v, %v, %v) = %+v, want %+v", tt.s, tt.prev, tt.current, got, want)
			}
		})
	}
}

func TestClassify_PeakPriorityOverLeaving(t *testing.T) {
	// prev > 0.9 且 isPeak 为真时，波峰优先于"离开"
	got := Classify(0.99, 0.91, StatePeak)
	if got.State != StatePeak {
		t.Errorf("got %v, want peak", got.State)
	}
}

func TestClassify_TroughScenario(t *testing.T) {
	// rows=3, speed=0, density=1, t=0 → 第2行 s = sin(-2) ≈ -0.909，prev=0 → 波谷
	s := math.Sin(-2)
	got := Classify(s, 0, StateBase)
	if got.State != StateTrough || !got.Fired || !got.Entered {
		t.Errorf("Classify(sin(-2), 0) = %+v, want trough transition", got)
	}

	// 同一帧重复：prev 已等于 s，isTrough 仍为真（prev ≥ s），目标颜色不变，不再进入新状态
	again := Classify(s, s, got.State)
	if again.State != StateTrough || again.Entered {
		t.Errorf("repeat classify = %+v, want trough without re-entering", again)
	}
}

func TestColorState_String(t *testing.T) {
	if StateBase.String() != "base" || StatePeak.String() != "peak" || StateTrough.String() != "trough" {
		t.Error("unexpected ColorState names")
	}
}
