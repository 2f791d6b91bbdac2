package wave

// ColorState 格子的颜色状态
type ColorState int

const (
	// StateBase 基础色
	StateBase ColorState = iota
	// StatePeak 刚越过波峰阈值
	StatePeak
	// StateTrough 刚越过波谷阈值
	StateTrough
)

// 波峰/波谷判定阈值
const (
	PeakThreshold   = 0.9
	TroughThreshold = -0.9
)

// String 返回状态名称
func (s ColorState) String() string {
	switch s {
	case StatePeak:
		return "peak"
	case StateTrough:
		return "trough"
	default:
		return "base"
	}
}

// Transition 一次颜色判定的结果
//
// Fired 表示某条规则命中、宿主需要写入目标颜色；
// Entered 表示状态真正发生了变化（State != current）。
// 同一时刻重复求值时规则可能再次命中（Fired），但不会再次 Entered。
type Transition struct {
	State   ColorState // 判定后的状态
	Fired   bool       // 本帧是否需要写入颜色
	Entered bool       // 是否进入了新的状态
}

// Classify 颜色状态机（边沿触发）
//
// 参数:
//   - s: 本帧正弦采样
//   - prev: 上一帧正弦采样
//   - current: 格子当前的颜色状态
//
// 按优先级判定：
//  1. isPeak   = s > 0.9  且 prev ≤ s  → 波峰色
//  2. isTrough = s < -0.9 且 prev ≥ s  → 波谷色
//  3. 离开波峰/波谷区域（wasPeak && !isPeak || wasTrough && !isTrough）→ 基础色
//  4. 其余情况保持 current，不产生写入
//
// 停留在阈值之上且继续上升时 isPeak 仍为真，Fired 会再次为 true，
// 写入的目标颜色不变，对宿主来说是无害的重复设置。
func Classify(s, prev float64, current ColorState) Transition {
	isPeak := s > PeakThreshold && prev <= s
	isTrough := s < TroughThreshold && prev >= s
	wasPeak := prev > PeakThreshold
	wasTrough := prev < TroughThreshold

	var next ColorState
	switch {
	case isPeak:
		next = StatePeak
	case isTrough:
		next = StateTrough
	case (wasPeak && !isPeak) || (wasTrough && !isTrough):
		next = StateBase
	default:
		return Transition{State: current}
	}
	return Transition{State: next, Fired: true, Entered: next != current}
}
