package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频采样率
const AudioSampleRate = 48000

// 提示音ID
const (
	SoundCrest  = "crest"  // 格子进入波峰
	SoundTrough = "trough" // 格子进入波谷
)

// soundCooldown 同一音效两次播放的最小间隔，整行同时触发时只响一次
const soundCooldown = 120 * time.Millisecond

// AudioManager 音频管理器
// 职责：
//   - 启动时合成提示音 PCM，播放时不再分配
//   - 统一控制音量和开关
//   - 对同一音效做节流
type AudioManager struct {
	context  *audio.Context // 为 nil 时所有播放静默失败
	sounds   map[string][]byte
	lastPlay map[string]time.Time
	volume   float64
	enabled  bool
	now      func() time.Time
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文（每个进程只能创建一次，可为 nil）
func NewAudioManager(ctx *audio.Context) *AudioManager {
	am := &AudioManager{
		context:  ctx,
		lastPlay: make(map[string]time.Time),
		volume:   0.4,
		enabled:  ctx != nil,
		now:      time.Now,
		sounds: map[string][]byte{
			SoundCrest:  SynthesizeTone(880, 90*time.Millisecond, AudioSampleRate),
			SoundTrough: SynthesizeTone(440, 90*time.Millisecond, AudioSampleRate),
		},
	}
	log.Printf("[AudioManager] Initialized (enabled=%v, %d sounds)", am.enabled, len(am.sounds))
	return am
}

// SetEnabled 开关音效（没有音频上下文时无法开启）
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled && am.context != nil
}

// IsEnabled 音效是否开启
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}

// SetSoundVolume 设置音量（0.0 - 1.0）
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// GetSoundVolume 获取音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.volume
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否真正开始播放（未启用、未知ID或处于冷却期时为 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if am == nil || !am.shouldPlay(soundID) {
		return false
	}

	player := am.context.NewPlayerFromBytes(am.sounds[soundID])
	player.SetVolume(am.volume)
	player.Play()
	return true
}

// shouldPlay 检查开关、音效是否存在以及冷却时间，通过时记录播放时间
func (am *AudioManager) shouldPlay(soundID string) bool {
	if !am.enabled {
		return false
	}
	if _, ok := am.sounds[soundID]; !ok {
		log.Printf("[AudioManager] Warning: unknown sound %q", soundID)
		return false
	}

	now := am.now()
	if last, ok := am.lastPlay[soundID]; ok && now.Sub(last) < soundCooldown {
		return false
	}
	am.lastPlay[soundID] = now
	return true
}

// SynthesizeTone 生成带指数衰减的正弦提示音
// 格式与 Ebitengine 音频上下文一致：16 位有符号小端、双声道
func SynthesizeTone(frequency float64, duration time.Duration, sampleRate int) []byte {
	n := int(float64(sampleRate) * duration.Seconds())
	buf := make([]byte, n*4)

	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		decay := math.Exp(-6 * float64(i) / float64(n))
		v := int16(math.Sin(2*math.Pi*frequency*t) * decay * 0.8 * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
