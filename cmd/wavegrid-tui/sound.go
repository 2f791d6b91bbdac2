package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	chimeFrequency = 880.0
	chimeDuration  = 60 * time.Millisecond
	// chimeCooldown 两次提示音的最小间隔，避免整行同时进入波峰时连续触发
	chimeCooldown = 150 * time.Millisecond
)

// chime 波峰提示音
type chime struct {
	enabled  bool
	lastPlay time.Time
}

// newChime 初始化扬声器，失败时返回禁用的 chime 和错误
func newChime() (*chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &chime{}, err
	}
	return &chime{enabled: true}, nil
}

// play 播放一次短促的正弦提示音（受冷却时间限制）
func (c *chime) play(now time.Time) {
	if !c.enabled || now.Sub(c.lastPlay) < chimeCooldown {
		return
	}
	c.lastPlay = now

	sine, err := generators.SineTone(sampleRate, chimeFrequency)
	if err != nil {
		return
	}
	tone := beep.Take(sampleRate.N(chimeDuration), sine)
	speaker.Play(&effects.Volume{Streamer: tone, Base: 2, Volume: -2})
}

// close 关闭扬声器
func (c *chime) close() {
	if c.enabled {
		speaker.Close()
	}
}
