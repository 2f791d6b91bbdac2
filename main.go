package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/wavegrid/pkg/app"
	"github.com/decker502/wavegrid/pkg/config"
	"github.com/decker502/wavegrid/pkg/embedded"
)

var (
	configPath = flag.String("config", "", "波浪配置文件路径（优先于 --preset）")
	preset     = flag.String("preset", config.DefaultPresetName, "内置预设名称")
	verbose    = flag.Bool("verbose", false, "详细日志")
	scale      = flag.Float64("scale", 1.0, "窗口缩放比例")
	sound      = flag.Bool("sound", false, "进入波峰/波谷时播放提示音")
	listFlag   = flag.Bool("list", false, "列出内置预设后退出")
)

func main() {
	flag.Parse()

	// 必须在任何预设加载之前初始化
	embedded.Init(dataFS)

	if *listFlag {
		names, err := config.ListPresets()
		if err != nil {
			log.Fatalf("列出预设失败: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if *scale <= 0 {
		fmt.Fprintf(os.Stderr, "--scale 必须大于 0\n")
		os.Exit(2)
	}

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Preset:     *preset,
		ConfigPath: *configPath,
		Sound:      *sound,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(int(float64(config.GameWindowWidth)**scale), int(float64(config.GameWindowHeight)**scale))
	ebiten.SetWindowTitle("Wave Grid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
