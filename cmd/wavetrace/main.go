// wavetrace 离线运行波浪场并输出曲线图和统计摘要
//
// 使用方式（在仓库根目录运行）：
//
//	go run ./cmd/wavetrace --preset storm --frames 600 --column 0 --out plots/storm
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/wavegrid/pkg/config"
	"github.com/decker502/wavegrid/pkg/ecs"
	"github.com/decker502/wavegrid/pkg/embedded"
	"github.com/decker502/wavegrid/pkg/entities"
	"github.com/decker502/wavegrid/pkg/systems"
	"github.com/decker502/wavegrid/pkg/trace"
)

var (
	presetFlag = flag.String("preset", config.DefaultPresetName, "内置预设名称")
	configFlag = flag.String("config", "", "波浪配置文件路径（优先于 --preset）")
	dataFlag   = flag.String("data", ".", "包含 data/presets 的目录")
	framesFlag = flag.Int("frames", 600, "采样帧数")
	dtFlag     = flag.Float64("dt", 1.0/60.0, "帧间隔（秒）")
	columnFlag = flag.Int("column", 0, "采样的列号")
	outFlag    = flag.String("out", "plots", "输出目录")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetFlags(0)
	}

	if *framesFlag <= 0 || *dtFlag <= 0 {
		log.Fatalf("--frames 和 --dt 必须大于 0")
	}

	embedded.Init(os.DirFS(*dataFlag))

	cfg, err := config.Resolve(*configFlag, *presetFlag)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	params, err := cfg.ToParams()
	if err != nil {
		log.Fatalf("波浪参数无效: %v", err)
	}

	layout := cfg.Layout()
	if *columnFlag < 0 || *columnFlag >= layout.Columns {
		log.Fatalf("--column %d 超出范围 [0, %d)", *columnFlag, layout.Columns)
	}

	em := ecs.NewEntityManager()
	entities.NewWaveGridEntities(em, layout, params)
	field := systems.NewWaveFieldSystem(em, layout, params)

	plotter := trace.NewWavePlotter(*columnFlag)
	if err := plotter.Start(*outFlag); err != nil {
		log.Fatalf("初始化输出目录失败: %v", err)
	}

	trace.Run(field, plotter, *framesFlag, *dtFlag)
	plotter.Stop()

	count, err := plotter.GeneratePlots()
	if err != nil {
		log.Fatalf("生成图表失败: %v", err)
	}
	log.Printf("✓ %d plots written to %s", count, *outFlag)

	if err := plotter.WriteSummary(os.Stdout); err != nil {
		log.Fatalf("输出摘要失败: %v", err)
	}
}
