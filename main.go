package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/arenablaster/pkg/app"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/embedded"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/utils"
)

func main() {
	// 环境变量提供默认值，命令行参数覆盖
	runtimeCfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatalf("启动参数无效: %v", err)
	}

	configPath := flag.String("config", runtimeCfg.ConfigPath, "竞技场配置文件路径")
	seed := flag.Int64("seed", runtimeCfg.Seed, "随机种子（0 表示使用当前时间）")
	verbose := flag.Bool("verbose", runtimeCfg.Verbose, "显示详细日志")
	appName := flag.String("app-name", runtimeCfg.AppName, "存档使用的应用名")
	flag.Parse()

	embedded.Init(dataFS)

	// gdata 打开失败时降级为仅内存保存最高分
	gdataManager, err := gdata.Open(gdata.Config{AppName: *appName})
	if err != nil {
		log.Printf("[main] Warning: gdata unavailable: %v (high score will not persist)", err)
		gdataManager = nil
	}

	highScores, err := game.NewHighScoreManager(gdataManager)
	if err != nil {
		log.Fatalf("最高分存储初始化失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		ConfigPath:    *configPath,
		Seed:          *seed,
		Store:         highScores,
		TouchControls: utils.IsMobile(),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Arena Blaster 3D")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)

	// 等待最后一次最高分写入完成
	if err := highScores.Close(); err != nil {
		log.Printf("[main] Warning: failed to flush high score: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
