//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 移动端使用屏幕左半边的虚拟摇杆移动、右半边开火。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.arenablaster -o build/android/arenablaster.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/ArenaBlaster.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/arenablaster/pkg/app"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/embedded"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/utils"
)

func init() {
	embedded.Init(dataFS)

	var store game.HighScoreStore
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[mobile] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: "arena_blaster"})
	if err != nil {
		log.Printf("[mobile] Warning: gdata unavailable: %v", err)
		gdataManager = nil
	}
	highScores, err := game.NewHighScoreManager(gdataManager)
	if err == nil {
		store = highScores
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:       true,
		ConfigPath:    config.DefaultArenaConfigPath,
		Store:         store,
		TouchControls: utils.IsMobile(),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
