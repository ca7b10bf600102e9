//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 移动端不读取外部文件，直接使用默认配置。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.bubblepark -o build/android/bubblepark.aar -v ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/BubblePark.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/bubblepark/pkg/app"
	"github.com/decker502/bubblepark/pkg/config"
)

func init() {
	gameApp, err := app.NewApp(app.Config{
		Verbose: true,
		Bubble:  config.DefaultBubbleConfig(),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
