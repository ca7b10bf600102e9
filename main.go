package main

import (
	"flag"
	"log"

	"github.com/decker502/bubblepark/pkg/app"
	"github.com/decker502/bubblepark/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "详细日志")
	configPath = flag.String("config", "", "外部配置文件路径（默认使用内置 data/bubble_grid.yaml）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	width, height := game.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Bubble Park")
	ebiten.SetWindowClosingHandled(true)

	// 关闭窗口时提交本局分数
	err = ebiten.RunGame(&closingGame{App: game})
	if !game.GetSceneManager().SaveOnExit() {
		log.Printf("[Main] Warning: failed to save on exit")
	}
	if err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

// closingGame 在窗口关闭请求时结束游戏循环
type closingGame struct {
	*app.App
}

func (g *closingGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return g.App.Update()
}
