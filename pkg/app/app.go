// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载配置、打开存储、
// 创建游戏会话与场景，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/embedded"
	"github.com/decker502/bubblepark/pkg/game"
	"github.com/decker502/bubblepark/pkg/scenes"
	"github.com/decker502/bubblepark/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "bubblepark"

// embeddedConfigPath 内置的默认配置
const embeddedConfigPath = "data/bubble_grid.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空时使用内置配置
	ConfigPath string
	// Seed 随机种子，为 0 时使用当前时间
	Seed int64
	// Bubble 直接指定配置，优先于 ConfigPath（移动端没有外部文件）
	Bubble *config.BubbleConfig
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	bubbleConfig *config.BubbleConfig
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	bubbleConfig := cfg.Bubble
	if bubbleConfig == nil {
		loaded, err := LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		bubbleConfig = loaded
	}

	// 存储不可用时降级为内存高分榜
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir not ready: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (high scores kept in memory)", err)
		gdataManager = nil
	}
	highScores, err := game.NewHighScoreStore(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: high scores reset: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := game.NewBubbleSession(bubbleConfig, seed)
	if err != nil {
		return nil, fmt.Errorf("游戏会话创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewBubbleScene(session, highScores))

	return &App{
		sceneManager: sceneManager,
		bubbleConfig: bubbleConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfig 加载泡泡配置
// path 为空时读取内置的 data/bubble_grid.yaml
func LoadConfig(path string) (*config.BubbleConfig, error) {
	if path != "" {
		cfg, err := config.LoadBubbleConfig(path)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载配置文件: %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(embeddedConfigPath)
	if err != nil {
		return nil, fmt.Errorf("内置配置读取失败: %w", err)
	}
	cfg, err := config.ParseBubbleConfig(data)
	if err != nil {
		return nil, fmt.Errorf("内置配置解析失败: %w", err)
	}
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.bubbleConfig.Screen.Width, a.bubbleConfig.Screen.Height
}

// ScreenSize 返回逻辑屏幕尺寸，用于设置窗口大小
func (a *App) ScreenSize() (int, int) {
	return a.bubbleConfig.Screen.Width, a.bubbleConfig.Screen.Height
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时提交分数
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
