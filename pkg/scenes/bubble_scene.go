package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/game"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/decker502/bubblepark/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// bubblePalette 泡泡颜色，颜色编号超出时循环使用
var bubblePalette = []color.RGBA{
	{R: 230, G: 70, B: 70, A: 255},  // 红
	{R: 70, G: 160, B: 230, A: 255}, // 蓝
	{R: 90, G: 200, B: 90, A: 255},  // 绿
	{R: 240, G: 210, B: 60, A: 255}, // 黄
	{R: 180, G: 90, B: 220, A: 255}, // 紫
	{R: 250, G: 150, B: 50, A: 255}, // 橙
}

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	wallColor       = color.RGBA{R: 90, G: 100, B: 130, A: 255}
	aimColor        = color.RGBA{R: 255, G: 255, B: 255, A: 120}
	deadlineColor   = color.RGBA{R: 200, G: 60, B: 60, A: 120}
)

// BubbleScene 泡泡消除的游戏场景
// 只负责键盘输入与绘制，游戏状态由 game.BubbleSession 维护
type BubbleScene struct {
	session    *game.BubbleSession
	highScores *game.HighScoreStore // 可为 nil
	lattice    utils.HexLattice     // 带屏幕原点的坐标映射

	lastRank int
}

// NewBubbleScene 创建泡泡场景
//
// 参数:
//   - session: 游戏会话
//   - highScores: 高分榜，可为 nil
func NewBubbleScene(session *game.BubbleSession, highScores *game.HighScoreStore) *BubbleScene {
	cfg := session.Config()
	return &BubbleScene{
		session:    session,
		highScores: highScores,
		lattice: utils.NewHexLattice(cfg.Grid.Spacing, cfg.Grid.RowHeight,
			cfg.Screen.OriginX, cfg.Screen.OriginY),
	}
}

// Update 处理输入并推进游戏
func (s *BubbleScene) Update(deltaTime float64) {
	axis := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		axis -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		axis += 1
	}
	s.session.Rotate(axis, deltaTime)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.session.Fire()
	}
	s.handlePointer()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.submitScore()
		s.session.Reset()
	}

	s.session.Update(deltaTime)
}

// handlePointer 点击或触摸：瞄准点击位置并发射
func (s *BubbleScene) handlePointer() {
	pointer := utils.GetPointerState()
	if !pointer.JustPressed {
		return
	}
	shooter, ok := s.session.Shooter()
	if !ok {
		return
	}
	x, y := s.lattice.ScreenToLocal(float64(pointer.X), float64(pointer.Y))
	angle, ok := utils.AimAngleTo(shooter.X, shooter.Y, x, y, shooter.MaxAngle)
	if !ok {
		return
	}
	shooter.Angle = angle
	s.session.Fire()
}

// SaveOnExit 实现 game.Saveable，退出时提交本局分数
func (s *BubbleScene) SaveOnExit() bool {
	return s.submitScore()
}

// submitScore 将当前分数提交到高分榜
func (s *BubbleScene) submitScore() bool {
	if s.highScores == nil {
		return true
	}
	rank, err := s.highScores.Submit(s.session.Score().Record())
	s.lastRank = rank
	if err != nil {
		log.Printf("[BubbleScene] Warning: failed to save high score: %v", err)
		return false
	}
	return true
}

// Draw 绘制网格、飞行中的泡泡、瞄准线与 HUD
func (s *BubbleScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.drawBoard(screen)
	s.drawBubbles(screen)
	s.drawShooter(screen)
	s.drawHUD(screen)
}

// drawBoard 绘制左右墙与底线
func (s *BubbleScene) drawBoard(screen *ebiten.Image) {
	grid := s.session.Config().Grid
	left, right := grid.BoardWalls()

	lx, top := s.lattice.LocalToScreen(left, -grid.RowHeight/2)
	rx, _ := s.lattice.LocalToScreen(right, 0)
	_, deadline := s.lattice.LocalToScreen(0, float64(grid.MaxRows)*grid.RowHeight-grid.RowHeight/2)
	_, bottom := s.lattice.LocalToScreen(0, float64(grid.MaxRows+1)*grid.RowHeight)

	vector.StrokeLine(screen, float32(lx), float32(top), float32(lx), float32(bottom), 2, wallColor, false)
	vector.StrokeLine(screen, float32(rx), float32(top), float32(rx), float32(bottom), 2, wallColor, false)
	vector.StrokeLine(screen, float32(lx), float32(top), float32(rx), float32(top), 2, wallColor, false)
	vector.StrokeLine(screen, float32(lx), float32(deadline), float32(rx), float32(deadline), 1, deadlineColor, false)
}

// drawBubbles 绘制所有泡泡实体（网格上的、飞行中的、正在下落的）
func (s *BubbleScene) drawBubbles(screen *ebiten.Image) {
	em := s.session.EntityManager()
	ids := ecs.GetEntitiesWith2[*components.BubbleComponent, *components.PositionComponent](em)

	for _, id := range ids {
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		radius := s.session.Config().Grid.Spacing / 2
		if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			radius = col.Radius
		}

		var c color.Color = paletteColor(bubble.Color)
		if bubble.State == types.BubbleRemoved {
			c = fadeColor(paletteColor(bubble.Color), fallProgress(em, id))
		}

		x, y := s.lattice.LocalToScreen(pos.X, pos.Y)
		vector.FillCircle(screen, float32(x), float32(y), float32(radius-1), c, true)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(radius-1), 1, color.RGBA{A: 90}, true)
	}
}

// drawShooter 绘制瞄准线与待发射的泡泡
func (s *BubbleScene) drawShooter(screen *ebiten.Image) {
	shooter, ok := s.session.Shooter()
	if !ok {
		return
	}
	cfg := s.session.Config()
	radius := cfg.Grid.Spacing / 2
	left, right := cfg.Grid.BoardWalls()

	for _, seg := range utils.ComputeAimLine(shooter.X, shooter.Y, shooter.Angle, cfg.Shooter.AimLength,
		left+radius, right-radius) {
		x0, y0 := s.lattice.LocalToScreen(seg.X1, seg.Y1)
		x1, y1 := s.lattice.LocalToScreen(seg.X2, seg.Y2)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, aimColor, true)
	}

	x, y := s.lattice.LocalToScreen(shooter.X, shooter.Y)
	var c color.Color = paletteColor(shooter.NextColor)
	if !shooter.CanFire() {
		c = withAlpha(paletteColor(shooter.NextColor), 160)
	}
	vector.FillCircle(screen, float32(x), float32(y), float32(radius-1), c, true)
}

// drawHUD 绘制分数与提示
func (s *BubbleScene) drawHUD(screen *ebiten.Image) {
	stats := s.session.Score().Stats()
	best := 0
	if s.highScores != nil {
		best = max(s.highScores.Best(), stats.Score)
	}

	hud := fmt.Sprintf("Score: %d  Best: %d\nBubbles: %d  Matches: %d  Fallen: %d",
		stats.Score, best, s.session.Grid().SettledCount(), stats.Matches, stats.Fallen)
	ebitenutil.DebugPrintAt(screen, hud, 8, 4)

	height := s.session.Config().Screen.Height
	hint := "<- -> aim  SPACE fire  R restart"
	if utils.IsMobile() {
		hint = "tap above the launcher to shoot"
	}
	ebitenutil.DebugPrintAt(screen, hint, 8, height-20)

	if s.session.RegenerationPending() {
		ebitenutil.DebugPrintAt(screen, "Grid cleared!", s.session.Config().Screen.Width/2-40, height/2)
	}
	if s.lastRank > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last game ranked #%d", s.lastRank), 8, height-36)
	}
}

// paletteColor 颜色编号对应的绘制颜色
func paletteColor(c types.BubbleColor) color.RGBA {
	idx := int(c) % len(bubblePalette)
	if idx < 0 {
		idx += len(bubblePalette)
	}
	return bubblePalette[idx]
}

// fallProgress 下落动画进度 [0, 1]
func fallProgress(em *ecs.EntityManager, id ecs.EntityID) float64 {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || lifetime.MaxLifetime <= 0 {
		return 1
	}
	return utils.Clamp01(lifetime.CurrentLifetime / lifetime.MaxLifetime)
}

// fadeColor 下落的泡泡逐渐透明
func fadeColor(c color.RGBA, progress float64) color.NRGBA {
	return withAlpha(c, uint8(utils.Lerp(200, 0, utils.EaseInCubic(progress))))
}

// withAlpha 不透明的调色板颜色换成指定透明度（非预乘）
func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
