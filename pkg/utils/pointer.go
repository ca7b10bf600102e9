package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一处理鼠标和触摸输入
type PointerState struct {
	// 是否有点击/触摸刚刚发生
	JustPressed bool
	// 指针位置（屏幕坐标）
	X, Y int
	// 是否来自触摸
	IsTouching bool
}

// GetPointerState 获取当前帧的指针状态，优先检测触摸
func GetPointerState() PointerState {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{JustPressed: true, X: x, Y: y, IsTouching: true}
	}
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{X: x, Y: y, IsTouching: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}
