package components

import "github.com/decker502/bubblepark/pkg/types"

// ShooterComponent 泡泡发射器
//
// Angle 为 0 表示垂直向上，正值向右偏转，始终限制在 [-MaxAngle, MaxAngle]。
type ShooterComponent struct {
	X, Y float64 // 发射点（网格局部坐标）

	Angle         float64 // 当前角度（度）
	MaxAngle      float64 // 最大偏转角（度）
	RotationSpeed float64 // 旋转速度（度/秒）

	Cooldown     float64 // 两次发射的最小间隔（秒）
	CooldownLeft float64 // 剩余冷却时间（秒）
	ShotSpeed    float64 // 泡泡初速度（像素/秒）
	MaxLifetime  float64 // 飞行泡泡最长存活时间（秒）

	NextColor  types.BubbleColor // 下一发泡泡的颜色
	ShotsFired int
}

// CanFire 冷却是否结束
func (s *ShooterComponent) CanFire() bool {
	return s.CooldownLeft <= 0
}
