package utils

import "math"

// AimSegment 瞄准线的一段（网格局部坐标）
type AimSegment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// AimDirection 将发射角转换为单位方向向量
// 角度 0 表示垂直向上（-Y），正角度向右偏转
func AimDirection(angleDeg float64) (dx, dy float64) {
	rad := angleDeg * math.Pi / 180
	return math.Sin(rad), -math.Cos(rad)
}

// Normalize 归一化向量，零向量返回 ok=false
func Normalize(dx, dy float64) (nx, ny float64, ok bool) {
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return 0, 0, false
	}
	return dx / length, dy / length, true
}

// Reflect 按法线 (nx, ny) 反射方向向量，法线需为单位向量
func Reflect(dx, dy, nx, ny float64) (float64, float64) {
	dot := dx*nx + dy*ny
	return dx - 2*dot*nx, dy - 2*dot*ny
}

// ComputeAimLine 计算带一次侧墙反弹的瞄准线
//
// 射线沿发射方向延伸 length；若在此之前碰到左右墙，则在碰撞点截断，
// 并追加一段长度为 length/2 的反射线段。
//
// 参数:
//   - startX, startY: 发射点（网格局部坐标）
//   - angleDeg: 发射角（度）
//   - length: 瞄准线最大长度
//   - leftWall, rightWall: 左右墙的X坐标
//
// 返回:
//   - []AimSegment: 1 或 2 段线段
func ComputeAimLine(startX, startY, angleDeg, length, leftWall, rightWall float64) []AimSegment {
	dx, dy := AimDirection(angleDeg)

	endX := startX + dx*length
	endY := startY + dy*length

	var wallX, normalX float64
	switch {
	case dx > 1e-9:
		wallX, normalX = rightWall, -1
	case dx < -1e-9:
		wallX, normalX = leftWall, 1
	default:
		return []AimSegment{{X1: startX, Y1: startY, X2: endX, Y2: endY}}
	}

	t := (wallX - startX) / dx
	if t < 0 || t >= length {
		return []AimSegment{{X1: startX, Y1: startY, X2: endX, Y2: endY}}
	}

	hitX := startX + dx*t
	hitY := startY + dy*t
	rdx, rdy := Reflect(dx, dy, normalX, 0)
	half := length * 0.5

	return []AimSegment{
		{X1: startX, Y1: startY, X2: hitX, Y2: hitY},
		{X1: hitX, Y1: hitY, X2: hitX + rdx*half, Y2: hitY + rdy*half},
	}
}

// AimAngleTo 计算从发射点指向目标点的发射角（度），限制在 ±maxAngle
// 目标不在发射点上方时返回 ok=false
func AimAngleTo(fromX, fromY, toX, toY, maxAngle float64) (angle float64, ok bool) {
	dx, dy := toX-fromX, toY-fromY
	if dy >= 0 {
		return 0, false
	}
	angle = math.Atan2(dx, -dy) * 180 / math.Pi
	return math.Max(-maxAngle, math.Min(maxAngle, angle)), true
}
