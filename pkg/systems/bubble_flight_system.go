package systems

import (
	"math"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/decker502/bubblepark/pkg/utils"
)

// fallGravity 掉落泡泡的重力加速度（像素/秒²）
const fallGravity = 1800.0

// BubbleFlightSystem 处理飞行泡泡的运动与接触
//
// 飞行泡泡碰到左右墙时镜面反弹；碰到已固定的泡泡或天花板时，
// 计算接触点并交给 BubbleSettleSystem 固定。
// 掉落中的泡泡（Removed 且带速度）只受重力影响，由 LifetimeSystem 清理。
type BubbleFlightSystem struct {
	entityManager *ecs.EntityManager
	grid          *BubbleGridSystem
	settle        *BubbleSettleSystem
	leftWall      float64
	rightWall     float64
}

// NewBubbleFlightSystem 创建飞行系统
func NewBubbleFlightSystem(em *ecs.EntityManager, grid *BubbleGridSystem, settle *BubbleSettleSystem) *BubbleFlightSystem {
	left, right := grid.Config().BoardWalls()
	return &BubbleFlightSystem{
		entityManager: em,
		grid:          grid,
		settle:        settle,
		leftWall:      left,
		rightWall:     right,
	}
}

// settledTarget 一次更新中缓存的已固定泡泡位置
type settledTarget struct {
	x, y   float64
	radius float64
}

// Update 推进所有带速度的泡泡
//
// 返回:
//   - []SettleResult: 本帧发生的固定结果，按发生顺序排列
func (s *BubbleFlightSystem) Update(deltaTime float64) []SettleResult {
	movers := ecs.GetEntitiesWith3[
		*components.BubbleComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	var results []SettleResult
	targets := s.collectTargets()

	for _, id := range movers {
		bubble, _ := ecs.GetComponent[*components.BubbleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		switch bubble.State {
		case types.BubbleRemoved:
			vel.VY += fallGravity * deltaTime
			pos.X += vel.VX * deltaTime
			pos.Y += vel.VY * deltaTime
		case types.BubbleInFlight:
			if result, settled := s.advance(id, pos, vel, targets, deltaTime); settled {
				results = append(results, result)
				// 固定改变了网格，后续泡泡需要新的目标集合
				targets = s.collectTargets()
			}
		}
	}

	return results
}

// collectTargets 收集所有已固定泡泡的位置
func (s *BubbleFlightSystem) collectTargets() []settledTarget {
	ids := s.grid.AllBubbles()
	targets := make([]settledTarget, 0, len(ids))
	for _, id := range ids {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		radius := s.grid.Config().Spacing * 0.5
		if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
			radius = col.Radius
		}
		targets = append(targets, settledTarget{x: pos.X, y: pos.Y, radius: radius})
	}
	return targets
}

// advance 以子步推进一个飞行泡泡，防止高速穿透
func (s *BubbleFlightSystem) advance(id ecs.EntityID, pos *components.PositionComponent, vel *components.VelocityComponent,
	targets []settledTarget, deltaTime float64) (SettleResult, bool) {

	radius := s.grid.Config().Spacing * 0.5
	if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		radius = col.Radius
	}

	speed := math.Hypot(vel.VX, vel.VY)
	steps := 1
	if maxStep := radius * 0.5; speed*deltaTime > maxStep {
		steps = int(math.Ceil(speed * deltaTime / maxStep))
	}
	dt := deltaTime / float64(steps)

	for i := 0; i < steps; i++ {
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt

		// 左右墙反弹
		if pos.X-radius < s.leftWall && vel.VX < 0 {
			pos.X = s.leftWall + radius
			vel.VX, vel.VY = utils.Reflect(vel.VX, vel.VY, 1, 0)
		} else if pos.X+radius > s.rightWall && vel.VX > 0 {
			pos.X = s.rightWall - radius
			vel.VX, vel.VY = utils.Reflect(vel.VX, vel.VY, -1, 0)
		}

		// 天花板：第 0 行泡泡的顶边
		ceilingY := float64(s.grid.CeilingRow())*s.grid.Lattice().RowHeight - radius
		if pos.Y-radius <= ceilingY {
			return s.settle.OnSettle(id, pos.X, ceilingY, vel.VX, vel.VY), true
		}

		// 已固定的泡泡
		for _, t := range targets {
			d := utils.Distance(pos.X, pos.Y, t.x, t.y)
			if d > radius+t.radius {
				continue
			}
			contactX, contactY := t.x, t.y
			if nx, ny, ok := utils.Normalize(pos.X-t.x, pos.Y-t.y); ok {
				contactX += nx * t.radius
				contactY += ny * t.radius
			}
			return s.settle.OnSettle(id, contactX, contactY, vel.VX, vel.VY), true
		}
	}

	return SettleResult{}, false
}
