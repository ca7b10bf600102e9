package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/entities"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/decker502/bubblepark/pkg/utils"
)

// rotationDeadzone 输入轴小于此值时忽略
const rotationDeadzone = 0.1

// ShooterSystem 处理发射器的旋转、冷却与发射
type ShooterSystem struct {
	entityManager *ecs.EntityManager
	grid          *BubbleGridSystem
	shooterEntity ecs.EntityID
	rng           *rand.Rand
}

// NewShooterSystem 创建发射器系统
func NewShooterSystem(em *ecs.EntityManager, grid *BubbleGridSystem, shooterEntity ecs.EntityID, rng *rand.Rand) *ShooterSystem {
	return &ShooterSystem{
		entityManager: em,
		grid:          grid,
		shooterEntity: shooterEntity,
		rng:           rng,
	}
}

// Shooter 返回发射器组件
func (s *ShooterSystem) Shooter() (*components.ShooterComponent, bool) {
	return ecs.GetComponent[*components.ShooterComponent](s.entityManager, s.shooterEntity)
}

// Rotate 按输入轴旋转发射器
// axis 取值 [-1, 1]，负值向左
func (s *ShooterSystem) Rotate(axis, deltaTime float64) {
	shooter, ok := s.Shooter()
	if !ok {
		return
	}
	if axis > -rotationDeadzone && axis < rotationDeadzone {
		return
	}
	shooter.Angle += axis * shooter.RotationSpeed * deltaTime
	if shooter.Angle > shooter.MaxAngle {
		shooter.Angle = shooter.MaxAngle
	}
	if shooter.Angle < -shooter.MaxAngle {
		shooter.Angle = -shooter.MaxAngle
	}
}

// Update 推进发射冷却
func (s *ShooterSystem) Update(deltaTime float64) {
	shooter, ok := s.Shooter()
	if !ok {
		return
	}
	if shooter.CooldownLeft > 0 {
		shooter.CooldownLeft -= deltaTime
		if shooter.CooldownLeft < 0 {
			shooter.CooldownLeft = 0
		}
	}
}

// Fire 沿当前角度发射一个泡泡
//
// 返回:
//   - ecs.EntityID: 新的飞行泡泡
//   - bool: 冷却未结束或创建失败时为 false
func (s *ShooterSystem) Fire() (ecs.EntityID, bool) {
	shooter, ok := s.Shooter()
	if !ok || !shooter.CanFire() {
		return ecs.InvalidEntity, false
	}

	dx, dy := utils.AimDirection(shooter.Angle)
	radius := s.grid.Config().Spacing * 0.5
	id, err := entities.NewProjectileBubble(s.entityManager,
		shooter.X, shooter.Y,
		dx*shooter.ShotSpeed, dy*shooter.ShotSpeed,
		shooter.NextColor, radius, shooter.MaxLifetime)
	if err != nil {
		log.Printf("[ShooterSystem] Error: failed to fire: %v", err)
		return ecs.InvalidEntity, false
	}

	shooter.CooldownLeft = shooter.Cooldown
	shooter.ShotsFired++
	shooter.NextColor = s.RollColor()
	return id, true
}

// RollColor 从网格上仍存在的颜色中随机选择下一发的颜色
// 网格为空时从完整调色板中选择
func (s *ShooterSystem) RollColor() types.BubbleColor {
	colors := s.grid.ColorsPresent()
	if len(colors) == 0 {
		return types.BubbleColor(s.rng.Intn(s.grid.Config().ColorCount))
	}
	return colors[s.rng.Intn(len(colors))]
}
