package entities

import (
	"fmt"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
)

// NewBubbleGrid 创建泡泡网格实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 网格配置
//
// 返回:
//   - ecs.EntityID: 网格实体ID
//   - error: 参数不合法时返回错误
func NewBubbleGrid(em *ecs.EntityManager, cfg config.GridConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.Rows < 1 || cfg.Columns < 1 || cfg.MaxRows < cfg.Rows {
		return 0, fmt.Errorf("invalid grid size: rows=%d columns=%d maxRows=%d", cfg.Rows, cfg.Columns, cfg.MaxRows)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, components.NewBubbleGridComponent(cfg.Rows, cfg.Columns, cfg.MaxRows))
	return entityID, nil
}

// NewGridBubble 创建一个待放入网格的泡泡实体
// 泡泡初始处于 InFlight 状态，由 BubbleGridSystem.Put 负责固定
//
// 参数:
//   - em: 实体管理器
//   - x, y: 网格局部坐标
//   - color: 颜色编号
//   - radius: 碰撞半径
func NewGridBubble(em *ecs.EntityManager, x, y float64, color types.BubbleColor, radius float64) ecs.EntityID {
	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.BubbleComponent{
		Color: color,
		State: types.BubbleInFlight,
	})
	em.AddComponent(entityID, &components.CollisionComponent{Radius: radius})

	return entityID
}

// NewProjectileBubble 创建飞行中的泡泡（由发射器射出）
//
// 参数:
//   - em: 实体管理器
//   - x, y: 发射点（网格局部坐标）
//   - vx, vy: 初速度（像素/秒）
//   - color: 颜色编号
//   - radius: 碰撞半径
//   - maxLifetime: 未粘住时的最长存活时间（秒）
//
// 返回:
//   - ecs.EntityID: 泡泡实体ID
//   - error: 参数不合法时返回错误
func NewProjectileBubble(em *ecs.EntityManager, x, y, vx, vy float64, color types.BubbleColor, radius, maxLifetime float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if radius <= 0 {
		return 0, fmt.Errorf("bubble radius must be positive, got %v", radius)
	}
	if maxLifetime <= 0 {
		return 0, fmt.Errorf("bubble lifetime must be positive, got %v", maxLifetime)
	}

	entityID := NewGridBubble(em, x, y, color, radius)

	em.AddComponent(entityID, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(entityID, &components.LifetimeComponent{MaxLifetime: maxLifetime})

	return entityID, nil
}

// NewShooter 创建发射器实体，发射点位于网格底部中央
func NewShooter(em *ecs.EntityManager, grid config.GridConfig, shooter config.ShooterConfig, firstColor types.BubbleColor) ecs.EntityID {
	x, y := grid.LauncherPosition()

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.ShooterComponent{
		X:             x,
		Y:             y,
		MaxAngle:      shooter.MaxAngle,
		RotationSpeed: shooter.RotationSpeed,
		Cooldown:      shooter.Cooldown,
		ShotSpeed:     shooter.ShotSpeed,
		MaxLifetime:   shooter.MaxLifetime,
		NextColor:     firstColor,
	})
	return entityID
}
