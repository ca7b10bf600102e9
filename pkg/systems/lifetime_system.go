package systems

import (
	"log"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
//
// 飞行泡泡一直没有粘住时在 MaxLifetime 后被清理；掉落动画结束的泡泡同样在这里清理。
// 已固定的泡泡不会过期：即使组件残留也会被跳过，保证不与网格占用表竞争。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	expired       int
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// ExpiredCount 返回累计过期的实体数
func (s *LifetimeSystem) ExpiredCount() int {
	return s.expired
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		if !s.entityManager.IsAlive(id) {
			continue
		}

		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, id); ok && bubble.IsSettled() {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		// 如果已过期,标记实体待删除
		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
			s.expired++
			log.Printf("[LifetimeSystem] Entity %d expired after %.2fs", id, lifetime.CurrentLifetime)
		}
	}
}
