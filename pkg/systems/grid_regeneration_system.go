package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
)

// regenerateTimerName 网格实体上重新生成计时器的名称
const regenerateTimerName = "grid_regenerate"

// GridRegenerationSystem 网格清空后延迟重新生成
//
// 通过 BubbleEventListener 接收网格清空通知，在网格实体上挂一个 TimerComponent，
// 计时结束后重新填充网格。配置 ManualRegenerate 时只记录状态，由玩家手动重置。
type GridRegenerationSystem struct {
	entityManager *ecs.EntityManager
	grid          *BubbleGridSystem
	rng           *rand.Rand

	generations int
}

// NewGridRegenerationSystem 创建重新生成系统
func NewGridRegenerationSystem(em *ecs.EntityManager, grid *BubbleGridSystem, rng *rand.Rand) *GridRegenerationSystem {
	return &GridRegenerationSystem{
		entityManager: em,
		grid:          grid,
		rng:           rng,
	}
}

// Generations 返回网格已被生成的次数（包括初始生成）
func (s *GridRegenerationSystem) Generations() int {
	return s.generations
}

// Pending 是否有等待中的重新生成
func (s *GridRegenerationSystem) Pending() bool {
	return ecs.HasComponent[*components.TimerComponent](s.entityManager, s.grid.GridEntity())
}

// Regenerate 立即重新生成网格，并取消等待中的计时器
func (s *GridRegenerationSystem) Regenerate() int {
	ecs.RemoveComponent[*components.TimerComponent](s.entityManager, s.grid.GridEntity())
	count := s.grid.Populate(s.rng)
	s.generations++
	return count
}

// OnMatchCleared 实现 BubbleEventListener
func (s *GridRegenerationSystem) OnMatchCleared(count int, color types.BubbleColor) {}

// OnBubblesFell 实现 BubbleEventListener
func (s *GridRegenerationSystem) OnBubblesFell(count int) {}

// OnGridEmpty 网格被清空，挂上重新生成计时器
func (s *GridRegenerationSystem) OnGridEmpty() {
	if s.grid.Config().ManualRegenerate {
		log.Printf("[GridRegenerationSystem] Grid cleared, waiting for manual reset")
		return
	}
	if s.Pending() {
		return
	}
	s.entityManager.AddComponent(s.grid.GridEntity(), &components.TimerComponent{
		Name:       regenerateTimerName,
		TargetTime: s.grid.Config().RegenerateDelay,
	})
	log.Printf("[GridRegenerationSystem] Grid cleared, regenerating in %.2fs", s.grid.Config().RegenerateDelay)
}

// Update 推进计时器，到时后重新生成网格
func (s *GridRegenerationSystem) Update(deltaTime float64) {
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, s.grid.GridEntity())
	if !ok || timer.Name != regenerateTimerName {
		return
	}

	timer.CurrentTime += deltaTime
	if timer.CurrentTime >= timer.TargetTime {
		timer.IsReady = true
	}
	if timer.IsReady {
		s.Regenerate()
	}
}
