package systems

import (
	"log"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
)

// ScoreSink 接收计分事件
type ScoreSink interface {
	AddScore(points int)
}

// BubbleEventListener 接收网格事件（计分面板、特效、关卡流程）
type BubbleEventListener interface {
	// OnMatchCleared 一组同色泡泡被消除
	OnMatchCleared(count int, color types.BubbleColor)
	// OnBubblesFell 一批泡泡失去连接而掉落
	OnBubblesFell(count int)
	// OnGridEmpty 网格上已没有泡泡，由关卡决定何时重新生成
	OnGridEmpty()
}

// BubbleEventListeners 将事件广播给多个监听者
type BubbleEventListeners []BubbleEventListener

// OnMatchCleared 实现 BubbleEventListener
func (ls BubbleEventListeners) OnMatchCleared(count int, color types.BubbleColor) {
	for _, l := range ls {
		l.OnMatchCleared(count, color)
	}
}

// OnBubblesFell 实现 BubbleEventListener
func (ls BubbleEventListeners) OnBubblesFell(count int) {
	for _, l := range ls {
		l.OnBubblesFell(count)
	}
}

// OnGridEmpty 实现 BubbleEventListener
func (ls BubbleEventListeners) OnGridEmpty() {
	for _, l := range ls {
		l.OnGridEmpty()
	}
}

// SettleResult 一次固定流程的结果
type SettleResult struct {
	Ignored   bool // 泡泡不处于可处理的状态，流程未执行
	Cell      types.Cell
	Starved   bool
	Matched   []ecs.EntityID // 被消除的泡泡（实体已标记销毁）
	Fallen    []ecs.EntityID // 掉落的泡泡（状态为 Removed，实体保留用于下落动画）
	GridEmpty bool
}

// fallingLifetime 掉落泡泡的下落动画时长（秒）
const fallingLifetime = 1.5

// BubbleSettleSystem 泡泡固定流程
//
// 一次固定严格按顺序执行：放置解析 -> 注册 -> 同色检查 -> (有消除时) 连通性检查，
// 整个流程在一次调用中完成，期间不会处理其他泡泡。
// 所有内部错误都在本地降级处理，不会中断游戏循环。
type BubbleSettleSystem struct {
	entityManager *ecs.EntityManager
	grid          *BubbleGridSystem
	score         ScoreSink
	listener      BubbleEventListener
}

// NewBubbleSettleSystem 创建固定流程系统
// 参数:
//   - em: EntityManager 实例
//   - grid: 网格系统
//   - score: 计分接收者，可为 nil
//   - listener: 事件监听者，可为 nil
func NewBubbleSettleSystem(em *ecs.EntityManager, grid *BubbleGridSystem, score ScoreSink, listener BubbleEventListener) *BubbleSettleSystem {
	return &BubbleSettleSystem{
		entityManager: em,
		grid:          grid,
		score:         score,
		listener:      listener,
	}
}

// OnSettle 处理一个飞行泡泡的接触事件
//
// 参数:
//   - bubbleID: 飞行中的泡泡
//   - impactX, impactY: 碰撞点（网格局部坐标）
//   - dirX, dirY: 碰撞前的飞行方向
//
// 返回:
//   - SettleResult: 本次流程的结果
func (s *BubbleSettleSystem) OnSettle(bubbleID ecs.EntityID, impactX, impactY, dirX, dirY float64) SettleResult {
	bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, bubbleID)
	if !ok || !s.entityManager.IsAlive(bubbleID) || bubble.State != types.BubbleInFlight {
		log.Printf("[SettleSystem] Ignored settle for entity %d (not an in-flight bubble)", bubbleID)
		return SettleResult{Ignored: true}
	}

	placement := s.grid.ResolvePlacement(impactX, impactY, dirX, dirY, bubbleID)

	// 停止运动，固定后的泡泡不再过期
	ecs.RemoveComponent[*components.VelocityComponent](s.entityManager, bubbleID)
	ecs.RemoveComponent[*components.LifetimeComponent](s.entityManager, bubbleID)

	starved := placement.Starved
	if !starved {
		if err := s.grid.Put(placement.Cell, bubbleID); err != nil {
			log.Printf("[SettleSystem] Warning: register at %v failed: %v (accepting overlap)", placement.Cell, err)
			starved = true
		}
	}
	if starved {
		log.Printf("[SettleSystem] Warning: no free cell around %v, bubble %d overlaps", placement.Cell, bubbleID)
		if err := s.grid.PlaceOverlapping(placement.Cell, bubbleID); err != nil {
			log.Printf("[SettleSystem] Error: overlap placement failed: %v", err)
			return SettleResult{Ignored: true}
		}
	}

	result := s.resolveMatches(bubbleID)
	result.Cell = placement.Cell
	result.Starved = starved
	return result
}

// CheckMatchAt 对已固定的泡泡重新执行同色检查
// 泡泡已不在网格上时为空操作
func (s *BubbleSettleSystem) CheckMatchAt(bubbleID ecs.EntityID) SettleResult {
	bubble, ok := s.grid.liveBubble(bubbleID)
	if !ok || !bubble.HasCell {
		return SettleResult{Ignored: true}
	}

	result := s.resolveMatches(bubbleID)
	result.Cell = bubble.Cell
	return result
}

// resolveMatches 同色消除 + 连通性检查 + 清空检测
// 连通性检查只在有泡泡被消除后执行
func (s *BubbleSettleSystem) resolveMatches(seed ecs.EntityID) SettleResult {
	var result SettleResult
	cfg := s.grid.Config()

	seedColor := types.BubbleColor(0)
	if bubble, ok := s.grid.liveBubble(seed); ok {
		seedColor = bubble.Color
	}

	group := s.grid.FindGroup(seed)
	if !s.grid.IsMatchable(group) {
		return result
	}

	for _, id := range group {
		s.grid.RemoveBubble(id)
	}
	result.Matched = group

	if s.score != nil {
		s.score.AddScore(len(group) * cfg.PointsPerBubble)
	}
	if s.listener != nil {
		s.listener.OnMatchCleared(len(group), seedColor)
	}
	log.Printf("[SettleSystem] Cleared %d bubbles of color %d", len(group), seedColor)

	// 消除空出的格子交给原先重叠在上面的泡泡
	if n := s.grid.ReclaimOverlaps(); n > 0 {
		log.Printf("[SettleSystem] %d overlapping bubbles took over freed cells", n)
	}

	falling := s.grid.FindFalling()
	for _, id := range falling {
		s.detachFalling(id)
		if s.score != nil {
			s.score.AddScore(cfg.FallBonusPerBubble)
		}
	}
	result.Fallen = falling
	if len(falling) > 0 {
		if s.listener != nil {
			s.listener.OnBubblesFell(len(falling))
		}
		log.Printf("[SettleSystem] %d bubbles lost their anchor and fell", len(falling))
	}

	if s.grid.SettledCount() == 0 {
		result.GridEmpty = true
		if s.listener != nil {
			s.listener.OnGridEmpty()
		}
		log.Printf("[SettleSystem] Grid is empty")
	}

	return result
}

// detachFalling 将泡泡移出网格，交给飞行系统播放下落动画
func (s *BubbleSettleSystem) detachFalling(id ecs.EntityID) {
	s.grid.Detach(id)
	if !s.entityManager.IsAlive(id) {
		return
	}
	s.entityManager.AddComponent(id, &components.VelocityComponent{})
	s.entityManager.AddComponent(id, &components.LifetimeComponent{MaxLifetime: fallingLifetime})
}
