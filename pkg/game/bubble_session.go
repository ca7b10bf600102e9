package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/entities"
	"github.com/decker502/bubblepark/pkg/systems"
)

// BubbleSession 一局泡泡游戏的全部状态
//
// 持有实体管理器、网格实体、发射器以及所有系统，并把计分与重新生成
// 接到网格的事件上。场景与无界面模拟工具共用它，界面只负责输入与绘制。
type BubbleSession struct {
	cfg           *config.BubbleConfig
	entityManager *ecs.EntityManager
	rng           *rand.Rand

	gridSystem     *systems.BubbleGridSystem
	settleSystem   *systems.BubbleSettleSystem
	flightSystem   *systems.BubbleFlightSystem
	lifetimeSystem *systems.LifetimeSystem
	shooterSystem  *systems.ShooterSystem
	regenSystem    *systems.GridRegenerationSystem

	score *ScoreManager
	stats SessionStats
}

// SessionStats 会话级别的计数（与分数无关）
type SessionStats struct {
	Settles  int
	Starved  int
	Expired  int // 过期清理的实体数（未粘住的泡泡与下落结束的泡泡）
	Frames   int
	Duration float64
}

// NewBubbleSession 创建一局新的游戏并生成初始网格
//
// 参数：
//   - cfg: 泡泡配置
//   - seed: 随机种子，相同种子生成相同的网格与颜色序列
func NewBubbleSession(cfg *config.BubbleConfig, seed int64) (*BubbleSession, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bubble config cannot be nil")
	}

	em := ecs.NewEntityManager()
	gridEntity, err := entities.NewBubbleGrid(em, cfg.Grid)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}

	s := &BubbleSession{
		cfg:           cfg,
		entityManager: em,
		rng:           rand.New(rand.NewSource(seed)),
		score:         NewScoreManager(),
	}

	s.gridSystem = systems.NewBubbleGridSystem(em, gridEntity, cfg.Grid)
	s.regenSystem = systems.NewGridRegenerationSystem(em, s.gridSystem, s.rng)
	s.settleSystem = systems.NewBubbleSettleSystem(em, s.gridSystem, s.score,
		systems.BubbleEventListeners{s.score, s.regenSystem})
	s.flightSystem = systems.NewBubbleFlightSystem(em, s.gridSystem, s.settleSystem)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)

	s.regenSystem.Regenerate()

	shooterEntity := entities.NewShooter(em, cfg.Grid, cfg.Shooter, 0)
	s.shooterSystem = systems.NewShooterSystem(em, s.gridSystem, shooterEntity, s.rng)
	if shooter, ok := s.shooterSystem.Shooter(); ok {
		shooter.NextColor = s.shooterSystem.RollColor()
	}

	log.Printf("[BubbleSession] Started session %s (seed %d)", s.score.SessionID(), seed)
	return s, nil
}

// Config 返回配置
func (s *BubbleSession) Config() *config.BubbleConfig {
	return s.cfg
}

// EntityManager 返回实体管理器
func (s *BubbleSession) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Grid 返回网格系统
func (s *BubbleSession) Grid() *systems.BubbleGridSystem {
	return s.gridSystem
}

// Score 返回分数管理器
func (s *BubbleSession) Score() *ScoreManager {
	return s.score
}

// Stats 返回会话计数
func (s *BubbleSession) Stats() SessionStats {
	st := s.stats
	st.Expired = s.lifetimeSystem.ExpiredCount()
	return st
}

// Shooter 返回发射器组件
func (s *BubbleSession) Shooter() (*components.ShooterComponent, bool) {
	return s.shooterSystem.Shooter()
}

// RegenerationPending 网格是否在等待重新生成
func (s *BubbleSession) RegenerationPending() bool {
	return s.regenSystem.Pending()
}

// Rotate 旋转发射器，axis 取值 [-1, 1]
func (s *BubbleSession) Rotate(axis, deltaTime float64) {
	s.shooterSystem.Rotate(axis, deltaTime)
}

// Fire 发射一个泡泡
// 网格等待重新生成时不能发射
func (s *BubbleSession) Fire() (ecs.EntityID, bool) {
	if s.regenSystem.Pending() {
		return ecs.InvalidEntity, false
	}
	return s.shooterSystem.Fire()
}

// Update 推进一帧
//
// 顺序：冷却 -> 飞行与固定 -> 生命周期 -> 重新生成 -> 清理销毁的实体。
// 固定流程在飞行系统内部同步完成，一帧内的多次固定依次执行。
//
// 返回：
//   - []systems.SettleResult: 本帧的固定结果
func (s *BubbleSession) Update(deltaTime float64) []systems.SettleResult {
	s.shooterSystem.Update(deltaTime)
	results := s.flightSystem.Update(deltaTime)
	for _, r := range results {
		if r.Ignored {
			continue
		}
		s.stats.Settles++
		if r.Starved {
			s.stats.Starved++
		}
	}
	s.lifetimeSystem.Update(deltaTime)
	s.regenSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
	s.stats.Frames++
	s.stats.Duration += deltaTime
	return results
}

// Reset 重新开始：清除所有泡泡、重置分数并重新生成网格
func (s *BubbleSession) Reset() {
	s.gridSystem.Clear()
	for _, id := range ecs.GetEntitiesWith1[*components.BubbleComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()

	s.score.Reset()
	s.stats = SessionStats{}
	s.regenSystem.Regenerate()

	if shooter, ok := s.shooterSystem.Shooter(); ok {
		shooter.Angle = 0
		shooter.CooldownLeft = 0
		shooter.NextColor = s.shooterSystem.RollColor()
	}
	log.Printf("[BubbleSession] Reset, new session %s", s.score.SessionID())
}
