package game

import (
	"log"
	"time"

	"github.com/decker502/bubblepark/pkg/types"
	"github.com/google/uuid"
)

// ScoreStats 一局游戏的统计数据
type ScoreStats struct {
	Score        int
	Matches      int // 消除次数
	Cleared      int // 被消除的泡泡总数
	Fallen       int // 掉落的泡泡总数
	LargestMatch int
	GridsCleared int // 网格被清空的次数
}

// ScoreManager 记录当前一局的分数
//
// 作为泡泡网格的计分接收者（AddScore）和事件监听者，
// 每一局有独立的会话ID，用于在高分榜中区分记录。
type ScoreManager struct {
	sessionID string
	startedAt time.Time
	stats     ScoreStats
}

// NewScoreManager 创建分数管理器并开始一局新的会话
func NewScoreManager() *ScoreManager {
	sm := &ScoreManager{}
	sm.Reset()
	return sm
}

// Reset 清空分数并生成新的会话ID
func (sm *ScoreManager) Reset() {
	sm.sessionID = uuid.NewString()
	sm.startedAt = time.Now()
	sm.stats = ScoreStats{}
	log.Printf("[ScoreManager] New session %s", sm.sessionID)
}

// SessionID 当前会话ID
func (sm *ScoreManager) SessionID() string {
	return sm.sessionID
}

// Score 当前总分
func (sm *ScoreManager) Score() int {
	return sm.stats.Score
}

// Stats 当前统计数据的副本
func (sm *ScoreManager) Stats() ScoreStats {
	return sm.stats
}

// AddScore 累加分数，负值被忽略
func (sm *ScoreManager) AddScore(points int) {
	if points <= 0 {
		return
	}
	sm.stats.Score += points
}

// OnMatchCleared 记录一次消除
func (sm *ScoreManager) OnMatchCleared(count int, color types.BubbleColor) {
	sm.stats.Matches++
	sm.stats.Cleared += count
	sm.stats.LargestMatch = max(sm.stats.LargestMatch, count)
	log.Printf("[ScoreManager] Match of %d (color %d), score %d", count, color, sm.stats.Score)
}

// OnBubblesFell 记录掉落
func (sm *ScoreManager) OnBubblesFell(count int) {
	sm.stats.Fallen += count
}

// OnGridEmpty 记录网格被清空
func (sm *ScoreManager) OnGridEmpty() {
	sm.stats.GridsCleared++
	log.Printf("[ScoreManager] Grid cleared (%d so far)", sm.stats.GridsCleared)
}

// Record 将当前会话转换为高分榜记录
func (sm *ScoreManager) Record() ScoreRecord {
	return ScoreRecord{
		SessionID:    sm.sessionID,
		Score:        sm.stats.Score,
		Matches:      sm.stats.Matches,
		Fallen:       sm.stats.Fallen,
		GridsCleared: sm.stats.GridsCleared,
		Duration:     time.Since(sm.startedAt).Round(time.Second),
		RecordedAt:   time.Now().UTC(),
	}
}
