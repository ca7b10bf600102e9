package game

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// maxHighScores 高分榜保留的记录数
const maxHighScores = 10

// 存储路径常量
const (
	scoresObject   = "scores"
	scoresProperty = "best"
)

// ScoreRecord 高分榜中的一条记录
type ScoreRecord struct {
	SessionID    string        `yaml:"sessionId"`
	Score        int           `yaml:"score"`
	Matches      int           `yaml:"matches"`
	Fallen       int           `yaml:"fallen"`
	GridsCleared int           `yaml:"gridsCleared"`
	Duration     time.Duration `yaml:"duration"`
	RecordedAt   time.Time     `yaml:"recordedAt"`
}

// highScoreTable 持久化格式
type highScoreTable struct {
	Records []ScoreRecord `yaml:"records"`
}

// HighScoreStore 高分榜
// 使用 gdata 跨平台存储，gdataManager 为 nil 时只保存在内存中
type HighScoreStore struct {
	gdataManager *gdata.Manager
	records      []ScoreRecord
}

// NewHighScoreStore 创建高分榜并加载已保存的记录
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *HighScoreStore: 加载失败时仍返回可用的空榜
//   - error: 加载失败的原因
func NewHighScoreStore(gdataManager *gdata.Manager) (*HighScoreStore, error) {
	hs := &HighScoreStore{gdataManager: gdataManager}
	if err := hs.Load(); err != nil {
		log.Printf("[HighScoreStore] Warning: Failed to load high scores: %v (starting empty)", err)
		return hs, err
	}
	return hs, nil
}

// Load 从 gdata 加载高分榜
func (hs *HighScoreStore) Load() error {
	hs.records = nil
	if hs.gdataManager == nil {
		return nil
	}
	if !hs.gdataManager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil
	}

	data, err := hs.gdataManager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return fmt.Errorf("failed to load high scores: %w", err)
	}

	var table highScoreTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to unmarshal high scores: %w", err)
	}

	hs.records = table.Records
	hs.sortAndTrim()
	log.Printf("[HighScoreStore] Loaded %d high scores", len(hs.records))
	return nil
}

// Save 保存高分榜，降级模式下不做任何事
func (hs *HighScoreStore) Save() error {
	if hs.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(highScoreTable{Records: hs.records})
	if err != nil {
		return fmt.Errorf("failed to marshal high scores: %w", err)
	}
	if err := hs.gdataManager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}
	return nil
}

// Submit 提交一条记录并保存
//
// 返回：
//   - int: 记录在榜中的名次（从 1 开始），未上榜或分数为 0 时返回 0
//   - error: 保存失败（内存中的榜单仍已更新）
func (hs *HighScoreStore) Submit(record ScoreRecord) (int, error) {
	if record.Score <= 0 {
		return 0, nil
	}

	// 同一会话只保留最新的一条
	hs.records = slices.DeleteFunc(hs.records, func(r ScoreRecord) bool {
		return r.SessionID == record.SessionID
	})
	hs.records = append(hs.records, record)
	hs.sortAndTrim()

	rank := slices.IndexFunc(hs.records, func(r ScoreRecord) bool {
		return r.SessionID == record.SessionID
	}) + 1
	if rank > 0 {
		log.Printf("[HighScoreStore] Session %s ranked #%d with %d points", record.SessionID, rank, record.Score)
	}

	return rank, hs.Save()
}

// Best 最高分，没有记录时为 0
func (hs *HighScoreStore) Best() int {
	if len(hs.records) == 0 {
		return 0
	}
	return hs.records[0].Score
}

// Records 返回高分榜副本（按分数降序）
func (hs *HighScoreStore) Records() []ScoreRecord {
	return slices.Clone(hs.records)
}

// sortAndTrim 按分数降序排列（同分时早的记录在前）并截断
func (hs *HighScoreStore) sortAndTrim() {
	slices.SortStableFunc(hs.records, func(a, b ScoreRecord) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.RecordedAt.Compare(b.RecordedAt)
	})
	if len(hs.records) > maxHighScores {
		hs.records = hs.records[:maxHighScores]
	}
}
