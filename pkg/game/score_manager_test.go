package game

import (
	"testing"

	"github.com/google/uuid"
)

// TestScoreManagerAccumulates 测试分数与统计累加
func TestScoreManagerAccumulates(t *testing.T) {
	sm := NewScoreManager()

	sm.AddScore(30)
	sm.OnMatchCleared(3, 1)
	sm.AddScore(20)
	sm.AddScore(20)
	sm.OnBubblesFell(2)
	sm.AddScore(-5)
	sm.OnMatchCleared(5, 2)
	sm.OnGridEmpty()

	stats := sm.Stats()
	if stats.Score != 70 {
		t.Errorf("Score: got %d, want 70", stats.Score)
	}
	if stats.Matches != 2 || stats.Cleared != 8 || stats.LargestMatch != 5 {
		t.Errorf("Unexpected match stats: %+v", stats)
	}
	if stats.Fallen != 2 || stats.GridsCleared != 1 {
		t.Errorf("Unexpected fall/grid stats: %+v", stats)
	}
}

// TestScoreManagerReset 重置后分数清零并换一个会话ID
func TestScoreManagerReset(t *testing.T) {
	sm := NewScoreManager()
	first := sm.SessionID()
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("Session ID %q is not a UUID: %v", first, err)
	}

	sm.AddScore(100)
	sm.Reset()

	if sm.Score() != 0 {
		t.Errorf("Score after reset: got %d, want 0", sm.Score())
	}
	if sm.SessionID() == first {
		t.Error("Reset should start a new session")
	}
}

// TestScoreManagerRecord 测试转换为高分榜记录
func TestScoreManagerRecord(t *testing.T) {
	sm := NewScoreManager()
	sm.AddScore(50)
	sm.OnMatchCleared(3, 0)

	record := sm.Record()
	if record.SessionID != sm.SessionID() || record.Score != 50 || record.Matches != 1 {
		t.Errorf("Unexpected record: %+v", record)
	}
	if record.RecordedAt.IsZero() {
		t.Error("RecordedAt should be set")
	}
}
