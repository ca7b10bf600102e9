package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager，无法创建时返回 nil
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("bubblepark_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil
	}

	// 测试结束后删除测试目录
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})

	return manager
}

func record(session string, score int, at time.Time) ScoreRecord {
	return ScoreRecord{SessionID: session, Score: score, RecordedAt: at}
}

// TestHighScoreStoreNilGdata 降级模式下仍可在内存中使用
func TestHighScoreStoreNilGdata(t *testing.T) {
	hs, err := NewHighScoreStore(nil)
	if err != nil {
		t.Fatalf("NewHighScoreStore(nil) error: %v", err)
	}
	if hs.Best() != 0 {
		t.Errorf("Best on empty store: got %d, want 0", hs.Best())
	}

	rank, err := hs.Submit(record("a", 120, time.Now()))
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rank != 1 || hs.Best() != 120 {
		t.Errorf("Expected rank 1 and best 120, got rank=%d best=%d", rank, hs.Best())
	}
}

// TestHighScoreStoreOrdering 按分数降序排列，同分时早的记录在前
func TestHighScoreStoreOrdering(t *testing.T) {
	hs, _ := NewHighScoreStore(nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	hs.Submit(record("a", 50, base))
	hs.Submit(record("b", 200, base.Add(time.Minute)))
	hs.Submit(record("c", 50, base.Add(-time.Minute)))
	rank, _ := hs.Submit(record("d", 100, base))

	if rank != 2 {
		t.Errorf("Expected d to rank 2, got %d", rank)
	}

	want := []string{"b", "d", "c", "a"}
	records := hs.Records()
	for i, session := range want {
		if records[i].SessionID != session {
			t.Errorf("Rank %d: got %s, want %s", i+1, records[i].SessionID, session)
		}
	}
}

// TestHighScoreStoreTrim 超过上限的记录被截断，未上榜返回 0
func TestHighScoreStoreTrim(t *testing.T) {
	hs, _ := NewHighScoreStore(nil)
	now := time.Now()
	for i := 0; i < maxHighScores; i++ {
		hs.Submit(record(fmt.Sprintf("s%d", i), 100+i, now))
	}

	rank, _ := hs.Submit(record("low", 10, now))
	if rank != 0 {
		t.Errorf("Expected a low score to miss the table, got rank %d", rank)
	}
	if len(hs.Records()) != maxHighScores {
		t.Errorf("Expected %d records, got %d", maxHighScores, len(hs.Records()))
	}

	if rank, _ := hs.Submit(record("zero", 0, now)); rank != 0 {
		t.Errorf("Zero score should not be recorded, got rank %d", rank)
	}
}

// TestHighScoreStoreSameSession 同一会话重复提交只保留最新一条
func TestHighScoreStoreSameSession(t *testing.T) {
	hs, _ := NewHighScoreStore(nil)
	hs.Submit(record("a", 50, time.Now()))
	hs.Submit(record("a", 80, time.Now()))

	if len(hs.Records()) != 1 || hs.Best() != 80 {
		t.Errorf("Expected a single record of 80, got %+v", hs.Records())
	}
}

// TestHighScoreStorePersistence 保存后由新的实例重新加载
func TestHighScoreStorePersistence(t *testing.T) {
	manager := createTestGdataManager(t, "persist")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	hs, err := NewHighScoreStore(manager)
	if err != nil {
		t.Fatalf("NewHighScoreStore error: %v", err)
	}
	if _, err := hs.Submit(ScoreRecord{
		SessionID:  "persisted",
		Score:      340,
		Matches:    7,
		Duration:   95 * time.Second,
		RecordedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	reloaded, err := NewHighScoreStore(manager)
	if err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	records := reloaded.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after reload, got %d", len(records))
	}
	got := records[0]
	if got.SessionID != "persisted" || got.Score != 340 || got.Matches != 7 || got.Duration != 95*time.Second {
		t.Errorf("Unexpected reloaded record: %+v", got)
	}
}

// TestHighScoreStoreCorruptData 损坏的数据不会阻止创建
func TestHighScoreStoreCorruptData(t *testing.T) {
	manager := createTestGdataManager(t, "corrupt")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}
	if err := manager.SaveObjectProp(scoresObject, scoresProperty, []byte("records: [not: {valid")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	hs, err := NewHighScoreStore(manager)
	if err == nil {
		t.Error("Expected a load error for corrupt data")
	}
	if hs == nil || hs.Best() != 0 {
		t.Error("Store should still be usable after a load error")
	}
}
