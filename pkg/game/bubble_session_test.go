package game

import (
	"testing"

	"github.com/decker502/bubblepark/pkg/config"
)

func newTestSession(t *testing.T) *BubbleSession {
	t.Helper()
	s, err := NewBubbleSession(config.DefaultBubbleConfig(), 1)
	if err != nil {
		t.Fatalf("NewBubbleSession error: %v", err)
	}
	return s
}

// TestBubbleSessionStart 新会话生成完整网格，下一发颜色来自网格
func TestBubbleSessionStart(t *testing.T) {
	s := newTestSession(t)

	if got := s.Grid().SettledCount(); got != 48 {
		t.Errorf("Expected 48 bubbles, got %d", got)
	}
	shooter, ok := s.Shooter()
	if !ok {
		t.Fatal("Session should have a shooter")
	}
	present := s.Grid().ColorsPresent()
	found := false
	for _, c := range present {
		if c == shooter.NextColor {
			found = true
		}
	}
	if !found {
		t.Errorf("Next color %d not among colors present %v", shooter.NextColor, present)
	}
}

// TestBubbleSessionNilConfig 配置为空时返回错误
func TestBubbleSessionNilConfig(t *testing.T) {
	if _, err := NewBubbleSession(nil, 1); err == nil {
		t.Error("Expected an error for a nil config")
	}
}

// TestBubbleSessionShotSettles 发射的泡泡最终固定在网格上
func TestBubbleSessionShotSettles(t *testing.T) {
	s := newTestSession(t)
	before := s.Grid().SettledCount()

	if _, ok := s.Fire(); !ok {
		t.Fatal("Expected the first shot to fire")
	}

	settled := false
	for frame := 0; frame < 120 && !settled; frame++ {
		for _, r := range s.Update(1.0 / 60.0) {
			if !r.Ignored {
				settled = true
			}
		}
	}
	if !settled {
		t.Fatal("Shot never settled")
	}

	stats := s.Stats()
	if stats.Settles != 1 {
		t.Errorf("Expected 1 settle, got %d", stats.Settles)
	}

	// 没有消除时网格多一个泡泡，有消除时分数增加
	after := s.Grid().SettledCount()
	if after != before+1 && s.Score().Score() == 0 {
		t.Errorf("Expected either one more bubble or a score, got count %d -> %d, score %d",
			before, after, s.Score().Score())
	}
}

// TestBubbleSessionReset 重置后恢复初始状态
func TestBubbleSessionReset(t *testing.T) {
	s := newTestSession(t)
	firstSession := s.Score().SessionID()

	s.Rotate(1, 0.5)
	s.Fire()
	s.Update(1.0 / 60.0)
	s.Score().AddScore(100)

	s.Reset()

	if s.Score().Score() != 0 || s.Score().SessionID() == firstSession {
		t.Error("Reset should start a new scoring session")
	}
	if got := s.Grid().SettledCount(); got != 48 {
		t.Errorf("Expected 48 bubbles after reset, got %d", got)
	}
	shooter, _ := s.Shooter()
	if shooter.Angle != 0 || !shooter.CanFire() {
		t.Errorf("Shooter should be re-centered and ready, got angle %.1f cooldown %.2f", shooter.Angle, shooter.CooldownLeft)
	}

	// 网格之外不应残留泡泡实体
	if s.EntityManager().EntityCount() != len(s.Grid().AllBubbles())+2 {
		t.Errorf("Expected only grid bubbles plus grid and shooter entities, got %d entities", s.EntityManager().EntityCount())
	}
}

// TestBubbleSessionRegeneration 网格清空后等待重新生成期间不能发射
func TestBubbleSessionRegeneration(t *testing.T) {
	s := newTestSession(t)

	// 清空网格并触发一次清空事件
	s.Grid().Clear()
	s.regenSystem.OnGridEmpty()

	if !s.RegenerationPending() {
		t.Fatal("Expected a pending regeneration")
	}
	if _, ok := s.Fire(); ok {
		t.Error("Should not fire while the grid regenerates")
	}

	for i := 0; i < 60; i++ {
		s.Update(1.0 / 60.0)
	}
	if s.Grid().SettledCount() != 48 {
		t.Errorf("Expected the grid to regenerate, got %d bubbles", s.Grid().SettledCount())
	}
}
