package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/decker502/bubblepark/pkg/config"
)

// TestRunDeterministic 相同种子得到相同结果
func TestRunDeterministic(t *testing.T) {
	cfg := config.DefaultBubbleConfig()

	first, err := run(cfg, 30, 9, 600)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	second, err := run(cfg, 30, 9, 600)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if first.Score != second.Score || first.Remaining != second.Remaining {
		t.Errorf("Expected identical runs, got %+v and %+v", first.Score, second.Score)
	}
	if first.Fired == 0 || first.Counters.Settles == 0 {
		t.Errorf("Expected shots to fire and settle, got %+v", first)
	}
	if first.StalePrune != 0 {
		t.Errorf("Expected no stale entries in a normal run, got %d", first.StalePrune)
	}
}

// TestReportPrint 测试报告输出
func TestReportPrint(t *testing.T) {
	var buf bytes.Buffer
	simReport{Shots: 3, Fired: 3}.print(&buf)
	if !strings.Contains(buf.String(), "3 fired / 3 requested") {
		t.Errorf("Unexpected report:\n%s", buf.String())
	}
}
