package systems

import (
	"testing"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/entities"
	"github.com/decker502/bubblepark/pkg/types"
)

// recordingScore 记录每一次加分事件
type recordingScore struct {
	events []int
}

func (r *recordingScore) AddScore(points int) {
	r.events = append(r.events, points)
}

func (r *recordingScore) total() int {
	sum := 0
	for _, p := range r.events {
		sum += p
	}
	return sum
}

// recordingListener 记录网格事件
type recordingListener struct {
	cleared   []int
	colors    []types.BubbleColor
	fell      []int
	emptyHits int
}

func (r *recordingListener) OnMatchCleared(count int, color types.BubbleColor) {
	r.cleared = append(r.cleared, count)
	r.colors = append(r.colors, color)
}

func (r *recordingListener) OnBubblesFell(count int) {
	r.fell = append(r.fell, count)
}

func (r *recordingListener) OnGridEmpty() {
	r.emptyHits++
}

// testBoard 测试用的网格及其协作者
type testBoard struct {
	em       *ecs.EntityManager
	grid     *BubbleGridSystem
	settle   *BubbleSettleSystem
	score    *recordingScore
	listener *recordingListener
}

// newTestBoard 使用默认配置（8 列，最深 12 行，间距 40，3 个消除）创建空网格
func newTestBoard(t *testing.T) *testBoard {
	t.Helper()
	return newTestBoardWithConfig(t, config.DefaultBubbleConfig().Grid)
}

func newTestBoardWithConfig(t *testing.T, cfg config.GridConfig) *testBoard {
	t.Helper()

	em := ecs.NewEntityManager()
	gridEntity, err := entities.NewBubbleGrid(em, cfg)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}

	b := &testBoard{
		em:       em,
		grid:     NewBubbleGridSystem(em, gridEntity, cfg),
		score:    &recordingScore{},
		listener: &recordingListener{},
	}
	b.settle = NewBubbleSettleSystem(em, b.grid, b.score, b.listener)
	return b
}

// place 在格子上放置一个已固定的泡泡
func (b *testBoard) place(t *testing.T, col, row int, color types.BubbleColor) ecs.EntityID {
	t.Helper()
	cell := types.Cell{Col: col, Row: row}
	x, y := b.grid.Lattice().ToPosition(cell)
	id := entities.NewGridBubble(b.em, x, y, color, b.grid.Config().Spacing/2)
	if err := b.grid.Put(cell, id); err != nil {
		t.Fatalf("Failed to place bubble at %v: %v", cell, err)
	}
	return id
}

// shoot 创建一个位于 (x, y) 的飞行泡泡
func (b *testBoard) shoot(t *testing.T, x, y, vx, vy float64, color types.BubbleColor) ecs.EntityID {
	t.Helper()
	id, err := entities.NewProjectileBubble(b.em, x, y, vx, vy, color, b.grid.Config().Spacing/2, 10)
	if err != nil {
		t.Fatalf("Failed to create projectile: %v", err)
	}
	return id
}

// cellOf 返回泡泡当前的格子
func (b *testBoard) cellOf(t *testing.T, id ecs.EntityID) types.Cell {
	t.Helper()
	bubble, ok := ecs.GetComponent[*components.BubbleComponent](b.em, id)
	if !ok {
		t.Fatalf("Entity %d has no BubbleComponent", id)
	}
	return bubble.Cell
}
