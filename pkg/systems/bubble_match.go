package systems

import (
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// FindGroup 从种子泡泡出发广度优先搜索同色连通块
//
// 只有已固定、与种子同色且未访问过的泡泡才会被加入。
// 种子本身未固定（已被移除或仍在飞行）时返回 nil，不视为错误。
// 重叠固定的种子不在占用表中，它所在格子的占用者也算作相邻。
//
// 返回:
//   - []ecs.EntityID: 包含种子的最大同色连通块，种子在首位，每个泡泡只出现一次
func (s *BubbleGridSystem) FindGroup(seed ecs.EntityID) []ecs.EntityID {
	seedBubble, ok := s.liveBubble(seed)
	if !ok || !seedBubble.HasCell {
		return nil
	}
	color := seedBubble.Color

	visited := mapset.New[ecs.EntityID]()
	frontier := queue.New[ecs.EntityID]()
	group := make([]ecs.EntityID, 0, 8)

	visited.Put(seed)
	frontier.Enqueue(seed)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		group = append(group, current)

		bubble, ok := s.liveBubble(current)
		if !ok {
			continue
		}

		for _, cell := range s.adjacentCells(bubble.Cell, bubble.Overlapping) {
			id, ok := s.BubbleAt(cell)
			if !ok || visited.Has(id) {
				continue
			}
			neighbor, ok := s.liveBubble(id)
			if !ok || neighbor.Color != color {
				continue
			}
			visited.Put(id)
			frontier.Enqueue(id)
		}
	}

	return group
}

// IsMatchable 连通块是否达到消除数量
func (s *BubbleGridSystem) IsMatchable(group []ecs.EntityID) bool {
	return len(group) >= s.config.MinMatchSize
}

// adjacentCells 搜索时要检查的格子；重叠泡泡额外包含自身所在格子
func (s *BubbleGridSystem) adjacentCells(cell types.Cell, overlapping bool) []types.Cell {
	cells := s.NeighborsOf(cell)
	if overlapping {
		cells = append(cells, cell)
	}
	return cells
}
