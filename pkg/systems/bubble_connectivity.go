package systems

import (
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// FindFalling 找出所有与天花板失去连接的泡泡
//
// 以天花板行上有泡泡的格子为起点做多源广度优先搜索，沿六邻接扩展，
// 不区分颜色。重叠固定的泡泡按其所在格子参与搜索：格子被访问到即视为连通。
// 访问到的格子上的泡泡是仍然连通的部分，网格上其余泡泡即为掉落集合。
//
// 返回:
//   - []ecs.EntityID: 掉落的泡泡（按ID升序），每个只出现一次
func (s *BubbleGridSystem) FindFalling() []ecs.EntityID {
	grid, ok := s.grid()
	if !ok {
		return nil
	}

	all := s.AllBubbles()
	overlaps := s.overlapsByCell(all)
	hasBubble := func(cell types.Cell) bool {
		if _, ok := s.BubbleAt(cell); ok {
			return true
		}
		return len(overlaps[cell]) > 0
	}

	visited := mapset.New[types.Cell]()
	frontier := queue.New[types.Cell]()

	for col := 0; col < grid.Columns; col++ {
		anchor := types.Cell{Col: col, Row: grid.CeilingRow}
		if hasBubble(anchor) {
			visited.Put(anchor)
			frontier.Enqueue(anchor)
		}
	}

	for !frontier.Empty() {
		cell := frontier.Dequeue()
		for _, n := range s.NeighborsOf(cell) {
			if visited.Has(n) || !hasBubble(n) {
				continue
			}
			visited.Put(n)
			frontier.Enqueue(n)
		}
	}

	falling := make([]ecs.EntityID, 0)
	for _, id := range all {
		bubble, ok := s.liveBubble(id)
		if !ok || !bubble.HasCell || !visited.Has(bubble.Cell) {
			falling = append(falling, id)
		}
	}
	return falling
}

// overlapsByCell 按格子归类重叠固定的泡泡
func (s *BubbleGridSystem) overlapsByCell(ids []ecs.EntityID) map[types.Cell][]ecs.EntityID {
	result := make(map[types.Cell][]ecs.EntityID)
	for _, id := range ids {
		if bubble, ok := s.liveBubble(id); ok && bubble.Overlapping && bubble.HasCell {
			result[bubble.Cell] = append(result[bubble.Cell], id)
		}
	}
	return result
}
