package systems

import (
	"math"

	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/decker502/bubblepark/pkg/utils"
)

// Placement 放置解析结果
type Placement struct {
	Cell types.Cell
	// Starved 七个候选格全部被占用（或越界），Cell 为最近的候选格，放置时需接受重叠
	Starved bool
	// IdealX, IdealY 回退半个间距后的理想落点（网格局部坐标）
	IdealX, IdealY float64
}

// ResolvePlacement 计算飞行泡泡碰撞后应固定的格子
//
// 从碰撞点沿来向反方向回退半个间距得到理想落点，吸附到格子后，
// 在该格子及其六个邻居中选出距理想落点最近的空格子。
// 距离相同时按候选顺序（中心格优先，其后为邻居表顺序）取第一个。
//
// 参数:
//   - impactX, impactY: 碰撞点（网格局部坐标）
//   - dirX, dirY: 飞行方向（无需归一化，零向量表示不回退）
//   - moving: 正在放置的泡泡，检查占用时忽略它自己
//
// 返回:
//   - Placement: 只要七个候选格中有空格，返回的格子一定未被其他泡泡占用
func (s *BubbleGridSystem) ResolvePlacement(impactX, impactY, dirX, dirY float64, moving ecs.EntityID) Placement {
	idealX, idealY := impactX, impactY
	if nx, ny, ok := utils.Normalize(dirX, dirY); ok {
		back := s.lattice.Spacing * 0.5
		idealX -= nx * back
		idealY -= ny * back
	}

	center := s.lattice.ToCell(idealX, idealY)
	cell, found, anyInBounds := s.nearestFreeCandidate(center, idealX, idealY, moving)
	if found {
		return Placement{Cell: cell, IdealX: idealX, IdealY: idealY}
	}

	// 理想落点在网格外：夹紧到边界后再找一次
	if !anyInBounds {
		center = s.clampCell(center)
		cell, found, _ = s.nearestFreeCandidate(center, idealX, idealY, moving)
		if found {
			return Placement{Cell: cell, IdealX: idealX, IdealY: idealY}
		}
	}

	// 放置饥饿：不考虑占用，取最近的网格内候选
	return Placement{
		Cell:    s.nearestInBoundsCandidate(center, idealX, idealY),
		Starved: true,
		IdealX:  idealX,
		IdealY:  idealY,
	}
}

// placementCandidates 中心格 + 六邻居
func placementCandidates(center types.Cell) [7]types.Cell {
	var result [7]types.Cell
	result[0] = center
	neighbors := utils.HexNeighbors(center)
	copy(result[1:], neighbors[:])
	return result
}

// nearestFreeCandidate 在候选格中找距理想落点最近的空格
func (s *BubbleGridSystem) nearestFreeCandidate(center types.Cell, idealX, idealY float64, moving ecs.EntityID) (types.Cell, bool, bool) {
	best := center
	bestDist := math.Inf(1)
	found := false
	anyInBounds := false

	for _, c := range placementCandidates(center) {
		if !s.InBounds(c) {
			continue
		}
		anyInBounds = true
		if s.IsOccupied(c, moving) {
			continue
		}
		x, y := s.lattice.ToPosition(c)
		if d := utils.Distance(x, y, idealX, idealY); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found, anyInBounds
}

// nearestInBoundsCandidate 在网格内的候选格中找最近的一个（忽略占用）
func (s *BubbleGridSystem) nearestInBoundsCandidate(center types.Cell, idealX, idealY float64) types.Cell {
	best := s.clampCell(center)
	bestDist := math.Inf(1)
	for _, c := range placementCandidates(center) {
		if !s.InBounds(c) {
			continue
		}
		x, y := s.lattice.ToPosition(c)
		if d := utils.Distance(x, y, idealX, idealY); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// clampCell 将格子夹紧到网格范围内
func (s *BubbleGridSystem) clampCell(c types.Cell) types.Cell {
	grid, ok := s.grid()
	if !ok {
		return c
	}
	c.Col = min(max(c.Col, 0), grid.Columns-1)
	c.Row = min(max(c.Row, 0), grid.MaxRows-1)
	return c
}
