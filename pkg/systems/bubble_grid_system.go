package systems

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"slices"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/entities"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/decker502/bubblepark/pkg/utils"
)

var (
	// ErrOutOfBounds 格子不在网格范围内
	ErrOutOfBounds = errors.New("cell out of grid bounds")
	// ErrCellOccupied 格子已被其他泡泡占用
	ErrCellOccupied = errors.New("cell already occupied")
)

// BubbleGridSystem 管理泡泡网格的占用状态
//
// 负责格子 -> 泡泡的映射（占用表），是该映射的唯一所有者。
// 提供坐标映射、占用查询、注册/移除以及网格的整体生成。
//
// 失效引用：占用表中的实体可能被其他模块直接销毁而没有注销，
// 所有查询都会经过 occupant 校验，遇到失效条目就地清理并记录日志。
type BubbleGridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
	lattice       utils.HexLattice
	config        config.GridConfig

	stalePruned int // 累计清理的失效条目数
}

// NewBubbleGridSystem 创建泡泡网格系统
// 参数:
//   - em: EntityManager 实例
//   - gridEntity: 持有 BubbleGridComponent 的网格实体
//   - cfg: 网格配置（几何参数与计分规则）
//
// 返回:
//   - *BubbleGridSystem: 网格系统实例
func NewBubbleGridSystem(em *ecs.EntityManager, gridEntity ecs.EntityID, cfg config.GridConfig) *BubbleGridSystem {
	return &BubbleGridSystem{
		entityManager: em,
		gridEntity:    gridEntity,
		lattice:       utils.NewHexLattice(cfg.Spacing, cfg.RowHeight, 0, 0),
		config:        cfg,
	}
}

// Lattice 返回坐标映射器
func (s *BubbleGridSystem) Lattice() utils.HexLattice {
	return s.lattice
}

// Config 返回网格配置
func (s *BubbleGridSystem) Config() config.GridConfig {
	return s.config
}

// GridEntity 返回网格实体ID
func (s *BubbleGridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

// StalePrunedCount 返回累计清理的失效条目数
func (s *BubbleGridSystem) StalePrunedCount() int {
	return s.stalePruned
}

// grid 获取网格组件
func (s *BubbleGridSystem) grid() (*components.BubbleGridComponent, bool) {
	return ecs.GetComponent[*components.BubbleGridComponent](s.entityManager, s.gridEntity)
}

// InBounds 检查格子是否在网格范围内
func (s *BubbleGridSystem) InBounds(cell types.Cell) bool {
	grid, ok := s.grid()
	if !ok {
		return false
	}
	return cell.Col >= 0 && cell.Col < grid.Columns && cell.Row >= 0 && cell.Row < grid.MaxRows
}

// CeilingRow 返回天花板行（锚点行）
func (s *BubbleGridSystem) CeilingRow() int {
	grid, ok := s.grid()
	if !ok {
		return 0
	}
	return grid.CeilingRow
}

// liveBubble 获取存活且已固定的泡泡组件
func (s *BubbleGridSystem) liveBubble(id ecs.EntityID) (*components.BubbleComponent, bool) {
	if !s.entityManager.IsAlive(id) {
		return nil, false
	}
	bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, id)
	if !ok || !bubble.IsSettled() {
		return nil, false
	}
	return bubble, true
}

// occupant 返回格子上的有效占用者，失效条目会被就地清理
func (s *BubbleGridSystem) occupant(grid *components.BubbleGridComponent, cell types.Cell) (ecs.EntityID, bool) {
	id, exists := grid.Occupancy[cell]
	if !exists {
		return ecs.InvalidEntity, false
	}

	bubble, ok := s.liveBubble(id)
	if ok && bubble.HasCell && bubble.Cell == cell && !bubble.Overlapping {
		return id, true
	}

	delete(grid.Occupancy, cell)
	if !ok {
		grid.Bubbles.Remove(id)
	}
	s.stalePruned++
	log.Printf("[BubbleGridSystem] Warning: pruned stale entry at %v (entity %d)", cell, id)
	return ecs.InvalidEntity, false
}

// BubbleAt 返回格子上的泡泡
func (s *BubbleGridSystem) BubbleAt(cell types.Cell) (ecs.EntityID, bool) {
	grid, ok := s.grid()
	if !ok {
		return ecs.InvalidEntity, false
	}
	return s.occupant(grid, cell)
}

// IsOccupied 检查格子是否被 excluding 以外的泡泡占用
// 参数:
//   - cell: 要检查的格子
//   - excluding: 忽略的泡泡（通常是正在放置的泡泡自身），可传 ecs.InvalidEntity
//
// 返回:
//   - bool: 越界视为「已占用」
func (s *BubbleGridSystem) IsOccupied(cell types.Cell, excluding ecs.EntityID) bool {
	if !s.InBounds(cell) {
		return true
	}
	id, ok := s.BubbleAt(cell)
	if !ok {
		return false
	}
	return id != excluding
}

// Put 将泡泡注册到格子上并标记为已固定
//
// 返回:
//   - error: 越界返回 ErrOutOfBounds，格子被其他泡泡占用返回 ErrCellOccupied
func (s *BubbleGridSystem) Put(cell types.Cell, bubbleID ecs.EntityID) error {
	grid, ok := s.grid()
	if !ok {
		return fmt.Errorf("failed to get BubbleGridComponent from entity %d", s.gridEntity)
	}
	if !s.InBounds(cell) {
		return fmt.Errorf("%w: %v (cols 0-%d, rows 0-%d)", ErrOutOfBounds, cell, grid.Columns-1, grid.MaxRows-1)
	}
	if current, occupied := s.occupant(grid, cell); occupied && current != bubbleID {
		return fmt.Errorf("%w: %v held by entity %d", ErrCellOccupied, cell, current)
	}

	bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, bubbleID)
	if !ok || !s.entityManager.IsAlive(bubbleID) {
		return fmt.Errorf("entity %d is not a live bubble", bubbleID)
	}

	// 已在其他格子上的泡泡先释放旧格子
	if bubble.HasCell && bubble.Cell != cell && grid.Occupancy[bubble.Cell] == bubbleID {
		delete(grid.Occupancy, bubble.Cell)
	}

	bubble.Cell = cell
	bubble.HasCell = true
	bubble.State = types.BubbleSettled
	bubble.Overlapping = false
	grid.Occupancy[cell] = bubbleID
	grid.Bubbles.Put(bubbleID)

	s.snapPosition(bubbleID, cell)
	return nil
}

// PlaceOverlapping 将泡泡固定在已被占用的格子位置上（放置饥饿时的降级处理）
// 泡泡加入网格泡泡集合，但不写入占用表，原占用者保持不变
func (s *BubbleGridSystem) PlaceOverlapping(cell types.Cell, bubbleID ecs.EntityID) error {
	grid, ok := s.grid()
	if !ok {
		return fmt.Errorf("failed to get BubbleGridComponent from entity %d", s.gridEntity)
	}
	bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, bubbleID)
	if !ok || !s.entityManager.IsAlive(bubbleID) {
		return fmt.Errorf("entity %d is not a live bubble", bubbleID)
	}

	bubble.Cell = cell
	bubble.HasCell = true
	bubble.State = types.BubbleSettled
	bubble.Overlapping = true
	grid.Bubbles.Put(bubbleID)

	s.snapPosition(bubbleID, cell)
	return nil
}

// ReclaimOverlaps 将所在格子已空出的重叠泡泡正式登记到占用表
// 同一格子上有多个重叠泡泡时，ID 最小的一个获得格子
//
// 返回:
//   - int: 登记成功的泡泡数量
func (s *BubbleGridSystem) ReclaimOverlaps() int {
	reclaimed := 0
	for _, id := range s.AllBubbles() {
		bubble, ok := s.liveBubble(id)
		if !ok || !bubble.Overlapping || !bubble.HasCell {
			continue
		}
		if _, occupied := s.BubbleAt(bubble.Cell); occupied {
			continue
		}
		if err := s.Put(bubble.Cell, id); err != nil {
			log.Printf("[BubbleGridSystem] Warning: failed to reclaim %v for bubble %d: %v", bubble.Cell, id, err)
			continue
		}
		reclaimed++
	}
	return reclaimed
}

// snapPosition 将泡泡位置对齐到格子中心
func (s *BubbleGridSystem) snapPosition(bubbleID ecs.EntityID, cell types.Cell) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, bubbleID); ok {
		pos.X, pos.Y = s.lattice.ToPosition(cell)
	}
}

// Remove 清空格子的占用状态
//
// 返回:
//   - ecs.EntityID: 被移出占用表的实体，格子为空时返回 ecs.InvalidEntity
func (s *BubbleGridSystem) Remove(cell types.Cell) ecs.EntityID {
	grid, ok := s.grid()
	if !ok {
		return ecs.InvalidEntity
	}
	id, exists := grid.Occupancy[cell]
	if !exists {
		return ecs.InvalidEntity
	}
	delete(grid.Occupancy, cell)
	return id
}

// Detach 将泡泡移出网格（占用表与泡泡集合），状态置为 Removed，实体保留
// 掉落的泡泡由外部继续播放下落动画
func (s *BubbleGridSystem) Detach(bubbleID ecs.EntityID) {
	grid, ok := s.grid()
	if !ok {
		return
	}

	if bubble, ok := ecs.GetComponent[*components.BubbleComponent](s.entityManager, bubbleID); ok {
		if bubble.HasCell && grid.Occupancy[bubble.Cell] == bubbleID {
			delete(grid.Occupancy, bubble.Cell)
		}
		bubble.State = types.BubbleRemoved
		bubble.HasCell = false
		bubble.Overlapping = false
	}
	grid.Bubbles.Remove(bubbleID)
}

// RemoveBubble 将泡泡移出网格并销毁实体
func (s *BubbleGridSystem) RemoveBubble(bubbleID ecs.EntityID) {
	s.Detach(bubbleID)
	s.entityManager.DestroyEntity(bubbleID)
}

// NeighborsOf 返回六个相邻格子中位于网格范围内的部分
func (s *BubbleGridSystem) NeighborsOf(cell types.Cell) []types.Cell {
	result := make([]types.Cell, 0, 6)
	for _, n := range utils.HexNeighbors(cell) {
		if s.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// AllBubbles 返回网格上所有已固定的泡泡（按ID升序），失效成员会被清理
func (s *BubbleGridSystem) AllBubbles() []ecs.EntityID {
	grid, ok := s.grid()
	if !ok {
		return nil
	}

	result := make([]ecs.EntityID, 0, grid.Bubbles.Size())
	stale := make([]ecs.EntityID, 0)
	grid.Bubbles.Each(func(id ecs.EntityID) {
		if _, ok := s.liveBubble(id); ok {
			result = append(result, id)
		} else {
			stale = append(stale, id)
		}
	})

	for _, id := range stale {
		grid.Bubbles.Remove(id)
		s.stalePruned++
		log.Printf("[BubbleGridSystem] Warning: pruned stale bubble %d from grid set", id)
	}

	slices.Sort(result)
	return result
}

// SettledCount 返回网格上已固定的泡泡数量
func (s *BubbleGridSystem) SettledCount() int {
	return len(s.AllBubbles())
}

// ColorsPresent 返回网格上仍存在的颜色（升序）
func (s *BubbleGridSystem) ColorsPresent() []types.BubbleColor {
	seen := make(map[types.BubbleColor]bool)
	colors := make([]types.BubbleColor, 0)
	for _, id := range s.AllBubbles() {
		bubble, ok := s.liveBubble(id)
		if !ok || seen[bubble.Color] {
			continue
		}
		seen[bubble.Color] = true
		colors = append(colors, bubble.Color)
	}
	slices.Sort(colors)
	return colors
}

// Clear 移除并销毁网格上的所有泡泡
func (s *BubbleGridSystem) Clear() {
	grid, ok := s.grid()
	if !ok {
		return
	}
	for _, id := range s.AllBubbles() {
		s.RemoveBubble(id)
	}
	grid.Occupancy = make(map[types.Cell]ecs.EntityID)
}

// Populate 以随机颜色填满初始的 rows x columns 区域
// 网格上原有的泡泡会先被清除
//
// 参数:
//   - rng: 随机数源（注入以便测试可复现）
//
// 返回:
//   - int: 生成的泡泡数量
func (s *BubbleGridSystem) Populate(rng *rand.Rand) int {
	grid, ok := s.grid()
	if !ok {
		log.Printf("[BubbleGridSystem] Error: grid entity %d has no BubbleGridComponent", s.gridEntity)
		return 0
	}

	s.Clear()

	radius := s.config.Spacing * 0.5
	created := 0
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			cell := types.Cell{Col: col, Row: row}
			x, y := s.lattice.ToPosition(cell)
			color := types.BubbleColor(rng.Intn(s.config.ColorCount))

			id := entities.NewGridBubble(s.entityManager, x, y, color, radius)
			if err := s.Put(cell, id); err != nil {
				log.Printf("[BubbleGridSystem] Error: failed to place generated bubble at %v: %v", cell, err)
				s.entityManager.DestroyEntity(id)
				continue
			}
			created++
		}
	}

	log.Printf("[BubbleGridSystem] Populated grid with %d bubbles (%dx%d, %d colors)",
		created, grid.Rows, grid.Columns, s.config.ColorCount)
	return created
}
