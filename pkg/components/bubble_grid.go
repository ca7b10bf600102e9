package components

import (
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/types"
	"github.com/zyedidia/generic/mapset"
)

// BubbleGridComponent 标识泡泡网格实体
//
// Occupancy 记录格子 -> 泡泡实体，一个格子最多一个泡泡，不存在的键表示空格子。
// Bubbles 是网格上所有已固定的泡泡（包括重叠固定、不在占用表中的泡泡）。
// CeilingRow 在创建时确定，之后不再改变，是连通性检查的锚点行。
type BubbleGridComponent struct {
	Rows       int // 初始填充行数
	Columns    int
	MaxRows    int // 合法行范围 [0, MaxRows)
	CeilingRow int

	Occupancy map[types.Cell]ecs.EntityID
	Bubbles   mapset.Set[ecs.EntityID]
}

// NewBubbleGridComponent 创建空网格
func NewBubbleGridComponent(rows, columns, maxRows int) *BubbleGridComponent {
	return &BubbleGridComponent{
		Rows:       rows,
		Columns:    columns,
		MaxRows:    maxRows,
		CeilingRow: 0,
		Occupancy:  make(map[types.Cell]ecs.EntityID),
		Bubbles:    mapset.New[ecs.EntityID](),
	}
}
