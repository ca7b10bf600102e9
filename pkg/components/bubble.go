package components

import "github.com/decker502/bubblepark/pkg/types"

// BubbleComponent 泡泡实体的核心数据
//
// 生命周期：InFlight -> Settled -> Removed，Removed 为终态。
// 飞行中的泡泡 HasCell 为 false，且永远不会出现在网格占用表中。
type BubbleComponent struct {
	Color   types.BubbleColor
	State   types.BubbleState
	Cell    types.Cell // 所在格子，仅 HasCell 为 true 时有效
	HasCell bool

	// Overlapping 放置时周围七个候选格全部被占，泡泡与已有泡泡重叠固定，
	// 不写入占用表；所在格子空出后由 BubbleGridSystem.ReclaimOverlaps 正式登记
	Overlapping bool
}

// IsSettled 是否已固定在网格上
func (b *BubbleComponent) IsSettled() bool {
	return b.State == types.BubbleSettled
}
