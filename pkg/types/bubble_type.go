package types

// BubbleColor 泡泡颜色编号，取值范围 [0, 调色板大小)
type BubbleColor int

// BubbleState 泡泡生命周期状态
//
// 状态只能单向流转：InFlight -> Settled -> Removed
type BubbleState int

const (
	// BubbleInFlight 飞行中，尚未进入网格
	BubbleInFlight BubbleState = iota
	// BubbleSettled 已固定在网格格子上
	BubbleSettled
	// BubbleRemoved 已被消除或掉落（终态）
	BubbleRemoved
)

// String 返回状态的字符串表示
func (s BubbleState) String() string {
	switch s {
	case BubbleInFlight:
		return "InFlight"
	case BubbleSettled:
		return "Settled"
	case BubbleRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}
