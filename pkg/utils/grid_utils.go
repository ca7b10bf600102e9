package utils

import (
	"math"

	"github.com/decker502/bubblepark/pkg/types"
)

// HexLattice 六边形泡泡网格的坐标映射参数
//
// 网格局部坐标系：格子 (0,0) 的中心位于原点，X 向右、Y 向下。
// 奇数行向右偏移半个 Spacing（odd-r 排列）。
//
// 取整规则固定为「四舍五入，远离零」（math.Round），
// 例如 0.5 -> 1，-0.5 -> -1，2.5 -> 3。
type HexLattice struct {
	Spacing   float64 // 同一行相邻格子的中心距
	RowHeight float64 // 相邻两行的中心距，<=0 时等于 Spacing
	OriginX   float64 // 格子 (0,0) 中心的屏幕坐标X
	OriginY   float64 // 格子 (0,0) 中心的屏幕坐标Y
}

// hexNeighborOffsetsEven 偶数行的六个邻居偏移 (dCol, dRow)
var hexNeighborOffsetsEven = [6][2]int{
	{-1, 0}, {1, 0}, // 同行左右
	{-1, -1}, {0, -1}, // 上一行
	{-1, 1}, {0, 1}, // 下一行
}

// hexNeighborOffsetsOdd 奇数行的六个邻居偏移 (dCol, dRow)
var hexNeighborOffsetsOdd = [6][2]int{
	{-1, 0}, {1, 0},
	{0, -1}, {1, -1},
	{0, 1}, {1, 1},
}

// NewHexLattice 创建坐标映射器
func NewHexLattice(spacing, rowHeight, originX, originY float64) HexLattice {
	if rowHeight <= 0 {
		rowHeight = spacing
	}
	return HexLattice{
		Spacing:   spacing,
		RowHeight: rowHeight,
		OriginX:   originX,
		OriginY:   originY,
	}
}

// rowHeight 返回有效行高
func (l HexLattice) rowHeight() float64 {
	if l.RowHeight <= 0 {
		return l.Spacing
	}
	return l.RowHeight
}

// RowOffset 返回指定行的水平偏移（奇数行为半个间距）
func (l HexLattice) RowOffset(row int) float64 {
	if row&1 == 1 {
		return l.Spacing * 0.5
	}
	return 0
}

// ToCell 将网格局部坐标按取整规则映射到格子
//
// 先按行高取整确定行，再扣除该行的偏移取整确定列。多对一投影。
// 靠近行边界时结果不一定是几何上最近的格子中心。
func (l HexLattice) ToCell(x, y float64) types.Cell {
	row := int(math.Round(y / l.rowHeight()))
	col := int(math.Round((x - l.RowOffset(row)) / l.Spacing))
	return types.Cell{Col: col, Row: row}
}

// ToPosition 返回格子中心的网格局部坐标，是 ToCell 的精确逆映射
func (l HexLattice) ToPosition(c types.Cell) (x, y float64) {
	x = float64(c.Col)*l.Spacing + l.RowOffset(c.Row)
	y = float64(c.Row) * l.rowHeight()
	return x, y
}

// Snap 将任意局部坐标吸附到最近格子的中心
func (l HexLattice) Snap(x, y float64) (float64, float64) {
	return l.ToPosition(l.ToCell(x, y))
}

// LocalToScreen 网格局部坐标 -> 屏幕坐标
func (l HexLattice) LocalToScreen(x, y float64) (screenX, screenY float64) {
	return x + l.OriginX, y + l.OriginY
}

// ScreenToLocal 屏幕坐标 -> 网格局部坐标
func (l HexLattice) ScreenToLocal(screenX, screenY float64) (x, y float64) {
	return screenX - l.OriginX, screenY - l.OriginY
}

// HexNeighbors 返回六个相邻格子（不做边界检查）
func HexNeighbors(c types.Cell) [6]types.Cell {
	offsets := &hexNeighborOffsetsEven
	if c.IsOddRow() {
		offsets = &hexNeighborOffsetsOdd
	}

	var result [6]types.Cell
	for i, off := range offsets {
		result[i] = types.Cell{Col: c.Col + off[0], Row: c.Row + off[1]}
	}
	return result
}

// AreNeighbors 判断两个格子是否六边形相邻
func AreNeighbors(a, b types.Cell) bool {
	for _, n := range HexNeighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

// Distance 两点间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
