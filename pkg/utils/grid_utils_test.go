package utils

import (
	"math"
	"testing"

	"github.com/decker502/bubblepark/pkg/types"
)

const testSpacing = 40.0

// TestToCell 测试局部坐标到格子坐标的转换
func TestToCell(t *testing.T) {
	lattice := NewHexLattice(testSpacing, 0, 0, 0)

	tests := []struct {
		name string
		x, y float64
		want types.Cell
	}{
		{name: "原点", x: 0, y: 0, want: types.Cell{Col: 0, Row: 0}},
		{name: "偶数行第二格", x: 40, y: 0, want: types.Cell{Col: 1, Row: 0}},
		{name: "奇数行扣除半格偏移", x: 20, y: 40, want: types.Cell{Col: 0, Row: 1}},
		{name: "奇数行第二格", x: 60, y: 40, want: types.Cell{Col: 1, Row: 1}},
		{name: "略偏离中心仍吸附", x: 43, y: -7, want: types.Cell{Col: 1, Row: 0}},
		{name: "半格正向进位", x: 20, y: 0, want: types.Cell{Col: 1, Row: 0}},
		{name: "半格负向远离零", x: -20, y: 0, want: types.Cell{Col: -1, Row: 0}},
		{name: "2.5 进位为 3（非银行家舍入）", x: 100, y: 0, want: types.Cell{Col: 3, Row: 0}},
		{name: "行高半格进位到奇数行", x: 20, y: 20, want: types.Cell{Col: 0, Row: 1}},
		{name: "半格以下舍去", x: 19.9, y: 19.9, want: types.Cell{Col: 0, Row: 0}},
		{name: "负数奇数行", x: -20, y: -40, want: types.Cell{Col: -1, Row: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lattice.ToCell(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("ToCell(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestToPosition 测试格子中心坐标
func TestToPosition(t *testing.T) {
	lattice := NewHexLattice(testSpacing, 35, 0, 0)

	tests := []struct {
		cell  types.Cell
		wantX float64
		wantY float64
	}{
		{types.Cell{Col: 0, Row: 0}, 0, 0},
		{types.Cell{Col: 2, Row: 0}, 80, 0},
		{types.Cell{Col: 0, Row: 1}, 20, 35},
		{types.Cell{Col: 3, Row: 3}, 140, 105},
		{types.Cell{Col: 1, Row: 4}, 40, 140},
	}

	for _, tt := range tests {
		x, y := lattice.ToPosition(tt.cell)
		if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
			t.Errorf("ToPosition(%v) = (%v, %v), want (%v, %v)", tt.cell, x, y, tt.wantX, tt.wantY)
		}
	}
}

// TestRoundTripIsStable 测试逆映射精确且重复吸附结果不变
func TestRoundTripIsStable(t *testing.T) {
	lattices := []HexLattice{
		NewHexLattice(testSpacing, 0, 0, 0),
		NewHexLattice(0.18, 0.18*math.Sqrt(3)/2, 0, 0),
		NewHexLattice(37.5, 31.25, 100, 50),
	}

	for _, lattice := range lattices {
		// 格子 -> 坐标 -> 格子
		for row := -4; row <= 12; row++ {
			for col := -4; col <= 12; col++ {
				c := types.Cell{Col: col, Row: row}
				x, y := lattice.ToPosition(c)
				if got := lattice.ToCell(x, y); got != c {
					t.Fatalf("spacing=%v: ToCell(ToPosition(%v)) = %v", lattice.Spacing, c, got)
				}
			}
		}

		// 任意点吸附两次结果一致
		step := lattice.Spacing / 7
		for y := -3 * lattice.Spacing; y <= 6*lattice.Spacing; y += step {
			for x := -3 * lattice.Spacing; x <= 6*lattice.Spacing; x += step {
				first := lattice.ToCell(x, y)
				sx, sy := lattice.ToPosition(first)
				if again := lattice.ToCell(sx, sy); again != first {
					t.Fatalf("spacing=%v: re-snap of (%v,%v) drifted %v -> %v", lattice.Spacing, x, y, first, again)
				}
			}
		}
	}
}

// TestSnap 测试吸附到格子中心
func TestSnap(t *testing.T) {
	lattice := NewHexLattice(testSpacing, 0, 0, 0)
	x, y := lattice.Snap(57, 44)
	if x != 60 || y != 40 {
		t.Errorf("Snap(57, 44) = (%v, %v), want (60, 40)", x, y)
	}
}

// TestScreenConversion 测试屏幕坐标与局部坐标互转
func TestScreenConversion(t *testing.T) {
	lattice := NewHexLattice(testSpacing, 0, 250, 90)

	sx, sy := lattice.LocalToScreen(40, 40)
	if sx != 290 || sy != 130 {
		t.Errorf("LocalToScreen = (%v, %v), want (290, 130)", sx, sy)
	}

	lx, ly := lattice.ScreenToLocal(sx, sy)
	if lx != 40 || ly != 40 {
		t.Errorf("ScreenToLocal = (%v, %v), want (40, 40)", lx, ly)
	}
}

// TestHexNeighbors 测试六邻居表
func TestHexNeighbors(t *testing.T) {
	even := HexNeighbors(types.Cell{Col: 0, Row: 0})
	wantEven := [6]types.Cell{
		{Col: -1, Row: 0}, {Col: 1, Row: 0},
		{Col: -1, Row: -1}, {Col: 0, Row: -1},
		{Col: -1, Row: 1}, {Col: 0, Row: 1},
	}
	if even != wantEven {
		t.Errorf("even row neighbors = %v, want %v", even, wantEven)
	}

	odd := HexNeighbors(types.Cell{Col: 2, Row: 1})
	wantOdd := [6]types.Cell{
		{Col: 1, Row: 1}, {Col: 3, Row: 1},
		{Col: 2, Row: 0}, {Col: 3, Row: 0},
		{Col: 2, Row: 2}, {Col: 3, Row: 2},
	}
	if odd != wantOdd {
		t.Errorf("odd row neighbors = %v, want %v", odd, wantOdd)
	}
}

// TestHexNeighborsSymmetricAndClose 邻接关系对称，且邻居中心距接近一个间距
func TestHexNeighborsSymmetricAndClose(t *testing.T) {
	lattice := NewHexLattice(testSpacing, 0, 0, 0)

	for row := -3; row <= 6; row++ {
		for col := -3; col <= 6; col++ {
			c := types.Cell{Col: col, Row: row}
			cx, cy := lattice.ToPosition(c)
			for _, n := range HexNeighbors(c) {
				if !AreNeighbors(n, c) {
					t.Fatalf("adjacency not symmetric: %v -> %v", c, n)
				}
				nx, ny := lattice.ToPosition(n)
				d := Distance(cx, cy, nx, ny)
				if d < testSpacing-1e-9 || d > testSpacing*1.2 {
					t.Fatalf("neighbor %v of %v at distance %v", n, c, d)
				}
			}
		}
	}
}

// TestScenarioCellsAreAdjacent (0,0)、(1,0)、(0,1) 两两相邻
func TestScenarioCellsAreAdjacent(t *testing.T) {
	a := types.Cell{Col: 0, Row: 0}
	b := types.Cell{Col: 1, Row: 0}
	c := types.Cell{Col: 0, Row: 1}

	if !AreNeighbors(a, b) || !AreNeighbors(a, c) || !AreNeighbors(b, c) {
		t.Error("cells (0,0), (1,0), (0,1) should be mutually adjacent")
	}
}
