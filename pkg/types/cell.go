// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// Cell 六边形网格中的一个格子坐标
//
// 奇数行整体向右偏移半个间距（odd-r 排列）。
// Row 0 是天花板行。
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// String 返回 "(col,row)" 格式
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// IsOddRow 判断是否为奇数行（对负数行同样有效）
func (c Cell) IsOddRow() bool {
	return c.Row&1 == 1
}
