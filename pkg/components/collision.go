package components

// CollisionComponent 定义实体的圆形碰撞体
// 用于飞行系统检测泡泡之间、泡泡与天花板之间的接触
type CollisionComponent struct {
	Radius float64 // 碰撞半径（像素），泡泡默认为半个间距
}
