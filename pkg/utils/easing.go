package utils

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]

// EaseInCubic 三次方缓入：开始慢，结束快
func EaseInCubic(t float64) float64 {
	t = Clamp01(t)
	return t * t * t
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
