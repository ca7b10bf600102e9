//go:build !mobile

package utils

import "testing"

// TestIsMobileDesktop 桌面端默认不是移动端
func TestIsMobileDesktop(t *testing.T) {
	t.Setenv("BUBBLEPARK_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

// TestIsMobileEmulated 环境变量可以模拟移动端
func TestIsMobileEmulated(t *testing.T) {
	t.Setenv("BUBBLEPARK_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour BUBBLEPARK_MOBILE_EMULATE")
	}
}
