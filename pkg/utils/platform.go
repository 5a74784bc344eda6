//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 1 时桌面端也按移动端方式显示操作提示（本地调试触摸操作用）
const MobileEmulateEnv = "ARENA_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
