//go:build !mobile

package app

import (
	"os"
	"strconv"
)

// MobileEmulateEnv 设为 true/1 时桌面端按移动端方式运行（隐藏键盘提示，只保留拖动）
const MobileEmulateEnv = "ANGRYMETER_MOBILE_EMULATE"

// IsMobile 当前是否按移动端方式运行
func IsMobile() bool {
	v, _ := strconv.ParseBool(os.Getenv(MobileEmulateEnv))
	return v
}
