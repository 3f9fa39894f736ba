//go:build mobile

package app

// MobileEmulateEnv 移动端构建不读取该变量
const MobileEmulateEnv = "ANGRYMETER_MOBILE_EMULATE"

// IsMobile 移动端构建恒为 true
func IsMobile() bool {
	return true
}
