//go:build !mobile

// 普通构建只编译这个文件，让 ./... 在没有 -tags mobile 时也能通过。
// 移动端入口见 mobile.go。
package mobile

// Dummy 供 ebitenmobile 识别的导出符号
func Dummy() {}
