//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 竞技场的移动端入口（mobile.go、embed.go）只在 ebitenmobile bind
// 使用 -tags mobile 时编译；桌面构建下本包只剩这个空函数。
package mobile

// Dummy 空导出函数，桌面构建下保持包可被引用
func Dummy() {}
