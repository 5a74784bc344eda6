//go:build !android

package utils

// EnsureStorageDir 非 Android 平台由 gdata 自行创建存档目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串（路径由 gdata 决定）
func GetStoragePath() string {
	return ""
}
