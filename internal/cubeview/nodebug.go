//go:build !debug
// +build !debug

package cubeview

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
