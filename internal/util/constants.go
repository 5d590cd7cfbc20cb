package util

// 分页
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
