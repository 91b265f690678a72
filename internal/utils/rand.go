package utils

import "math/rand"

const idLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	idIdxBits = 6
	idIdxMask = 1<<idIdxBits - 1
	idIdxMax  = 63 / idIdxBits
)

// RandString 生成指定长度的随机短 ID，用作评论/用户的对外标识。
// 顶层 rand/v2 函数并发安全，写路径可以直接用。
func RandString(n int) string {
	b := make([]byte, n)
	for i, cache, remain := n-1, rand.Int63(), idIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), idIdxMax
		}
		if idx := int(cache & idIdxMask); idx < len(idLetters) {
			b[i] = idLetters[idx]
			i--
		}
		cache >>= idIdxBits
		remain--
	}
	return string(b)
}
