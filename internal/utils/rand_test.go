package utils

import (
	"strings"
	"sync"
	"testing"
)

func TestRandStringLengthAndCharset(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := RandString(8)
		if len(id) != 8 {
			t.Fatalf("Expected length 8, got %d", len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(idLetters, r) {
				t.Fatalf("Unexpected rune %q in id %q", r, id)
			}
		}
		seen[id] = true
	}
	if len(seen) < 95 {
		t.Errorf("Suspiciously many collisions: %d unique of 100", len(seen))
	}
}

// 评论和登录写路径会并发生成 ID，生成器必须可并发调用（配合 -race 验证）
func TestRandStringConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if id := RandString(8); len(id) != 8 {
					t.Errorf("Expected length 8, got %d", len(id))
					return
				}
			}
		}()
	}
	wg.Wait()
}
