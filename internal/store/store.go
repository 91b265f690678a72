package store

import (
	"gorm.io/gorm"
)

// Store 是评论/用户数据的访问入口，进程启动时构造一次，
// 由 main 注入 handler 和中间件。
type Store struct {
	db *gorm.DB
}

func New(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}
