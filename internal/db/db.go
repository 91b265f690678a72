package db

import (
	"fmt"
	"log"
	"os"

	"moyu/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open 建立数据库连接。连接由调用方持有并注入各层，不再使用包级单例；
// 迁移由调用方显式执行 Migrate。
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// 本地开发缺省配置
		dsn = "host=localhost user=postgres password=postgres dbname=moyu port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("Database connection established")
	return gdb, nil
}

// Migrate 同步表结构，测试用的 sqlite 连接也走这里
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
