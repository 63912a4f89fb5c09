package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nikita2423/approval-bff/internal/config"
	"github.com/nikita2423/approval-bff/internal/model"
)

// Connect 打开审计日志数据库
// 审计日志是本服务唯一的持久化数据,使用本地 SQLite 文件
func Connect(cfg config.StoreConfig) (*gorm.DB, error) {
	path := cfg.AuditDBPath
	if path == "" {
		path = "approval-bff.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	return db, nil
}

// ConnectInMemory 打开内存数据库
// 测试专用
func ConnectInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return db, nil
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.DecisionAuditModel{}); err != nil {
		return fmt.Errorf("failed to migrate audit database: %w", err)
	}
	return nil
}
