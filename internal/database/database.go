package database

import (
	"fmt"

	"github.com/seedfund/sfs/internal/config"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.ProjectModel{},
		&model.PlatformConfigModel{},
		&model.CommunityMemberModel{},
		&model.OutboxModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedPlatformConfig 首次启动时写入平台配置，已存在则不覆盖
func SeedPlatformConfig(db *gorm.DB, cfg config.PlatformConfig) error {
	var count int64
	if err := db.Model(&model.PlatformConfigModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&model.PlatformConfigModel{
		Owner:           cfg.Owner,
		Treasury:        cfg.Treasury,
		Denom:           cfg.Denom,
		Decimals:        cfg.Decimals,
		VestingContract: cfg.VestingContract,
	}).Error
}
