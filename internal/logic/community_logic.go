package logic

import (
	"errors"

	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// CommunityLogic 社区成员名单管理，仅平台管理员可变更
type CommunityLogic struct {
	db *gorm.DB
}

// NewCommunityLogic 创建社区名单业务逻辑
func NewCommunityLogic(db *gorm.DB) *CommunityLogic {
	return &CommunityLogic{db: db}
}

// Add 添加社区成员，重复添加是错误
func (l *CommunityLogic) Add(caller, wallet string) error {
	if !validAddress(wallet) {
		return ErrInvalidAddress
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}
		var existing model.CommunityMemberModel
		err = tx.Where("wallet = ?", wallet).First(&existing).Error
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&model.CommunityMemberModel{Wallet: wallet}).Error
	})
}

// Remove 移除社区成员，不存在是错误
func (l *CommunityLogic) Remove(caller, wallet string) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}
		var member model.CommunityMemberModel
		err = tx.Where("wallet = ?", wallet).First(&member).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotRegistered
		}
		if err != nil {
			return err
		}
		return tx.Delete(&member).Error
	})
}

// List 获取社区成员名单
func (l *CommunityLogic) List() ([]string, error) {
	return loadCommunity(l.db)
}
