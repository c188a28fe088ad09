package model

import (
	"time"
)

// PlatformConfigModel 平台全局配置，单行记录
type PlatformConfigModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner           string `json:"owner" gorm:"not null"`    // 平台管理员地址
	Treasury        string `json:"treasury" gorm:"not null"` // 手续费接收地址
	Denom           string `json:"denom"`                    // 结算资产标识
	Decimals        uint32 `json:"decimals" gorm:"default:6"`
	VestingContract string `json:"vesting_contract"` // 空串表示未接入归属子系统
}

// TableName 自定义表名
func (PlatformConfigModel) TableName() string {
	return "platform_config"
}

// CommunityMemberModel 社区成员名单
type CommunityMemberModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Wallet string `json:"wallet" gorm:"uniqueIndex;not null"`
}

// TableName 自定义表名
func (CommunityMemberModel) TableName() string {
	return "community_member"
}
