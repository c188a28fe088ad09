package model

import (
	"time"
)

// OutboxStatus 待发请求状态
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending" // 待派发
	OutboxStatusSent    OutboxStatus = "sent"    // 已上链
	OutboxStatusFailed  OutboxStatus = "failed"  // 派发失败，不回滚业务状态
)

// OutboxModel 业务操作产生的对外请求，与记录变更同事务落库，
// 由调度任务在提交后派发（commit-then-effect）
type OutboxModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64        `json:"project_id" gorm:"index"`
	Kind      string       `json:"kind" gorm:"not null"`
	Payload   string       `json:"payload" gorm:"type:text;not null"`
	Status    OutboxStatus `json:"status" gorm:"default:'pending';index"`
	Attempts  int          `json:"attempts" gorm:"default:0"`
	TxHash    string       `json:"tx_hash"`
	LastError string       `json:"last_error" gorm:"type:text"`
}

// TableName 自定义表名
func (OutboxModel) TableName() string {
	return "outbox"
}
