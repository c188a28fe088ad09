// Package effect 定义业务操作产生的对外请求。
// 请求不是同步调用：逻辑层把它们和记录变更写进同一事务，
// 外层调度任务在提交后派发，派发失败不回滚已提交的状态。
package effect

import (
	"encoding/json"
	"fmt"
)

// Kind 请求类型
type Kind string

const (
	KindBankSend            Kind = "bank_send"             // 原生资产转账
	KindBankSweep           Kind = "bank_sweep"            // 清空余额转账
	KindTokenTransferFrom   Kind = "token_transfer_from"   // 代币 transferFrom
	KindVestingAddProject   Kind = "vesting_add_project"   // 归属子系统登记项目
	KindVestingAddBacker    Kind = "vesting_add_backer"    // 归属子系统登记受益人
	KindVestingStartRelease Kind = "vesting_start_release" // 归属子系统启动释放
)

// BankSend 原生资产转账请求
type BankSend struct {
	To     string `json:"to"`
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

// BankSweep 清空服务余额到指定地址
type BankSweep struct {
	To string `json:"to"`
}

// TokenTransferFrom 代币划转，金额按代币精度缩放后可能超过 uint64，
// 用十进制字符串携带
type TokenTransferFrom struct {
	Token     string `json:"token"`
	Owner     string `json:"owner"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// VestingParam 归属阶段参数
type VestingParam struct {
	Soon   uint64 `json:"soon"`
	After  uint64 `json:"after"`
	Period uint64 `json:"period"`
}

// VestingAddProject 在归属子系统登记项目的归属计划
type VestingAddProject struct {
	ProjectId int64          `json:"project_id"`
	Admin     string         `json:"admin"`
	TokenAddr string         `json:"token_addr"`
	Stages    []VestingParam `json:"stages"`
	StartTime uint64         `json:"start_time"`
}

// VestingAddBacker 在归属子系统为出资人登记受益份额
type VestingAddBacker struct {
	ProjectId int64  `json:"project_id"`
	Wallet    string `json:"wallet"`
	Stage     int64  `json:"stage"`
	Amount    uint64 `json:"amount"`
}

// VestingStartRelease 启动归属释放时钟
type VestingStartRelease struct {
	ProjectId int64 `json:"project_id"`
	StartTime int64 `json:"start_time"`
}

// Effect 一条待派发的对外请求
type Effect struct {
	Kind      Kind
	ProjectId int64
	Payload   interface{}
}

// New 构造请求
func New(kind Kind, projectId int64, payload interface{}) Effect {
	return Effect{Kind: kind, ProjectId: projectId, Payload: payload}
}

// MarshalPayload 序列化请求体
func (e Effect) MarshalPayload() (string, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return "", fmt.Errorf("序列化请求体失败: %w", err)
	}
	return string(data), nil
}
