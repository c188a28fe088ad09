package logic

import (
	"errors"
	"fmt"

	"github.com/seedfund/sfs/internal/model"
)

// 错误分类：所有校验失败都同步返回调用方并中止整个操作，
// 不产生部分提交，也没有内部重试
var (
	ErrUnauthorized      = errors.New("无权限执行该操作")
	ErrProjectNotFound   = errors.New("项目不存在")
	ErrNotWhitelisted    = errors.New("地址未登记白名单")
	ErrFundsRequired     = errors.New("出资金额必须大于0")
	ErrAlreadyRegistered = errors.New("社区成员已存在")
	ErrNotRegistered     = errors.New("社区成员不存在")
	ErrNoEligibleHolders = errors.New("白名单无可分配对象")
	ErrInvalidAddress    = errors.New("无效的钱包地址")
)

// InvalidStatusError 操作在当前生命周期状态下不合法
type InvalidStatusError struct {
	Current model.ProjectStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("项目状态不正确: %s", e.Current)
}

// InvalidMilestoneStatusError 当前里程碑状态不允许该操作
type InvalidMilestoneStatusError struct {
	Step    uint64
	Current model.MilestoneStatus
}

func (e *InvalidMilestoneStatusError) Error() string {
	return fmt.Sprintf("里程碑 %d 状态不正确: %s", e.Step, e.Current)
}

// ArithmeticOverflowError 金额缩放越过 uint64 上限。
// 回绕会让达标判断和放款金额读到错误的值，操作必须中止
type ArithmeticOverflowError struct {
	ProjectId int64
	Value     uint64
	Scale     uint64
}

func (e *ArithmeticOverflowError) Error() string {
	return fmt.Sprintf("项目 %d 金额缩放溢出: %d × %d", e.ProjectId, e.Value, e.Scale)
}

// LedgerUnderflowError 放款金额超过资金池余额。
// 这是不可恢复的记账不变量被破坏，操作必须中止，
// 说明此前的累计环节已经出错
type LedgerUnderflowError struct {
	ProjectId int64
	Raised    uint64
	Release   uint64
}

func (e *LedgerUnderflowError) Error() string {
	return fmt.Sprintf("项目 %d 资金池下溢: 余额 %d, 放款 %d", e.ProjectId, e.Raised, e.Release)
}
