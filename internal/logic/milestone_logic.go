package logic

import (
	"errors"

	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/logger"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// MilestoneLogic 里程碑投票与顺序放款
type MilestoneLogic struct {
	db *gorm.DB
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB) *MilestoneLogic {
	return &MilestoneLogic{db: db}
}

// CastVote 记录投票。仅 Releasing 状态且当前里程碑处于投票中。
// 投票人不在名单内时不报错、不生效。全员同意（含平台票）即达成放款门槛，
// 门槛是全票一致而非多数，属刻意保守的放款策略
func (l *MilestoneLogic) CastVote(id int64, voter string, voted bool) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if err := ensureStatus(p, model.ProjectStatusReleasing); err != nil {
			return err
		}
		step := p.CurrentMilestone
		if step >= uint64(len(p.Milestones)) {
			return errors.New("无待处理的里程碑")
		}
		ms := &p.Milestones[step]
		if ms.Status != model.MilestoneStatusVoting {
			return &InvalidMilestoneStatusError{Step: step, Current: ms.Status}
		}

		allVoted := true
		for i := range ms.Votes {
			if ms.Votes[i].Wallet == voter {
				ms.Votes[i].Voted = voted
			}
			allVoted = allVoted && ms.Votes[i].Voted
		}

		if allVoted {
			ms.Status = model.MilestoneStatusReleasing
			cfg, err := loadPlatformConfig(tx)
			if err != nil {
				return err
			}
			return l.release(tx, cfg, p)
		}
		return tx.Save(p).Error
	})
}

// Release 放款当前里程碑，仅 Releasing 状态。
// 投票达成后内部调用，也可直接触发
func (l *MilestoneLogic) Release(id int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if err := ensureStatus(p, model.ProjectStatusReleasing); err != nil {
			return err
		}
		if p.CurrentMilestone >= uint64(len(p.Milestones)) {
			return errors.New("无待处理的里程碑")
		}
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		return l.release(tx, cfg, p)
	})
}

// release 在当前事务内完成一次放款：
// 金额按精度缩放后转给创建者，推进里程碑游标，扣减资金池。
// 资金池下溢说明此前记账已出错，中止且不落库
func (l *MilestoneLogic) release(tx *gorm.DB, cfg *model.PlatformConfigModel, p *model.ProjectModel) error {
	step := p.CurrentMilestone
	amount, err := mulScale(p.Id, p.Milestones[step].Amount, pow10(cfg.Decimals))
	if err != nil {
		return err
	}

	if amount > p.AmountRaised {
		return &LedgerUnderflowError{ProjectId: p.Id, Raised: p.AmountRaised, Release: amount}
	}

	p.Milestones[step].Status = model.MilestoneStatusReleased
	p.CurrentMilestone++
	if p.CurrentMilestone >= uint64(len(p.Milestones)) {
		p.Status = model.ProjectStatusDone
	}
	p.AmountRaised -= amount

	if err := tx.Save(p).Error; err != nil {
		return err
	}
	return enqueueEffects(tx, []effect.Effect{
		effect.New(effect.KindBankSend, p.Id, effect.BankSend{
			To:     p.Creator,
			Denom:  cfg.Denom,
			Amount: amount,
		}),
	})
}

// Complete 终结操作：把资金池全部余额转给创建者并置为 Done，
// 仅 Releasing 状态可调用
func (l *MilestoneLogic) Complete(id int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if err := ensureStatus(p, model.ProjectStatusReleasing); err != nil {
			return err
		}
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}

		amount := p.AmountRaised
		p.AmountRaised = 0
		p.Status = model.ProjectStatusDone
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return enqueueEffects(tx, []effect.Effect{
			effect.New(effect.KindBankSend, p.Id, effect.BankSend{
				To:     p.Creator,
				Denom:  cfg.Denom,
				Amount: amount,
			}),
		})
	})
}

// Fail 项目失败，仅 Releasing 状态可调用。
// 不向出资人按比例退款，资金留在池内等待管理处置
func (l *MilestoneLogic) Fail(id int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if err := ensureStatus(p, model.ProjectStatusReleasing); err != nil {
			return err
		}
		p.Status = model.ProjectStatusFailed
		logger.Warn("项目 %d 标记为失败, 资金池余额 %d 未分配", p.Id, p.AmountRaised)
		return tx.Save(p).Error
	})
}
