package logic

import (
	"errors"
	"fmt"

	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目登记与管理操作
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// AddProject 登记或更新项目。Id=0 时分配新序列号并初始化生命周期字段；
// Id>0 时保留生命周期字段（状态、募资额、白名单、出资记录、票值），
// 只覆盖描述性与配置性字段。配置了归属子系统时登记归属计划
func (l *ProjectLogic) AddProject(input *model.ProjectModel) (*model.ProjectModel, error) {
	if !validAddress(input.Creator) {
		return nil, ErrInvalidAddress
	}
	// 代币地址无效时按未配置处理
	if input.TokenAddress != "" && !validAddress(input.TokenAddress) {
		input.TokenAddress = ""
	}
	if input.Title == "" {
		return nil, errors.New("项目标题不能为空")
	}

	var saved *model.ProjectModel
	err := l.db.Transaction(func(tx *gorm.DB) error {
		// 里程碑初始为投票状态，投票人名单在募资完成时建立
		for i := range input.Milestones {
			input.Milestones[i].Status = model.MilestoneStatusVoting
			input.Milestones[i].Votes = nil
		}

		if input.Id == 0 {
			input.Status = model.ProjectStatusPendingReview
			input.FundraisingStage = 0
			input.AmountRaised = 0
			input.CurrentMilestone = 0
			input.Backers = nil
			input.Whitelist = nil
			input.HolderAlloc = 80
			input.HolderTicket = 0
			input.CommunityTicket = 0
			if err := tx.Create(input).Error; err != nil {
				return err
			}
		} else {
			prev, err := loadProject(tx, input.Id)
			if err != nil {
				return err
			}
			// 生命周期字段以既有记录为准
			input.CreatedAt = prev.CreatedAt
			input.Status = prev.Status
			input.FundraisingStage = prev.FundraisingStage
			input.AmountRaised = prev.AmountRaised
			input.CurrentMilestone = prev.CurrentMilestone
			input.Backers = prev.Backers
			input.Whitelist = prev.Whitelist
			input.HolderAlloc = prev.HolderAlloc
			input.HolderTicket = prev.HolderTicket
			input.CommunityTicket = prev.CommunityTicket
			if err := tx.Save(input).Error; err != nil {
				return err
			}
		}

		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if cfg.VestingContract != "" {
			stages := make([]effect.VestingParam, 0, len(input.VestingSchedule))
			for _, s := range input.VestingSchedule {
				stages = append(stages, effect.VestingParam{
					Soon:   s.PercentSoon,
					After:  s.PercentAfter,
					Period: s.Period,
				})
			}
			e := effect.New(effect.KindVestingAddProject, input.Id, effect.VestingAddProject{
				ProjectId: input.Id,
				Admin:     cfg.Owner,
				TokenAddr: input.TokenAddress,
				Stages:    stages,
				StartTime: 0,
			})
			if err := enqueueEffects(tx, []effect.Effect{e}); err != nil {
				return err
			}
		}

		saved = input
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Approve 平台审核通过，PendingReview 进入 Whitelist，仅平台管理员可调用
func (l *ProjectLogic) Approve(caller string, id int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if err := ensureStatus(p, model.ProjectStatusPendingReview); err != nil {
			return err
		}
		p.Status = model.ProjectStatusWhitelist
		return tx.Save(p).Error
	})
}

// SetProjectStatus 管理员数字状态码旁路，绕过常规状态流转表，
// 码值 0..5 依次对应六个状态
func (l *ProjectLogic) SetProjectStatus(caller string, id int64, code uint64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}
		status, ok := model.StatusFromCode(code)
		if !ok {
			return fmt.Errorf("无效的状态码: %d", code)
		}
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		p.Status = status
		return tx.Save(p).Error
	})
}

// SetFundraisingStage 更新募资阶段标记，不做状态门禁
func (l *ProjectLogic) SetFundraisingStage(id int64, stage int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		p.FundraisingStage = stage
		return tx.Save(p).Error
	})
}

// Remove 删除项目记录，仅平台管理员可调用，独立于生命周期流转
func (l *ProjectLogic) Remove(caller string, id int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

// GetProject 获取项目详情
func (l *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	return loadProject(l.db, id)
}

// GetProjects 获取项目列表，可按状态过滤
func (l *ProjectLogic) GetProjects(status string) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	query := l.db.Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取项目列表失败: %w", err)
	}
	return projects, nil
}
