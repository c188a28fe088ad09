package logic

import (
	"errors"

	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// WhitelistLogic 白名单登记与票额分配
type WhitelistLogic struct {
	db *gorm.DB
}

// NewWhitelistLogic 创建白名单业务逻辑
func NewWhitelistLogic(db *gorm.DB) *WhitelistLogic {
	return &WhitelistLogic{db: db}
}

// Open 开启白名单登记，仅项目创建者可调用。
// 清空既有名单，写入持卡人分配比例，状态置为 Whitelist
func (l *WhitelistLogic) Open(caller string, id int64, holderAlloc uint64) error {
	if holderAlloc > 100 {
		return errors.New("持卡人分配比例必须在0-100之间")
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if caller != p.Creator {
			return ErrUnauthorized
		}
		p.Status = model.ProjectStatusWhitelist
		p.Whitelist = nil
		p.HolderAlloc = holderAlloc
		return tx.Save(p).Error
	})
}

// Register 调用者自助登记白名单。已登记时不报错、不改动（幂等）
func (l *WhitelistLogic) Register(caller string, id int64, tier model.CardTier) error {
	if !validAddress(caller) {
		return ErrInvalidAddress
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if p.WhitelistIndex(caller) >= 0 {
			return nil
		}
		p.Whitelist = append(p.Whitelist, model.WhitelistEntry{
			Wallet: caller,
			Tier:   tier,
		})
		return tx.Save(p).Error
	})
}

// Close 关闭白名单并计算票额分配，仅项目创建者、仅 Whitelist 状态。
// 计算顺序不可调换：先按关闭时刻的名单统计各等级数量，
// 再由缺口算出票值，之后才追加社区成员条目——
// 社区成员不参与持卡权重，社区票值也依赖已算出的缺口
func (l *WhitelistLogic) Close(caller string, id int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if caller != p.Creator {
			return ErrUnauthorized
		}
		if err := ensureStatus(p, model.ProjectStatusWhitelist); err != nil {
			return err
		}

		// 距目标的缺口，已达标则为0
		var shortfall uint64
		scaled, err := mulScale(p.Id, p.FundingTarget, UstScale)
		if err != nil {
			return err
		}
		if p.AmountRaised < scaled {
			shortfall = scaled - p.AmountRaised
		}

		var platinum, gold, silver, bronze uint64
		for _, entry := range p.Whitelist {
			switch entry.Tier {
			case model.TierPlatinum:
				platinum++
			case model.TierGold:
				gold++
			case model.TierSilver:
				silver++
			case model.TierBronze:
				bronze++
			}
		}

		weighted := platinum*120 + gold*50 + silver*11 + bronze
		if weighted == 0 {
			return ErrNoEligibleHolders
		}

		community, err := loadCommunity(tx)
		if err != nil {
			return err
		}
		if len(community) == 0 {
			return ErrNoEligibleHolders
		}

		// 整数除法向零截断
		p.HolderTicket = shortfall * p.HolderAlloc / 100 / weighted
		p.CommunityTicket = shortfall * (100 - p.HolderAlloc) / 100 / uint64(len(community))

		for i := range p.Whitelist {
			if weight := p.Whitelist[i].Tier.TierWeight(); weight > 0 {
				p.Whitelist[i].Allocation = p.HolderTicket * weight
			}
			// Other 条目保持原有票额
		}
		for _, wallet := range community {
			p.Whitelist = append(p.Whitelist, model.WhitelistEntry{
				Wallet:     wallet,
				Tier:       model.TierOther,
				Allocation: p.CommunityTicket,
			})
		}

		p.Status = model.ProjectStatusFundraising
		return tx.Save(p).Error
	})
}
