package logic

import (
	"fmt"
	"math/big"
	"time"

	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// TokenInfoProvider 查询代币精度，由以太坊客户端实现
type TokenInfoProvider interface {
	TokenDecimals(addr string) (uint8, error)
}

// ContributeLogic 出资记账：手续费拆分、达标检测与归属子系统联动
type ContributeLogic struct {
	db     *gorm.DB
	tokens TokenInfoProvider
}

// NewContributeLogic 创建出资业务逻辑
func NewContributeLogic(db *gorm.DB, tokens TokenInfoProvider) *ContributeLogic {
	return &ContributeLogic{db: db, tokens: tokens}
}

// ContributeParams 出资参数
type ContributeParams struct {
	ProjectId        int64
	Backer           string
	Amount           uint64 // 毛额
	Stage            int64  // 募资阶段，透传给归属子系统
	TokenAmount      uint64 // 该阶段对应的代币受益数量
	Otherchain       string // 跨链来源，可空
	OtherchainWallet string
}

// Contribute 本链出资，结算资产取平台配置
func (l *ContributeLogic) Contribute(params ContributeParams) (*model.ProjectModel, error) {
	var result *model.ProjectModel
	err := l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		result, err = l.contribute(tx, cfg, params, cfg.Denom)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ContributeExternal 跨链出资，资金在主结算资产之外，金额与资产标识显式传入
func (l *ContributeLogic) ContributeExternal(params ContributeParams, denom string) (*model.ProjectModel, error) {
	var result *model.ProjectModel
	err := l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		result, err = l.contribute(tx, cfg, params, denom)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// contribute 两个入口共用的记账主流程。
// 状态门禁、零金额校验、手续费拆分和达标检测对跨链出资同样生效
func (l *ContributeLogic) contribute(tx *gorm.DB, cfg *model.PlatformConfigModel, params ContributeParams, denom string) (*model.ProjectModel, error) {
	p, err := loadProject(tx, params.ProjectId)
	if err != nil {
		return nil, err
	}
	if err := ensureStatus(p, model.ProjectStatusFundraising); err != nil {
		return nil, err
	}
	if params.Amount == 0 {
		return nil, ErrFundsRequired
	}
	if !validAddress(params.Backer) {
		return nil, ErrInvalidAddress
	}

	// 95/5 手续费拆分，整数除法，余数随舍入流失，属既定行为。
	// 毛额 ×95 是本流程中最大的乘积，它不溢出则 ×5 也不溢出
	scaled, err := mulScale(p.Id, params.Amount, 95)
	if err != nil {
		return nil, err
	}
	net := scaled / 100
	fee := params.Amount * 5 / 100

	idx := p.WhitelistIndex(params.Backer)
	if idx < 0 {
		return nil, ErrNotWhitelisted
	}

	p.Whitelist[idx].Backed += net
	p.AmountRaised += net
	p.Backers = append(p.Backers, model.BackerState{
		Wallet:           params.Backer,
		Otherchain:       params.Otherchain,
		OtherchainWallet: params.OtherchainWallet,
		Amount:           net,
	})

	var effects []effect.Effect

	// 达标检测：净额累计对比按精度缩放后的目标
	target, err := mulScale(p.Id, p.FundingTarget, pow10(cfg.Decimals))
	if err != nil {
		return nil, err
	}
	if p.AmountRaised >= target {
		p.Status = model.ProjectStatusReleasing

		votes, err := l.buildMilestoneVotes(tx, cfg, p)
		if err != nil {
			return nil, err
		}
		for i := range p.Milestones {
			p.Milestones[i].Votes = append([]model.Vote(nil), votes...)
		}

		if cfg.VestingContract != "" && p.TokenAddress != "" {
			vestingEffects, err := l.startVesting(cfg, p)
			if err != nil {
				return nil, err
			}
			effects = append(effects, vestingEffects...)
		}
	}

	// 手续费划转平台金库，业务提交后派发
	effects = append(effects, effect.New(effect.KindBankSend, p.Id, effect.BankSend{
		To:     cfg.Treasury,
		Denom:  denom,
		Amount: fee,
	}))

	if cfg.VestingContract != "" {
		effects = append(effects, effect.New(effect.KindVestingAddBacker, p.Id, effect.VestingAddBacker{
			ProjectId: p.Id,
			Wallet:    params.Backer,
			Stage:     params.Stage,
			Amount:    params.TokenAmount,
		}))
	}

	if err := tx.Save(p).Error; err != nil {
		return nil, err
	}
	if err := enqueueEffects(tx, effects); err != nil {
		return nil, err
	}
	return p, nil
}

// buildMilestoneVotes 募资完成时建立投票人名单：
// 去重后的出资人（剔除社区成员）加一票预置为同意的平台票。
// 名单一经建立在里程碑生命周期内不再变化
func (l *ContributeLogic) buildMilestoneVotes(tx *gorm.DB, cfg *model.PlatformConfigModel, p *model.ProjectModel) ([]model.Vote, error) {
	community, err := loadCommunity(tx)
	if err != nil {
		return nil, err
	}
	inCommunity := make(map[string]bool, len(community))
	for _, wallet := range community {
		inCommunity[wallet] = true
	}

	var votes []model.Vote
	seen := make(map[string]bool, len(p.Backers))
	for _, backer := range p.Backers {
		if seen[backer.Wallet] || inCommunity[backer.Wallet] {
			continue
		}
		seen[backer.Wallet] = true
		votes = append(votes, model.Vote{Wallet: backer.Wallet})
	}
	votes = append(votes, model.Vote{Wallet: cfg.Owner, Voted: true})
	return votes, nil
}

// startVesting 募资完成时的归属联动：
// 把归属计划总量按代币精度缩放后从创建者划转到归属子系统，并启动释放时钟
func (l *ContributeLogic) startVesting(cfg *model.PlatformConfigModel, p *model.ProjectModel) ([]effect.Effect, error) {
	var total uint64
	for _, stage := range p.VestingSchedule {
		total += stage.Amount
	}

	decimals, err := l.tokens.TokenDecimals(p.TokenAddress)
	if err != nil {
		return nil, fmt.Errorf("查询代币精度失败: %w", err)
	}
	// 按代币精度缩放后可能超出 uint64 范围
	amount := new(big.Int).Mul(
		new(big.Int).SetUint64(total),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil),
	)

	return []effect.Effect{
		effect.New(effect.KindTokenTransferFrom, p.Id, effect.TokenTransferFrom{
			Token:     p.TokenAddress,
			Owner:     p.Creator,
			Recipient: cfg.VestingContract,
			Amount:    amount.String(),
		}),
		effect.New(effect.KindVestingStartRelease, p.Id, effect.VestingStartRelease{
			ProjectId: p.Id,
			StartTime: time.Now().Unix(),
		}),
	}, nil
}
