package model

import (
	"time"
)

// ProjectStatus 项目生命周期状态
type ProjectStatus string

const (
	ProjectStatusPendingReview ProjectStatus = "pending_review" // 待平台审核
	ProjectStatusWhitelist     ProjectStatus = "whitelist"      // 白名单登记中
	ProjectStatusFundraising   ProjectStatus = "fundraising"    // 募资中
	ProjectStatusReleasing     ProjectStatus = "releasing"      // 里程碑释放中
	ProjectStatusDone          ProjectStatus = "done"           // 已完成
	ProjectStatusFailed        ProjectStatus = "failed"         // 已失败
)

// statusCodes 管理端数字状态码 0..5，顺序固定
var statusCodes = []ProjectStatus{
	ProjectStatusPendingReview,
	ProjectStatusWhitelist,
	ProjectStatusFundraising,
	ProjectStatusReleasing,
	ProjectStatusDone,
	ProjectStatusFailed,
}

// StatusFromCode 数字状态码转状态，码值越界返回 false
func StatusFromCode(code uint64) (ProjectStatus, bool) {
	if code >= uint64(len(statusCodes)) {
		return "", false
	}
	return statusCodes[code], true
}

// CardTier 白名单参与者等级
type CardTier string

const (
	TierPlatinum CardTier = "platinum"
	TierGold     CardTier = "gold"
	TierSilver   CardTier = "silver"
	TierBronze   CardTier = "bronze"
	TierOther    CardTier = "other" // 社区成员，不参与持卡权重计算
)

// TierWeight 等级票权重，Other 不计权重
func (t CardTier) TierWeight() uint64 {
	switch t {
	case TierPlatinum:
		return 120
	case TierGold:
		return 50
	case TierSilver:
		return 11
	case TierBronze:
		return 1
	}
	return 0
}

// ParseCardTier 解析等级字符串
func ParseCardTier(s string) (CardTier, bool) {
	switch CardTier(s) {
	case TierPlatinum, TierGold, TierSilver, TierBronze, TierOther:
		return CardTier(s), true
	}
	return "", false
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusVoting    MilestoneStatus = "voting"    // 投票中
	MilestoneStatusReleasing MilestoneStatus = "releasing" // 投票通过，待放款
	MilestoneStatusReleased  MilestoneStatus = "released"  // 已放款
)

// Vote 单个投票人的投票状态
type Vote struct {
	Wallet string `json:"wallet"`
	Voted  bool   `json:"voted"`
}

// MilestoneState 里程碑，投票通过后按顺序放款
type MilestoneState struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      uint64          `json:"amount"` // 基础计价单位，未做精度缩放
	Status      MilestoneStatus `json:"status"`
	Votes       []Vote          `json:"votes"`
}

// WhitelistEntry 白名单条目
type WhitelistEntry struct {
	Wallet     string   `json:"wallet"`
	Tier       CardTier `json:"tier"`
	Allocation uint64   `json:"allocation"` // 白名单关闭时一次性计算
	Backed     uint64   `json:"backed"`     // 已出资净额累计
}

// BackerState 出资记录，金额为扣除手续费后的净额
type BackerState struct {
	Wallet           string `json:"wallet"`
	Otherchain       string `json:"otherchain"`
	OtherchainWallet string `json:"otherchain_wallet"`
	Amount           uint64 `json:"amount"`
}

// VestingStage 归属计划阶段
type VestingStage struct {
	Name         string `json:"name"`
	PercentSoon  uint64 `json:"percent_soon"`
	PercentAfter uint64 `json:"percent_after"`
	Period       uint64 `json:"period"` // 秒
	Amount       uint64 `json:"amount"` // 代币数量，未做精度缩放
}

// TeamMember 团队成员，仅展示用
type TeamMember struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Wallet string `json:"wallet"`
	Email  string `json:"email"`
}

// ProjectModel 众筹项目记录，嵌套序列以JSON列存储，
// 每次操作对整条记录做一次 load-mutate-store
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Company          string `json:"company"`
	Title            string `json:"title" gorm:"not null"`
	Description      string `json:"description" gorm:"type:text"`
	Ecosystem        string `json:"ecosystem"`
	FundType         string `json:"fund_type"`
	CreatedDate      string `json:"created_date"`
	Saft             string `json:"saft"`
	Logo             string `json:"logo"`
	Whitepaper       string `json:"whitepaper"`
	Website          string `json:"website"`
	Email            string `json:"email"`
	Country          string `json:"country"`
	CofounderName    string `json:"cofounder_name"`
	ServicePlatform  string `json:"service_platform"`
	ServiceCharity   string `json:"service_charity"`
	ProfessionalLink string `json:"professional_link"`

	// 生命周期
	Status           ProjectStatus `json:"status" gorm:"default:'pending_review'"`
	FundraisingStage int64         `json:"fundraising_stage" gorm:"default:0"`

	// 募资信息
	FundingTarget uint64 `json:"funding_target" gorm:"not null"` // 目标金额，精度缩放前
	AmountRaised  uint64 `json:"amount_raised" gorm:"default:0"` // 净额累计

	// 创建者与代币
	Creator      string `json:"creator" gorm:"not null"`
	TokenAddress string `json:"token_address"` // 空串表示未配置代币

	// 里程碑
	Milestones       []MilestoneState `json:"milestones" gorm:"serializer:json"`
	CurrentMilestone uint64           `json:"current_milestone" gorm:"default:0"`

	// 出资与白名单
	Backers   []BackerState    `json:"backers" gorm:"serializer:json"`
	Whitelist []WhitelistEntry `json:"whitelist" gorm:"serializer:json"`

	// 白名单票值，关闭白名单时一次性计算
	HolderAlloc     uint64 `json:"holder_alloc" gorm:"default:80"` // 持卡人分配比例 0-100
	HolderTicket    uint64 `json:"holder_ticket" gorm:"default:0"`
	CommunityTicket uint64 `json:"community_ticket" gorm:"default:0"`

	// 团队与归属计划
	TeamMembers     []TeamMember   `json:"team_members" gorm:"serializer:json"`
	VestingSchedule []VestingStage `json:"vesting_schedule" gorm:"serializer:json"`
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}

// WhitelistIndex 查找地址在白名单中的位置，不存在返回 -1
func (p *ProjectModel) WhitelistIndex(wallet string) int {
	for i := range p.Whitelist {
		if p.Whitelist[i].Wallet == wallet {
			return i
		}
	}
	return -1
}
