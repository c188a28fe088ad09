package handler

import (
	"github.com/seedfund/sfs/internal/model"
)

// 调用者身份由请求体显式携带，签名校验不在本服务职责内

// MilestoneRequest 里程碑参数
type MilestoneRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      uint64 `json:"amount"`
}

// AddProjectRequest 登记/更新项目请求，id=0 创建，id>0 更新
type AddProjectRequest struct {
	Id               int64  `json:"id"`
	Company          string `json:"company"`
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
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

	Creator       string `json:"creator" binding:"required"`
	FundingTarget uint64 `json:"funding_target" binding:"required"`
	TokenAddress  string `json:"token_address"`

	Milestones      []MilestoneRequest   `json:"milestones"`
	TeamMembers     []model.TeamMember   `json:"team_members"`
	VestingSchedule []model.VestingStage `json:"vesting_schedule"`
}

// ContributeRequest 本链出资请求
type ContributeRequest struct {
	Backer           string `json:"backer" binding:"required"`
	Amount           uint64 `json:"amount"`
	Stage            int64  `json:"stage"`
	TokenAmount      uint64 `json:"token_amount"`
	Otherchain       string `json:"otherchain"`
	OtherchainWallet string `json:"otherchain_wallet"`
}

// ContributeExternalRequest 跨链出资请求，金额与资产标识显式传入
type ContributeExternalRequest struct {
	Backer           string `json:"backer" binding:"required"`
	Denom            string `json:"denom" binding:"required"`
	Amount           uint64 `json:"amount"`
	Stage            int64  `json:"stage"`
	TokenAmount      uint64 `json:"token_amount"`
	Otherchain       string `json:"otherchain"`
	OtherchainWallet string `json:"otherchain_wallet"`
}

// VoteRequest 里程碑投票请求
type VoteRequest struct {
	Voter string `json:"voter" binding:"required"`
	Voted bool   `json:"voted"`
}

// OpenWhitelistRequest 开启白名单请求
type OpenWhitelistRequest struct {
	Caller      string `json:"caller" binding:"required"`
	HolderAlloc uint64 `json:"holder_alloc"`
}

// RegisterWhitelistRequest 登记白名单请求
type RegisterWhitelistRequest struct {
	Caller string `json:"caller" binding:"required"`
	Tier   string `json:"tier" binding:"required"`
}

// CallerRequest 仅携带调用者身份的请求
type CallerRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// SetStatusRequest 管理员状态码旁路请求
type SetStatusRequest struct {
	Caller string `json:"caller" binding:"required"`
	Code   uint64 `json:"code"`
}

// SetStageRequest 募资阶段标记请求
type SetStageRequest struct {
	Stage int64 `json:"stage"`
}

// SetConfigRequest 平台配置更新请求，缺省字段保持原值
type SetConfigRequest struct {
	Caller          string  `json:"caller" binding:"required"`
	Owner           *string `json:"owner"`
	Treasury        *string `json:"treasury"`
	Denom           *string `json:"denom"`
	Decimals        *uint32 `json:"decimals"`
	VestingContract *string `json:"vesting_contract"`
}

// CommunityMemberRequest 社区成员变更请求
type CommunityMemberRequest struct {
	Caller string `json:"caller" binding:"required"`
	Wallet string `json:"wallet" binding:"required"`
}

// TransferAllRequest 余额归集请求
type TransferAllRequest struct {
	Caller string `json:"caller" binding:"required"`
	Wallet string `json:"wallet" binding:"required"`
}
