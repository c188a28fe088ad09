package logic

import (
	"encoding/json"
	"testing"

	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProjectDefaults(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)

	saved, err := l.AddProject(&model.ProjectModel{
		Title:         "新项目",
		Creator:       addrCreator,
		FundingTarget: 50,
		Milestones: []model.MilestoneState{
			{Title: "阶段一", Amount: 20, Status: model.MilestoneStatusReleased,
				Votes: []model.Vote{{Wallet: addrBackerA, Voted: true}}},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, saved.Id)

	got := reload(t, db, saved.Id)
	assert.Equal(t, model.ProjectStatusPendingReview, got.Status)
	assert.Equal(t, uint64(80), got.HolderAlloc)
	assert.Zero(t, got.AmountRaised)
	assert.Empty(t, got.Backers)
	assert.Empty(t, got.Whitelist)
	// 里程碑重置为投票状态，名单在募资完成时建立
	assert.Equal(t, model.MilestoneStatusVoting, got.Milestones[0].Status)
	assert.Empty(t, got.Milestones[0].Votes)
}

func TestAddProjectValidation(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)

	_, err := l.AddProject(&model.ProjectModel{Title: "x", Creator: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = l.AddProject(&model.ProjectModel{Creator: addrCreator})
	assert.Error(t, err)

	// 无效代币地址按未配置处理
	saved, err := l.AddProject(&model.ProjectModel{
		Title:        "代币无效",
		Creator:      addrCreator,
		TokenAddress: "not-a-token",
	})
	require.NoError(t, err)
	assert.Empty(t, saved.TokenAddress)
}

func TestAddProjectUpdatePreservesLifecycle(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)

	p := createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusFundraising
		p.AmountRaised = 123
		p.CurrentMilestone = 1
		p.HolderTicket = 42
		p.Backers = []model.BackerState{{Wallet: addrBackerA, Amount: 123}}
		p.Whitelist = []model.WhitelistEntry{{Wallet: addrBackerA, Tier: model.TierGold}}
	})

	saved, err := l.AddProject(&model.ProjectModel{
		Id:            p.Id,
		Title:         "改名后的项目",
		Creator:       addrCreator,
		FundingTarget: 99,
	})
	require.NoError(t, err)

	assert.Equal(t, "改名后的项目", saved.Title)
	assert.Equal(t, uint64(99), saved.FundingTarget)
	// 生命周期字段以既有记录为准
	assert.Equal(t, model.ProjectStatusFundraising, saved.Status)
	assert.Equal(t, uint64(123), saved.AmountRaised)
	assert.Equal(t, uint64(1), saved.CurrentMilestone)
	assert.Equal(t, uint64(42), saved.HolderTicket)
	require.Len(t, saved.Whitelist, 1)
	require.Len(t, saved.Backers, 1)
}

func TestAddProjectRegistersVesting(t *testing.T) {
	db := setupDB(t)
	setVestingContract(t, db)
	l := NewProjectLogic(db)

	saved, err := l.AddProject(&model.ProjectModel{
		Title:        "带归属计划",
		Creator:      addrCreator,
		TokenAddress: addrToken,
		VestingSchedule: []model.VestingStage{
			{Name: "seed", PercentSoon: 10, PercentAfter: 90, Period: 3600, Amount: 100},
		},
	})
	require.NoError(t, err)

	rows := outboxByKind(t, db, string(effect.KindVestingAddProject))
	require.Len(t, rows, 1)
	var payload effect.VestingAddProject
	require.NoError(t, json.Unmarshal([]byte(rows[0].Payload), &payload))
	assert.Equal(t, saved.Id, payload.ProjectId)
	assert.Equal(t, addrOwner, payload.Admin)
	assert.Equal(t, addrToken, payload.TokenAddr)
	require.Len(t, payload.Stages, 1)
	assert.Equal(t, uint64(10), payload.Stages[0].Soon)
	assert.Equal(t, uint64(90), payload.Stages[0].After)
}

func TestApproveProject(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)
	p := createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusPendingReview
	})

	assert.ErrorIs(t, l.Approve(addrCreator, p.Id), ErrUnauthorized)

	require.NoError(t, l.Approve(addrOwner, p.Id))
	got := reload(t, db, p.Id)
	assert.Equal(t, model.ProjectStatusWhitelist, got.Status)

	// 已流转的项目不能重复审核
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, l.Approve(addrOwner, p.Id), &statusErr)
}

func TestSetProjectStatusCodes(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)
	p := createProject(t, db, nil)

	assert.ErrorIs(t, l.SetProjectStatus(addrCreator, p.Id, 4), ErrUnauthorized)
	assert.Error(t, l.SetProjectStatus(addrOwner, p.Id, 6))

	// 码值 0..5 依次对应六个状态
	want := []model.ProjectStatus{
		model.ProjectStatusPendingReview,
		model.ProjectStatusWhitelist,
		model.ProjectStatusFundraising,
		model.ProjectStatusReleasing,
		model.ProjectStatusDone,
		model.ProjectStatusFailed,
	}
	for code, status := range want {
		require.NoError(t, l.SetProjectStatus(addrOwner, p.Id, uint64(code)))
		assert.Equal(t, status, reload(t, db, p.Id).Status)
	}
}

func TestSetFundraisingStage(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)
	p := createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusDone // 不做状态门禁
	})

	require.NoError(t, l.SetFundraisingStage(p.Id, 3))
	assert.Equal(t, int64(3), reload(t, db, p.Id).FundraisingStage)
}

func TestRemoveProject(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)
	p := createProject(t, db, nil)

	assert.ErrorIs(t, l.Remove(addrCreator, p.Id), ErrUnauthorized)
	assert.ErrorIs(t, l.Remove(addrOwner, 9999), ErrProjectNotFound)

	require.NoError(t, l.Remove(addrOwner, p.Id))
	_, err := l.GetProject(p.Id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestGetProjectsFilter(t *testing.T) {
	db := setupDB(t)
	l := NewProjectLogic(db)
	createProject(t, db, func(p *model.ProjectModel) { p.Status = model.ProjectStatusFundraising })
	createProject(t, db, func(p *model.ProjectModel) { p.Status = model.ProjectStatusDone })
	createProject(t, db, func(p *model.ProjectModel) { p.Status = model.ProjectStatusFundraising })

	all, err := l.GetProjects("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fundraising, err := l.GetProjects(string(model.ProjectStatusFundraising))
	require.NoError(t, err)
	assert.Len(t, fundraising, 2)
}
