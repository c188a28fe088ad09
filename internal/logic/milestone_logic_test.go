package logic

import (
	"encoding/json"
	"testing"

	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// releasingProject 一个已进入放款阶段、带两个里程碑的项目
func releasingProject(t *testing.T, db *gorm.DB) *model.ProjectModel {
	t.Helper()
	return createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusReleasing
		p.FundingTarget = 10
		p.AmountRaised = 10_000_000
		p.Milestones = []model.MilestoneState{
			{
				Title:  "阶段一",
				Amount: 3,
				Status: model.MilestoneStatusVoting,
				Votes: []model.Vote{
					{Wallet: addrBackerA},
					{Wallet: addrBackerB},
					{Wallet: addrOwner, Voted: true},
				},
			},
			{
				Title:  "阶段二",
				Amount: 7,
				Status: model.MilestoneStatusVoting,
				Votes: []model.Vote{
					{Wallet: addrBackerA},
					{Wallet: addrBackerB},
					{Wallet: addrOwner, Voted: true},
				},
			},
		}
	})
}

func TestCastVotePartial(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	require.NoError(t, l.CastVote(p.Id, addrBackerA, true))

	got := reload(t, db, p.Id)
	assert.True(t, got.Milestones[0].Votes[0].Voted)
	assert.Equal(t, model.MilestoneStatusVoting, got.Milestones[0].Status)
	assert.Equal(t, uint64(10_000_000), got.AmountRaised, "未达成全票一致不放款")
}

func TestCastVoteUnknownVoterNoop(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	// 名单外投票不报错、不生效
	require.NoError(t, l.CastVote(p.Id, addrMemberA, true))

	got := reload(t, db, p.Id)
	for _, v := range got.Milestones[0].Votes[:2] {
		assert.False(t, v.Voted)
	}
}

func TestCastVoteFlipBack(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	require.NoError(t, l.CastVote(p.Id, addrBackerA, true))
	// 改投反对，撤回此前的同意
	require.NoError(t, l.CastVote(p.Id, addrBackerA, false))
	require.NoError(t, l.CastVote(p.Id, addrBackerB, true))

	got := reload(t, db, p.Id)
	assert.Equal(t, model.MilestoneStatusVoting, got.Milestones[0].Status)
	assert.Zero(t, got.CurrentMilestone)
}

func TestCastVoteUnanimousReleases(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	require.NoError(t, l.CastVote(p.Id, addrBackerA, true))
	require.NoError(t, l.CastVote(p.Id, addrBackerB, true))

	got := reload(t, db, p.Id)
	assert.Equal(t, model.MilestoneStatusReleased, got.Milestones[0].Status)
	assert.Equal(t, uint64(1), got.CurrentMilestone)
	// 3 * 1e6 放款后扣减资金池
	assert.Equal(t, uint64(7_000_000), got.AmountRaised)
	assert.Equal(t, model.ProjectStatusReleasing, got.Status)

	rows := outboxByKind(t, db, string(effect.KindBankSend))
	require.Len(t, rows, 1)
	var send effect.BankSend
	require.NoError(t, json.Unmarshal([]byte(rows[0].Payload), &send))
	assert.Equal(t, addrCreator, send.To)
	assert.Equal(t, uint64(3_000_000), send.Amount)
}

func TestReleaseLastMilestoneCompletes(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	require.NoError(t, l.Release(p.Id))
	require.NoError(t, l.Release(p.Id))

	got := reload(t, db, p.Id)
	assert.Equal(t, model.ProjectStatusDone, got.Status)
	assert.Equal(t, uint64(2), got.CurrentMilestone)
	assert.Zero(t, got.AmountRaised)
	for _, ms := range got.Milestones {
		assert.Equal(t, model.MilestoneStatusReleased, ms.Status)
	}

	// Done 后不存在待处理里程碑
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, l.Release(p.Id), &statusErr)
}

func TestReleaseStatusGuard(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := createProject(t, db, func(p *model.ProjectModel) {
		p.AmountRaised = 5_000_000
		p.Milestones = []model.MilestoneState{
			{Title: "阶段一", Amount: 1, Status: model.MilestoneStatusVoting},
		}
	})

	// 募资中不可放款，记录不变
	var statusErr *InvalidStatusError
	require.ErrorAs(t, l.Release(p.Id), &statusErr)
	assert.Equal(t, model.ProjectStatusFundraising, statusErr.Current)

	got := reload(t, db, p.Id)
	assert.Equal(t, uint64(5_000_000), got.AmountRaised)
	assert.Zero(t, got.CurrentMilestone)
	assert.Empty(t, outboxByKind(t, db, string(effect.KindBankSend)))
}

func TestReleaseLedgerUnderflow(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusReleasing
		p.AmountRaised = 1_000_000
		p.Milestones = []model.MilestoneState{
			{Title: "阶段一", Amount: 3, Status: model.MilestoneStatusVoting},
		}
	})

	var underflow *LedgerUnderflowError
	require.ErrorAs(t, l.Release(p.Id), &underflow)
	assert.Equal(t, uint64(1_000_000), underflow.Raised)
	assert.Equal(t, uint64(3_000_000), underflow.Release)

	// 事务中止，不落库
	got := reload(t, db, p.Id)
	assert.Equal(t, uint64(1_000_000), got.AmountRaised)
	assert.Equal(t, model.MilestoneStatusVoting, got.Milestones[0].Status)
	assert.Empty(t, outboxByKind(t, db, string(effect.KindBankSend)))
}

func TestReleaseAmountScaleOverflow(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)

	// 放款金额缩放越过 uint64 上限，必须中止而不是按回绕值放款
	p := createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusReleasing
		p.AmountRaised = 1_000_000
		p.Milestones = []model.MilestoneState{
			{Title: "阶段一", Amount: 18_446_744_073_710, Status: model.MilestoneStatusVoting},
		}
	})

	var overflow *ArithmeticOverflowError
	require.ErrorAs(t, l.Release(p.Id), &overflow)

	got := reload(t, db, p.Id)
	assert.Equal(t, uint64(1_000_000), got.AmountRaised)
	assert.Zero(t, got.CurrentMilestone)
	assert.Equal(t, model.MilestoneStatusVoting, got.Milestones[0].Status)
	assert.Empty(t, outboxByKind(t, db, string(effect.KindBankSend)))
}

func TestCastVoteMilestoneStatusGuard(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := createProject(t, db, func(p *model.ProjectModel) {
		p.Status = model.ProjectStatusReleasing
		p.AmountRaised = 1_000_000
		p.Milestones = []model.MilestoneState{
			{
				Title:  "阶段一",
				Amount: 1,
				Status: model.MilestoneStatusReleasing,
				Votes:  []model.Vote{{Wallet: addrBackerA}},
			},
		}
	})

	var msErr *InvalidMilestoneStatusError
	require.ErrorAs(t, l.CastVote(p.Id, addrBackerA, true), &msErr)
	assert.Equal(t, model.MilestoneStatusReleasing, msErr.Current)
}

func TestCompleteSweepsPool(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	require.NoError(t, l.Complete(p.Id))

	got := reload(t, db, p.Id)
	assert.Equal(t, model.ProjectStatusDone, got.Status)
	assert.Zero(t, got.AmountRaised)

	rows := outboxByKind(t, db, string(effect.KindBankSend))
	require.Len(t, rows, 1)
	var send effect.BankSend
	require.NoError(t, json.Unmarshal([]byte(rows[0].Payload), &send))
	assert.Equal(t, addrCreator, send.To)
	assert.Equal(t, uint64(10_000_000), send.Amount)
}

func TestFailKeepsPool(t *testing.T) {
	db := setupDB(t)
	l := NewMilestoneLogic(db)
	p := releasingProject(t, db)

	require.NoError(t, l.Fail(p.Id))

	got := reload(t, db, p.Id)
	assert.Equal(t, model.ProjectStatusFailed, got.Status)
	assert.Equal(t, uint64(10_000_000), got.AmountRaised, "失败不退款，资金留在池内")
	assert.Empty(t, outboxByKind(t, db, string(effect.KindBankSend)))

	// 终态后不再接受终结操作
	var statusErr *InvalidStatusError
	assert.ErrorAs(t, l.Complete(p.Id), &statusErr)
}
