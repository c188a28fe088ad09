package task

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/seedfund/sfs/internal/config"
	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/ethereum"
	"github.com/seedfund/sfs/internal/logger"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// maxDispatchAttempts 派发重试上限，超过后标记失败。
// 派发失败不回滚已提交的业务状态，只记录可见的失败原因
const maxDispatchAttempts = 5

// dispatchBatchSize 单次扫描的待派发条数上限
const dispatchBatchSize = 100

// OutboxDispatchJob 对外请求派发任务：
// 周期扫描待派发记录，经协程池并发提交上链
type OutboxDispatchJob struct {
	db        *gorm.DB
	config    *config.Config
	ethClient *ethereum.Client
	pool      *ants.Pool
}

// NewOutboxDispatchJob 创建派发任务
func NewOutboxDispatchJob(db *gorm.DB, cfg *config.Config, ethClient *ethereum.Client) (*OutboxDispatchJob, error) {
	poolSize := cfg.Task.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch pool: %w", err)
	}

	return &OutboxDispatchJob{
		db:        db,
		config:    cfg,
		ethClient: ethClient,
		pool:      pool,
	}, nil
}

// GetName 获取任务名称
func (j *OutboxDispatchJob) GetName() string {
	return "outbox_dispatcher"
}

// GetSchedule 获取调度配置
func (j *OutboxDispatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Release 释放协程池
func (j *OutboxDispatchJob) Release() {
	j.pool.Release()
}

// Execute 执行任务
func (j *OutboxDispatchJob) Execute() {
	var rows []model.OutboxModel
	err := j.db.Where("status = ?", model.OutboxStatusPending).
		Order("id ASC").
		Limit(dispatchBatchSize).
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to fetch pending outbox rows: %v", err)
		return
	}
	if len(rows) == 0 {
		return
	}

	logger.Info("Dispatching %d outbox requests", len(rows))

	var wg sync.WaitGroup
	for i := range rows {
		row := rows[i]
		wg.Add(1)
		submitErr := j.pool.Submit(func() {
			defer wg.Done()
			j.dispatch(row)
		})
		if submitErr != nil {
			wg.Done()
			logger.Error("Failed to submit outbox row %d to pool: %v", row.Id, submitErr)
		}
	}
	wg.Wait()
}

// dispatch 派发单条请求并更新其状态
func (j *OutboxDispatchJob) dispatch(row model.OutboxModel) {
	txHash, err := j.submit(row)
	if err != nil {
		row.Attempts++
		updates := map[string]interface{}{
			"attempts":   row.Attempts,
			"last_error": err.Error(),
		}
		if row.Attempts >= maxDispatchAttempts {
			updates["status"] = model.OutboxStatusFailed
			logger.Error("Outbox row %d (%s) failed permanently: %v", row.Id, row.Kind, err)
		} else {
			logger.Warn("Outbox row %d (%s) dispatch failed (attempt %d): %v", row.Id, row.Kind, row.Attempts, err)
		}
		if dbErr := j.db.Model(&model.OutboxModel{}).Where("id = ?", row.Id).Updates(updates).Error; dbErr != nil {
			logger.Error("Failed to update outbox row %d: %v", row.Id, dbErr)
		}
		return
	}

	updates := map[string]interface{}{
		"status":  model.OutboxStatusSent,
		"tx_hash": txHash,
	}
	if dbErr := j.db.Model(&model.OutboxModel{}).Where("id = ?", row.Id).Updates(updates).Error; dbErr != nil {
		logger.Error("Failed to update outbox row %d: %v", row.Id, dbErr)
		return
	}
	logger.Info("Dispatched outbox row %d (%s), tx: %s", row.Id, row.Kind, txHash)
}

// submit 按请求类型提交上链
func (j *OutboxDispatchJob) submit(row model.OutboxModel) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vestingAddr, err := j.vestingContract()
	if err != nil {
		return "", err
	}

	switch effect.Kind(row.Kind) {
	case effect.KindBankSend:
		var payload effect.BankSend
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return "", err
		}
		return j.ethClient.SendNative(ctx, payload.To, new(big.Int).SetUint64(payload.Amount))

	case effect.KindBankSweep:
		var payload effect.BankSweep
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return "", err
		}
		balance, err := j.ethClient.Balance(ctx)
		if err != nil {
			return "", err
		}
		return j.ethClient.SendNative(ctx, payload.To, balance)

	case effect.KindTokenTransferFrom:
		var payload effect.TokenTransferFrom
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return "", err
		}
		amount, ok := new(big.Int).SetString(payload.Amount, 10)
		if !ok {
			return "", fmt.Errorf("invalid token amount: %s", payload.Amount)
		}
		return j.ethClient.TokenTransferFrom(ctx, payload.Token, payload.Owner, payload.Recipient, amount)

	case effect.KindVestingAddProject:
		var payload effect.VestingAddProject
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return "", err
		}
		stages := make([][3]uint64, 0, len(payload.Stages))
		for _, s := range payload.Stages {
			stages = append(stages, [3]uint64{s.Soon, s.After, s.Period})
		}
		return j.ethClient.VestingAddProject(ctx, vestingAddr, payload.ProjectId, payload.Admin, payload.TokenAddr, stages, payload.StartTime)

	case effect.KindVestingAddBacker:
		var payload effect.VestingAddBacker
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return "", err
		}
		return j.ethClient.VestingAddBacker(ctx, vestingAddr, payload.ProjectId, payload.Wallet, payload.Stage, payload.Amount)

	case effect.KindVestingStartRelease:
		var payload effect.VestingStartRelease
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return "", err
		}
		return j.ethClient.VestingStartRelease(ctx, vestingAddr, payload.ProjectId, payload.StartTime)
	}

	return "", fmt.Errorf("unknown outbox kind: %s", row.Kind)
}

// vestingContract 读取当前归属合约地址
func (j *OutboxDispatchJob) vestingContract() (string, error) {
	var cfg model.PlatformConfigModel
	if err := j.db.First(&cfg).Error; err != nil {
		return "", fmt.Errorf("failed to load platform config: %w", err)
	}
	return cfg.VestingContract, nil
}
