package task

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/seedfund/sfs/internal/config"
	"github.com/seedfund/sfs/internal/ethereum"
	"github.com/seedfund/sfs/internal/logger"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	ethClient *ethereum.Client
	config    *config.Config
	jobs      []*OutboxDispatchJob
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, ethClient *ethereum.Client, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		ethClient: ethClient,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, ethClient *ethereum.Client, cfg *config.Config) *Manager {
	manager := NewManager(db, ethClient, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册对外请求派发任务
	m.RegisterOutboxDispatchJob()
}

// RegisterOutboxDispatchJob 注册对外请求派发任务
func (m *Manager) RegisterOutboxDispatchJob() {
	job, err := NewOutboxDispatchJob(m.db, m.config, m.ethClient)
	if err != nil {
		logger.Fatal("Failed to create outbox dispatch job: %v", err)
	}
	m.jobs = append(m.jobs, job)

	_, err = m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	for _, job := range m.jobs {
		job.Release()
	}
	logger.Info("Task manager stopped")
}
