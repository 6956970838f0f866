package scheduler

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Job 定时任务
type Job interface {
	Name() string
	Schedule() gocron.JobDefinition
	Execute(ctx context.Context)
}

// Manager 任务管理器，Stop 时取消传给任务的 ctx
type Manager struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewManager(logger *zap.Logger) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: s,
		logger:    logger.Named("scheduler"),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Register 注册任务；同一任务上一轮没跑完时本轮顺延
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		job.Schedule(),
		gocron.NewTask(func() { job.Execute(m.ctx) }),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.Name(), err)
	}
	m.logger.Info("job registered", zap.String("job", job.Name()))
	return nil
}

func (m *Manager) Start() {
	m.scheduler.Start()
	m.logger.Info("scheduler started")
}

func (m *Manager) Stop() error {
	m.cancel()
	if err := m.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	m.logger.Info("scheduler stopped")
	return nil
}
