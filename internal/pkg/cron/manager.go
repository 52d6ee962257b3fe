package cron

import (
	"Cuben/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine     *cron.Cron
	recountJob *job.CounterRecountJob
}

func NewCronManager(recountJob *job.CounterRecountJob) *Manager {
	return &Manager{
		engine:     cron.New(cron.WithSeconds()),
		recountJob: recountJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 每十分钟对脏目标做一轮计数重算
	if _, err := s.engine.AddJob("0 */10 * * * *", s.recountJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
