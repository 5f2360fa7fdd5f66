package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"

	"MealHub/internal/job"
)

type Manager struct {
	engine          *cron.Cron
	calorieResetJob *job.CalorieResetJob
}

func NewCronManager(calorieResetJob *job.CalorieResetJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		calorieResetJob: calorieResetJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.calorieResetJob); err != nil {
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
