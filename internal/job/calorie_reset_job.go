package job

import (
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"

	"MealHub/internal/pkg/consts"
	"MealHub/internal/pkg/logger"
	"MealHub/internal/pkg/redis"
	"MealHub/internal/repository"
)

// CalorieResetJob 每天零点清零所有用户的当日卡路里
type CalorieResetJob struct {
	userRepo repository.UserRepo
}

func NewCalorieResetJob(userRepo repository.UserRepo) *CalorieResetJob {
	return &CalorieResetJob{userRepo: userRepo}
}

func (s *CalorieResetJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只允许一个实例执行
	locked, err := redis.TryLock(ctx, consts.CalorieResetLock, traceID, time.Minute*10, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire calorie reset lock error", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "calorie reset already running elsewhere, skip")
		return
	}
	defer redis.UnLock(ctx, consts.CalorieResetLock, traceID)

	affected, err := s.userRepo.ResetAllDailyCalories(ctx)
	if err != nil {
		log.ErrorContext(ctx, "reset daily calories error", "err", err)
		return
	}

	log.InfoContext(ctx, "daily calories reset", "users", affected)
}
