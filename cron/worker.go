package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"padelwatch/config"
	"padelwatch/services/monitor"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeMonitorCycle = "monitor:cycle"

// InitMonitorWorker runs the periodic availability monitor in background: an
// asynq scheduler enqueues a cycle task at the configured interval and a
// single-concurrency worker executes it, so cycles never overlap.
func InitMonitorWorker(monitorSvc monitor.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			// One cycle at a time; the stores assume non-overlapping runs.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMonitorCycle, handleMonitorTask(monitorSvc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	interval := config.AppConfig.MonitorIntervalMinutes
	if interval <= 0 {
		interval = 5
	}
	cronspec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(cronspec, asynq.NewTask(TypeMonitorCycle, nil)); err != nil {
		log.Fatalf("[MonitorWorker] failed to register periodic cycle task: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[MonitorWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MonitorWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MonitorWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go func() {
		log.Printf("[MonitorWorker] scheduling cycle every %dm", interval)
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[MonitorWorker] scheduler failed: %v", err)
		}
	}()
}

func handleMonitorTask(monitorSvc monitor.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		log.Println("[MonitorHandler] running availability cycle")
		if err := monitorSvc.RunCycle(ctx); err != nil {
			log.Printf("[MonitorHandler] cycle failed: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[MonitorWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
