package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"opdcare/config"
	"opdcare/models"
	"opdcare/services/appointment"
	"opdcare/services/notification"
	"opdcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async delivery worker in background.
func InitNotificationWorker(sender notification.Sender, appts appointment.AppointmentService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeMessageSend, handleMessageTask(sender, appts))

	go monitorRedisConnection()

	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleMessageTask(sender notification.Sender, appts appointment.AppointmentService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		var p models.MessagePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid notification payload", zap.Error(err))
			return err
		}

		if err := sender.Send(p); err != nil {
			logger.Error("failed to deliver notification",
				zap.String("channel", p.Channel),
				zap.String("refKind", p.RefKind),
				zap.Error(err))
			return err
		}

		if p.RefKind == "appointment" && p.Ref != "" && appts != nil {
			if err := appts.MarkSMSSent(p.Ref); err != nil {
				// Delivery succeeded; the flag is bookkeeping only.
				logger.Warn("failed to mark appointment SMS sent",
					zap.String("appointmentID", p.Ref), zap.Error(err))
			}
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
			log.Printf("[NotificationWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
