package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/config"
	"github.com/itelsaia/agente-itelsa-ia/cron"
	"github.com/itelsaia/agente-itelsa-ia/database"
	appointmentRepo "github.com/itelsaia/agente-itelsa-ia/database/repository/appointment"
	userRepo "github.com/itelsaia/agente-itelsa-ia/database/repository/user"
	"github.com/itelsaia/agente-itelsa-ia/handlers"
	"github.com/itelsaia/agente-itelsa-ia/middleware"
	"github.com/itelsaia/agente-itelsa-ia/routes"
	"github.com/itelsaia/agente-itelsa-ia/services/calendar"
	"github.com/itelsaia/agente-itelsa-ia/services/engine"
	"github.com/itelsaia/agente-itelsa-ia/services/intent"
	"github.com/itelsaia/agente-itelsa-ia/services/schedule"
	"github.com/itelsaia/agente-itelsa-ia/services/tasks"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Load configuration and logger first; everything else depends on them.
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	// Core infrastructure.
	database.InitDB()
	utils.InitSessionCache()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Fatal("Invalid timezone", zap.String("tz", config.AppConfig.Timezone), zap.Error(err))
	}

	hours := schedule.BusinessHours{
		Opening:  config.AppConfig.OpeningHour,
		Closing:  config.AppConfig.ClosingHour,
		Days:     config.AppConfig.BusinessDays,
		Location: loc,
	}

	ctx := context.Background()
	cal, err := calendar.NewGoogleCalendar(ctx,
		config.AppConfig.GoogleServiceAccountFile,
		config.AppConfig.GoogleCalendarID,
		config.AppConfig.Timezone,
	)
	if err != nil {
		logger.Fatal("Failed to initialize calendar client", zap.Error(err))
	}
	if err := cal.Verify(ctx); err != nil {
		// Booking turns will surface errors conversationally; keep serving.
		logger.Warn("Calendar verification failed at startup", zap.Error(err))
	}

	// Repositories.
	users := userRepo.NewMongoUserRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()

	// Reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	cron.InitReminderWorker()

	// Conversation engine.
	slots := &schedule.SlotGenerator{Calendar: cal, Hours: hours}
	checker := &schedule.Checker{Calendar: cal, Hours: hours, Slots: slots}
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMins) * time.Minute

	eng := &engine.DefaultEngine{
		Sessions:     engine.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL),
		Users:        users,
		Appointments: appointments,
		Calendar:     cal,
		Checker:      checker,
		Slots:        slots,
		Intents:      intent.NewKeywordClassifier(),
		Hours:        hours,
		Reminders:    tasks.NewAsynqReminderScheduler(asynqClient),
		SessionTTL:   sessionTTL,
	}

	// Console mode talks to the engine over stdin for local testing.
	if len(os.Args) > 1 && os.Args[1] == "console" {
		runConsole(eng)
		return
	}

	// HTTP transport.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())

	hb := &routes.HandlerBundle{
		Chat:  handlers.NewChatHandler(eng),
		Admin: handlers.NewAdminHandler(appointments),
	}
	routes.RegisterRoutes(router, hb)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.AppConfig.AppPort),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
