package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/vansh-agarwal/Agent/internal/agent"
	"github.com/vansh-agarwal/Agent/internal/config"
	"github.com/vansh-agarwal/Agent/internal/dispatch"
	"github.com/vansh-agarwal/Agent/internal/handlers"
	"github.com/vansh-agarwal/Agent/internal/nlp"
	"github.com/vansh-agarwal/Agent/internal/pdf"
	"github.com/vansh-agarwal/Agent/internal/repositories"
	"github.com/vansh-agarwal/Agent/internal/routes"
	"github.com/vansh-agarwal/Agent/internal/services"
	"github.com/vansh-agarwal/Agent/internal/workflow"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)
	emailRepo := repositories.NewEmailRepository(db)

	// === Services ===
	notifier := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
	)

	var telegram *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegram, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("[app][telegram][warn] %v, continuing without", err)
			telegram = nil
		}
	}

	gemini := services.NewGeminiService(cfg.Gemini)
	prediction := services.NewPredictionService(cfg.ML.BaseURL, cfg.ML.APIKey)
	calendar := services.NewCalendarClient(cfg.Calendar.BaseURL, cfg.Calendar.APIKey, cfg.Calendar.DryRun)

	taskService := services.NewTaskService(taskRepo)
	eventService := services.NewEventService(eventRepo, calendar)

	// === NLP / agent ===
	resolver := nlp.NewResolver()
	decisions := agent.NewDecisionMaker(gemini)
	prioritizer := agent.NewPrioritizer(gemini)
	advisor := agent.NewScheduleAdvisor(gemini)
	responder := agent.NewResponder(gemini)
	sessions := agent.NewSessionStore()

	dispatcher := dispatch.NewDispatcher(taskService, eventService, notifier, prediction)
	engine := workflow.NewEngine(taskRepo, eventRepo, reminderRepo, emailRepo, notifier, telegram)

	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir, cfg.Files.FontPath)

	// === Handlers ===
	chatHandler := handlers.NewChatHandler(resolver, decisions, dispatcher, responder, sessions, taskService, eventService)
	taskHandler := handlers.NewTaskHandler(taskService, prioritizer)
	eventHandler := handlers.NewEventHandler(eventService, advisor)
	emailHandler := handlers.NewEmailHandler(emailRepo, notifier)
	workflowHandler := handlers.NewWorkflowHandler(engine)
	mlHandler := handlers.NewMLHandler(prediction)
	reportHandler := handlers.NewReportHandler(pdfGen, taskService, eventService, prioritizer, cfg.Files.RootDir)
	statusHandler := handlers.NewStatusHandler(
		cfg.Gemini.APIKey != "" && !cfg.Gemini.DryRun,
		telegram != nil,
		cfg.ML.BaseURL != "",
		cfg.Calendar.BaseURL != "" && !cfg.Calendar.DryRun,
	)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	routes.SetupRoutes(
		router,
		chatHandler,
		taskHandler,
		eventHandler,
		emailHandler,
		workflowHandler,
		mlHandler,
		reportHandler,
		statusHandler,
	)

	// === Workflow ticker ===
	if cfg.Workflow.TickIntervalMinutes > 0 {
		interval := time.Duration(cfg.Workflow.TickIntervalMinutes) * time.Minute
		go engine.Run(context.Background(), interval)
		log.Printf("[app] workflow engine ticking every %s", interval)
	}

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, X-User-Email")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
