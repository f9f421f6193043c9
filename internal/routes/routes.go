package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	chatHandler *handlers.ChatHandler,
	taskHandler *handlers.TaskHandler,
	eventHandler *handlers.EventHandler,
	emailHandler *handlers.EmailHandler,
	workflowHandler *handlers.WorkflowHandler,
	mlHandler *handlers.MLHandler,
	reportHandler *handlers.ReportHandler,
	statusHandler *handlers.StatusHandler,
) *gin.Engine {

	api := r.Group("/api")

	api.GET("/status", statusHandler.Status)
	api.POST("/chat", chatHandler.Chat)

	// TASKS
	tasks := api.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.GetAll)
		tasks.POST("/prioritize", taskHandler.Prioritize)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// EVENTS
	events := api.Group("/events")
	{
		events.POST("/", eventHandler.Create)
		events.GET("/", eventHandler.GetAll)
		events.GET("/conflicts", eventHandler.Conflicts)
		events.POST("/suggest-slot", eventHandler.SuggestSlot)
		events.GET("/:id", eventHandler.GetByID)
		events.DELETE("/:id", eventHandler.Delete)
	}

	// EMAILS
	emails := api.Group("/emails")
	{
		emails.POST("/send", emailHandler.Send)
		emails.GET("/recent", emailHandler.Recent)
	}

	// WORKFLOWS
	api.POST("/workflows/check", workflowHandler.Check)

	// ML
	ml := api.Group("/ml")
	{
		ml.GET("/status", mlHandler.Status)
		ml.POST("/career-predict", mlHandler.CareerPredict)
		ml.POST("/hr-analyze", mlHandler.HRAnalyze)
		ml.POST("/customer-segment", mlHandler.CustomerSegment)
	}

	// REPORTS
	api.GET("/reports/agenda", reportHandler.Agenda)

	return r
}
