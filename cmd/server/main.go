package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/adrianlee69dev/advantage-survey/internal/config"
	"github.com/adrianlee69dev/advantage-survey/internal/database"
	"github.com/adrianlee69dev/advantage-survey/internal/handlers"
	"github.com/adrianlee69dev/advantage-survey/internal/middleware"
	"github.com/adrianlee69dev/advantage-survey/internal/services"

	_ "github.com/adrianlee69dev/advantage-survey/docs"
)

// @title           Survey API
// @version         1.0
// @description     Backend service for creating and answering surveys with role-based access control
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description User UUID resolved by the identity layer

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	userService := services.NewUserService(db)
	surveyService := services.NewSurveyService(db)
	responseService := services.NewResponseService(db, surveyService)

	userHandler := handlers.NewUserHandler(userService)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	questionHandler := handlers.NewQuestionHandler(surveyService)
	responseHandler := handlers.NewResponseHandler(responseService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Survey API", "docs": "/swagger/index.html"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/me", middleware.Identity(db), userHandler.GetMe)
		}

		surveys := api.Group("/surveys")
		surveys.Use(middleware.Identity(db))
		{
			surveys.POST("", surveyHandler.CreateSurvey)
			surveys.GET("", surveyHandler.ListSurveys)
			surveys.GET("/:id", surveyHandler.GetSurvey)
			surveys.PATCH("/:id/publish", surveyHandler.PublishSurvey)
			surveys.POST("/:id/share", surveyHandler.ShareSurvey)

			surveys.POST("/:id/questions", questionHandler.AddQuestion)
			surveys.GET("/:id/questions", questionHandler.ListQuestions)

			surveys.POST("/:id/responses", responseHandler.SubmitResponse)
			surveys.GET("/:id/responses", responseHandler.ListResponses)
			surveys.GET("/:id/responses/me", responseHandler.ListMyResponses)
			surveys.GET("/:id/responses/aggregate", responseHandler.GetAggregate)
			surveys.GET("/:id/responses/:responseId", responseHandler.GetResponse)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
