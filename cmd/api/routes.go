package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.RequestIDMiddleware())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	})

	r.Use(app.CORSMiddleware())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/interviews", app.Handler.StartInterview)
		v1.GET("/interviews", app.Handler.ListInterviews)
		v1.GET("/interviews/:id/questions", app.Handler.GetInterviewQuestions)
		v1.GET("/interviews/:id/results", app.Handler.GetInterviewResults)
		v1.POST("/interviews/responses", app.Handler.SubmitResponse)
		v1.DELETE("/interviews/:id", app.Handler.DeleteInterview)
	}

	return r
}
