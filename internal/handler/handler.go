package handler

import (
	"github.com/bhushananokar/interview-assistant/internal/cache"
	"github.com/bhushananokar/interview-assistant/internal/evaluator"
	"github.com/bhushananokar/interview-assistant/internal/question"
	"github.com/bhushananokar/interview-assistant/internal/repository"
	"go.uber.org/zap"
)

type Handler struct {
	Logger     *zap.Logger
	Repository *repository.Repository
	Evaluator  *evaluator.Evaluator
	Questions  *question.Generator
	Results    *cache.ResultsCache
}
