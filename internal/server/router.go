package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/coursegrid/pkg/logger"
	"github.com/limaJavier/coursegrid/pkg/model"
	"github.com/limaJavier/coursegrid/pkg/pipeline"
)

const storeCapacity = 64

// NewRouter wires the handlers, the request logger and the metrics middleware
func NewRouter(params model.Parameters, log *zap.Logger) *gin.Engine {
	store := pipeline.NewStore(storeCapacity)
	metrics := NewMetrics(func() float64 { return float64(store.Len()) })
	handler := NewHandler(params, store, metrics, log)

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log), metrics.Middleware())

	router.GET("/", handler.Index)
	router.POST("/generate-timetable", handler.GenerateTimetable)
	router.POST("/generate-electives", handler.GenerateElectives)
	router.GET("/timetables/:id", handler.Timetable)
	router.GET("/timetables/:id/download", handler.Download)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
