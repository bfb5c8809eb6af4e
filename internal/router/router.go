package router

import (
	"huf_go/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Dependencies struct {
	CompressorHandler *handler.CompressorHandler
}

func Register(r *gin.Engine, d Dependencies) {
	// 공용 라우트
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// v1 그룹
	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", d.CompressorHandler.Compress)
		v1.POST("/decompress", d.CompressorHandler.Decompress)

		runs := v1.Group("/runs")
		{
			runs.GET("", d.CompressorHandler.ListRuns)
			runs.GET("/:id", d.CompressorHandler.GetRun)
		}
	}
}
