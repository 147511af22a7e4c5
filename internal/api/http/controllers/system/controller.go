package system

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/holmes-app/materialgirl/internal/ports"
)

// Controller — системные маршруты: liveness, readiness.
type Controller struct {
	storage ports.IPinger
	log     *slog.Logger
}

// New создаёт системный контроллер. Готовность — доступность хранилища материалов.
func New(storage ports.IPinger, log *slog.Logger) *Controller {
	return &Controller{storage: storage, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	if err := c.storage.Ping(ctx.Request.Context()); err != nil {
		c.log.Warn("ready check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
