package materials

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/ports"
)

// Заголовки ответа с метаданными снимка.
const (
	HeaderSource    = "X-Material-Source"
	HeaderFetchedAt = "X-Material-Fetched-At"
)

// Controller — маршруты материалов: список, значение, состояние, ручное устаревание и проход.
type Controller struct {
	uc  ports.IMaterializer[domain.Snapshot]
	log *slog.Logger
}

// New создаёт контроллер материалов.
func New(uc ports.IMaterializer[domain.Snapshot], log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.GET("/materials", c.list)
	api.GET("/materials/:key", c.get)
	api.GET("/materials/:key/expired", c.expired)
	api.POST("/materials/:key/expire", c.expire)
	api.POST("/sweep", c.sweep)
}

// @Summary Список материалов
// @Description Ключи в порядке регистрации и признак устаревания в хранилище
// @Tags materials
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/materials [get]
func (c *Controller) list(ctx *gin.Context) {
	keys := c.uc.Keys()
	items := make([]MaterialStatus, 0, len(keys))
	for _, key := range keys {
		expired, err := c.uc.IsExpired(ctx.Request.Context(), key)
		if err != nil {
			c.log.Error("list materials failed", "key", key, "error", err)
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		items = append(items, MaterialStatus{Key: key, Expired: expired})
	}
	ctx.JSON(http.StatusOK, ListResponse{Items: items})
}

// @Summary Значение материала
// @Description Тело снимка с исходным Content-Type. Пока значения нет, оно считается синхронно.
// @Tags materials
// @Param key path string true "Ключ материала"
// @Success 200 "Тело снимка"
// @Success 204 "Значения нет"
// @Failure 404 {object} ErrorResponse "Материал не зарегистрирован"
// @Failure 502 {object} ErrorResponse "Источник недоступен"
// @Router /api/v1/materials/{key} [get]
func (c *Controller) get(ctx *gin.Context) {
	key := ctx.Param("key")
	snap, found, err := c.uc.Get(ctx.Request.Context(), key)
	if err != nil {
		c.fail(ctx, "get material failed", key, err)
		return
	}
	if !found {
		ctx.Status(http.StatusNoContent)
		return
	}
	contentType := snap.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Header(HeaderSource, snap.Source)
	if !snap.FetchedAt.IsZero() {
		ctx.Header(HeaderFetchedAt, snap.FetchedAt.UTC().Format(time.RFC3339))
	}
	ctx.Data(http.StatusOK, contentType, snap.Body)
}

// @Summary Устарел ли материал
// @Tags materials
// @Produce json
// @Param key path string true "Ключ материала"
// @Success 200 {object} MaterialStatus
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/materials/{key}/expired [get]
func (c *Controller) expired(ctx *gin.Context) {
	key := ctx.Param("key")
	expired, err := c.uc.IsExpired(ctx.Request.Context(), key)
	if err != nil {
		c.fail(ctx, "is expired failed", key, err)
		return
	}
	ctx.JSON(http.StatusOK, MaterialStatus{Key: key, Expired: expired})
}

// @Summary Пометить материал устаревшим
// @Description Значение остаётся доступным, следующий проход пересчитает его
// @Tags materials
// @Produce json
// @Param key path string true "Ключ материала"
// @Success 200 {object} MaterialStatus
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/materials/{key}/expire [post]
func (c *Controller) expire(ctx *gin.Context) {
	key := ctx.Param("key")
	if err := c.uc.Expire(ctx.Request.Context(), key); err != nil {
		c.fail(ctx, "expire failed", key, err)
		return
	}
	ctx.JSON(http.StatusOK, MaterialStatus{Key: key, Expired: true})
}

// @Summary Запустить проход
// @Description Синхронный проход по всем материалам. Ошибки отдельных ключей возвращаются одной строкой.
// @Tags materials
// @Produce json
// @Success 200 {object} SweepResponse
// @Failure 500 {object} SweepResponse
// @Router /api/v1/sweep [post]
func (c *Controller) sweep(ctx *gin.Context) {
	if err := c.uc.Run(ctx.Request.Context()); err != nil {
		c.log.Warn("manual sweep finished with errors", "error", err)
		ctx.JSON(http.StatusInternalServerError, SweepResponse{Status: "failed", Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, SweepResponse{Status: "ok"})
}

// fail переводит ошибку оркестратора в HTTP-статус.
func (c *Controller) fail(ctx *gin.Context, msg, key string, err error) {
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		c.log.Warn(msg, "key", key, "error", err)
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProducerFailed):
		c.log.Warn(msg, "key", key, "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		c.log.Error(msg, "key", key, "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
