package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/peerrank/internal/config"
	"github.com/Spok95/peerrank/internal/db"
	"github.com/Spok95/peerrank/internal/metrics"
	"github.com/Spok95/peerrank/internal/rating"
)

// API — зависимости HTTP-слоя: справочник, сервис оценок, конфиг.
type API struct {
	cfg   *config.Config
	store *db.Store
	svc   *rating.Service
	log   *zap.Logger
}

func NewAPI(cfg *config.Config, store *db.Store, svc *rating.Service, log *zap.Logger) *API {
	return &API{cfg: cfg, store: store, svc: svc, log: log}
}

func (a *API) Router() *gin.Engine {
	if a.cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", a.healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", a.identity())

	// операции оценщика
	api.POST("/rooms/:id/ratings", a.submitRating)
	api.GET("/rooms/:id/leaderboard", a.leaderboard)
	api.GET("/rooms/:id/leaderboard/export", a.leaderboardExport)
	api.GET("/rooms/:id/ratings", a.receivedRatings)
	api.GET("/rooms/:id/students", a.roomStudents)

	// справочник — только администраторам
	admin := api.Group("", a.requireAdmin())
	admin.POST("/rooms", a.createRoom)
	admin.GET("/rooms", a.listRooms)
	admin.DELETE("/rooms/:id", a.deleteRoom)
	admin.POST("/rooms/:id/questions", a.createQuestion)
	admin.GET("/rooms/:id/questions", a.listQuestions)
	admin.DELETE("/questions/:id", a.deleteQuestion)
	admin.POST("/students", a.createStudent)
	admin.GET("/students", a.listStudents)
	admin.DELETE("/students/:id", a.deleteStudent)
	admin.PUT("/students/:id/room", a.assignStudent)
	admin.DELETE("/students/:id/room", a.unassignStudent)

	return r
}

type HTTPServer struct {
	srv *http.Server
}

// Start — поднимает сервер и гасит его по ctx.Done().
func Start(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}

func (a *API) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := a.store.Ping(ctx); err != nil {
		c.String(http.StatusServiceUnavailable, "db not ok: %s", err.Error())
		return
	}
	metrics.ObserveDBPing(time.Since(t0))
	c.String(http.StatusOK, "ok")
}
