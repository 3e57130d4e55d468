package jsonrpc

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/meridianchain/v1/internal/config"
	log "github.com/meridianchain/v1/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义JSON-RPC模块的依赖参数
type ModuleParams struct {
	fx.In

	Config    *config.Config
	ZapLogger *zap.Logger
}

// Module 返回JSON-RPC服务器模块
//
// 只提供服务器本体与HTTP生命周期；具体方法由 methods 包注册。
func Module() fx.Option {
	return fx.Module("jsonrpc",
		fx.Provide(ProvideServer),

		fx.Invoke(StartHTTPServer),
	)
}

// ProvideServer 创建JSON-RPC服务器
func ProvideServer(params ModuleParams) *Server {
	var metrics *Metrics
	if params.Config.API.IsMetricsEnabled() {
		metrics = NewMetrics(prometheus.DefaultRegisterer)
	}
	return NewServer(params.ZapLogger.With(zap.String("module", "api")), metrics)
}

// StartHTTPServer 挂载JSON-RPC服务器并管理HTTP生命周期
func StartHTTPServer(server *Server, cfg *config.Config, logger log.Logger, lc fx.Lifecycle) {
	mux := http.NewServeMux()
	mux.Handle("/", maxBody(cfg.API.GetMaxBodyBytes(), server))
	if cfg.API.IsMetricsEnabled() {
		mux.Handle("/metrics", promhttp.Handler())
	}

	timeout := time.Duration(cfg.API.GetRequestTimeoutMs()) * time.Millisecond
	httpServer := &http.Server{
		Addr:              cfg.API.ListenAddr,
		Handler:           http.TimeoutHandler(mux, timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if logger != nil {
					logger.Infof("🚀 JSON-RPC 服务器监听于 %s", cfg.API.ListenAddr)
				}
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					if logger != nil {
						logger.Errorf("JSON-RPC 服务器异常退出: %v", err)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if logger != nil {
				logger.Info("🛑 JSON-RPC 服务器正在关闭")
			}
			return httpServer.Shutdown(ctx)
		},
	})
}

// maxBody 限制请求体大小
func maxBody(limit int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
