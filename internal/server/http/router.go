package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"checkers/internal/server/game"
)

// ServerOptions 对应命令行/环境变量里的服务端配置
type ServerOptions struct {
	Addr        string
	WebDir      string        // 为空时不挂静态页面
	MobileDir   string        // 为空时和 WebDir 相同
	IdleTimeout time.Duration // 空闲超过这个时间的对局会被清掉；0 表示不清
	Handler     Options
}

// Server 把 /api/*、/healthz 和静态页面挂到同一个 http.Server 上
type Server struct {
	opts  ServerOptions
	games *game.Manager
	api   *Handler

	mu  sync.Mutex
	srv *http.Server
}

func NewServer(opts ServerOptions) *Server {
	games := game.NewManager()
	return &Server{
		opts:  opts,
		games: games,
		api:   NewHandler(games, opts.Handler),
	}
}

func (s *Server) Games() *game.Manager { return s.games }

// Routes 测试里直接拿来用 httptest
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", s.api)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.opts.WebDir != "" {
		RegisterStaticRoutes(mux, s.opts.WebDir, s.opts.MobileDir)
	}
	return mux
}

// ListenAndServe 阻塞到 ctx 结束或监听失败；ctx 结束时优雅关闭
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second, // ai_move 会阻塞到搜索结束
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	if s.opts.IdleTimeout > 0 {
		go s.pruneLoop(ctx, pruneInterval(s.opts.IdleTimeout), s.opts.IdleTimeout)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("http listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("http shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

func pruneInterval(maxIdle time.Duration) time.Duration {
	iv := maxIdle / 4
	if iv < time.Second {
		iv = time.Second
	}
	if iv > time.Minute {
		iv = time.Minute
	}
	return iv
}

// pruneLoop 定期清理空闲对局，ctx 结束时退出
func (s *Server) pruneLoop(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.games.Prune(maxIdle)
		}
	}
}

// Close 立即停止（mobile 宿主退出时用）
func (s *Server) Close() error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Close()
}
