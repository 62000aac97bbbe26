package main

import (
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/config"
	httpserver "checkers/internal/server/http"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "start the HTTP API (and static web UI when --web is set)",
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return err
	}

	srv := httpserver.NewServer(httpserver.ServerOptions{
		Addr:        cfg.Addr,
		WebDir:      cfg.WebDir,
		MobileDir:   cfg.MobileWebDir,
		IdleTimeout: cfg.IdleTimeout,
		Handler: httpserver.Options{
			Rules:         cfg.Rules(),
			SearchDepth:   cfg.SearchDepth,
			SearchTimeout: cfg.SearchTimeout,
		},
	})
	log.Info().
		Str("addr", cfg.Addr).
		Str("web", cfg.WebDir).
		Str("mobile_web", cfg.MobileWebDir).
		Dur("idle_timeout", cfg.IdleTimeout).
		Stringer("first", cfg.FirstToMove).
		Msg("starting server")

	if cfg.OpenBrowser && cfg.WebDir != "" {
		// 延迟一下再开浏览器，否则服务器可能还没起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(browserURL(cfg.Addr))
		}()
	}
	return srv.ListenAndServe(c.Context)
}

func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}
	// 没有图形界面的环境会失败，不影响服务
	if err := cmd.Start(); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("open browser")
	}
}
