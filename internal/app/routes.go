package app

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lingrid/core/internal/middleware"
	authmod "github.com/lingrid/core/internal/modules/auth/auth"
	"github.com/lingrid/core/internal/modules/auth/authority"
	usermod "github.com/lingrid/core/internal/modules/user"
	"github.com/lingrid/core/internal/pkg/response"
	"github.com/lingrid/core/internal/pkg/token"
	"github.com/lingrid/core/internal/rpc"
	"github.com/lingrid/core/internal/storage"
)

func (a *App) registerRoutes(users storage.UserStore, authz *authority.Authority) {
	r := a.router

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(a.rc.Raw()))
	r.Use(middleware.Idempotence(a.rc.Raw()))

	r.NoMethod(func(c *gin.Context) {
		response.Err(c, http.StatusMethodNotAllowed, response.CauseWrongMethod, "method not allowed")
	})

	userSvc := usermod.NewService(users)
	authSvc := authmod.NewService(userSvc, authz)

	accessTTL := a.cfg.Auth.AccessTTL
	if accessTTL <= 0 {
		accessTTL = token.DefaultAccessTTL
	}
	refreshTTL := a.cfg.Auth.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = token.DefaultRefreshTTL
	}

	procs := rpc.NewRouter(authz)
	authmod.NewHandler(authSvc, authmod.HandlerConfig{
		Delivery:   a.cfg.Auth.Delivery,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}).RegisterProcedures(procs)
	usermod.NewHandler(userSvc).RegisterProcedures(procs)
	procs.Mount(r.Group("/trpc"))

	r.GET("/healthz", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	a.registerStatic()
}

// registerStatic serves the built frontend from the static dir with an
// index.html fallback for client-side routes. API paths never fall through
// to the SPA.
func (a *App) registerStatic() {
	staticDir := a.cfg.StaticDir()

	a.router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/trpc/") || path == "/trpc" {
			response.NotFound(c, response.CauseProcedureNotFound, "no such procedure")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c, response.CauseProcedureNotFound, "not found")
			return
		}

		candidate := filepath.Join(staticDir, filepath.Clean("/"+path))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		response.NotFound(c, response.CauseProcedureNotFound, "not found")
	})
}
