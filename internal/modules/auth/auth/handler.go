package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lingrid/core/internal/middleware"
	"github.com/lingrid/core/internal/modules/auth/authority"
	usermod "github.com/lingrid/core/internal/modules/user"
	"github.com/lingrid/core/internal/pkg/response"
	"github.com/lingrid/core/internal/rpc"
	"github.com/lingrid/core/internal/storage"
)

// Token delivery modes. Cookie mode is canonical; header mode returns the
// pair in the response body for clients that store tokens themselves.
const (
	DeliveryCookie = "cookie"
	DeliveryHeader = "header"
)

// HandlerConfig sets the delivery mode and the cookie lifetimes, which
// mirror the token TTLs.
type HandlerConfig struct {
	Delivery   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	svc *Service
	cfg HandlerConfig
}

func NewHandler(svc *Service, cfg HandlerConfig) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

// RegisterProcedures registers the auth procedures. login, register, and
// refresh are the only public mutations; everything else requires a valid
// access token.
func (h *Handler) RegisterProcedures(r *rpc.Router) {
	r.PublicQuery("hello", h.hello)
	r.PublicMutation("login", h.login)
	r.PublicMutation("register", h.register)
	r.PublicMutation("refresh", h.refresh)
	r.Mutation("logout", h.logout)
	r.Query("me", h.me)
}

func (h *Handler) hello(c *gin.Context) {
	var dto HelloDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	name := "world"
	if dto.Name != nil && *dto.Name != "" {
		name = *dto.Name
	}
	response.OK(c, "Hello, "+name+"!")
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	id, pair, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Pass)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			response.NotFound(c, response.CauseUserNotFound, "user not found")
		case errors.Is(err, usermod.ErrWrongPassword):
			response.Unauthorized(c, response.CauseInvalidCredentials, "invalid credentials")
		default:
			response.InternalError(c, err)
		}
		return
	}
	h.deliver(c, id, pair)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	id, pair, err := h.svc.Register(c.Request.Context(), dto.Email, dto.Pass, dto.OAuthProvider)
	if err != nil {
		switch {
		case errors.Is(err, usermod.ErrMissingCredential):
			response.BadRequest(c, response.CauseInvalidInput, err.Error())
		case errors.Is(err, storage.ErrDuplicateEmail):
			response.Conflict(c, response.CauseEmailTaken, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	h.deliver(c, id, pair)
}

func (h *Handler) refresh(c *gin.Context) {
	refresh := middleware.ExtractRefreshToken(c)
	if refresh == "" {
		var dto RefreshDTO
		if err := rpc.BindInput(c, &dto); err == nil {
			refresh = dto.RefreshToken
		}
	}
	if refresh == "" {
		response.Unauthorized(c, string(authority.CauseNoToken), "refresh token is required")
		return
	}

	id, pair, err := h.svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		if cause := authority.CauseOf(err); cause != "" {
			response.Unauthorized(c, string(cause), err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	h.deliver(c, id, pair)
}

func (h *Handler) logout(c *gin.Context) {
	refresh := middleware.ExtractRefreshToken(c)
	if refresh == "" {
		var dto LogoutDTO
		if err := rpc.BindInput(c, &dto); err == nil {
			refresh = dto.RefreshToken
		}
	}
	h.svc.Logout(c.Request.Context(), refresh)
	if h.cfg.Delivery == DeliveryCookie {
		h.clearCookies(c)
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	response.OK(c, gin.H{"user": middleware.CurrentIdentity(c)})
}

// deliver sends the token pair per the configured mode and responds with
// the public user view.
func (h *Handler) deliver(c *gin.Context, id authority.Identity, pair authority.Pair) {
	if h.cfg.Delivery == DeliveryHeader {
		response.OK(c, gin.H{
			"user":         id,
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieAccessToken, pair.AccessToken,
		int(h.cfg.AccessTTL.Seconds()), "/", "", true, true)
	c.SetCookie(middleware.CookieRefreshToken, pair.RefreshToken,
		int(h.cfg.RefreshTTL.Seconds()), "/", "", true, true)
	response.OK(c, gin.H{"user": id})
}

func (h *Handler) clearCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieAccessToken, "", -1, "/", "", true, true)
	c.SetCookie(middleware.CookieRefreshToken, "", -1, "/", "", true, true)
}
