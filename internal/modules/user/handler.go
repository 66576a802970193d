package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lingrid/core/internal/pkg/pagination"
	"github.com/lingrid/core/internal/pkg/response"
	"github.com/lingrid/core/internal/rpc"
	"github.com/lingrid/core/internal/storage"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterProcedures registers the protected account CRUD procedures.
func (h *Handler) RegisterProcedures(r *rpc.Router) {
	r.Query("searchUsers", h.searchUsers)
	r.Mutation("addUser", h.addUser)
	r.Mutation("deleteUser", h.deleteUser)
	r.Query("checkPass", h.checkPass)
}

func (h *Handler) searchUsers(c *gin.Context) {
	var dto SearchDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	q := pagination.Normalize(dto.Page, dto.Size)
	users, meta, err := h.svc.Search(c.Request.Context(), dto.Email, q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, toViews(users), meta)
}

func (h *Handler) addUser(c *gin.Context) {
	var dto AddUserDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	u, err := h.svc.CreateAccount(c.Request.Context(), dto.Email, dto.Pass, dto.OAuthProvider)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredential):
			response.BadRequest(c, response.CauseInvalidInput, err.Error())
		case errors.Is(err, storage.ErrDuplicateEmail):
			response.Conflict(c, response.CauseEmailTaken, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, toView(u))
}

func (h *Handler) deleteUser(c *gin.Context) {
	var dto DeleteUserDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	u, err := h.svc.Delete(c.Request.Context(), dto.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(c, response.CauseUserNotFound, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toView(u))
}

func (h *Handler) checkPass(c *gin.Context) {
	var dto CheckPassDTO
	if err := rpc.BindInput(c, &dto); err != nil {
		response.BadRequest(c, response.CauseInvalidInput, err.Error())
		return
	}
	ok, err := h.svc.CheckPass(c.Request.Context(), dto.Email, dto.Pass)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, ok)
}
