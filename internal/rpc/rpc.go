// Package rpc multiplexes named procedures over a single HTTP prefix,
// mirroring the tRPC surface the web client speaks: queries via
// GET /trpc/:procedure?input=<json>, mutations via POST /trpc/:procedure.
package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/lingrid/core/internal/middleware"
	"github.com/lingrid/core/internal/modules/auth/authority"
	"github.com/lingrid/core/internal/pkg/response"
)

// Kind distinguishes read-only queries from mutations.
type Kind int

const (
	Query Kind = iota
	Mutation
)

type procedure struct {
	kind    Kind
	public  bool
	handler gin.HandlerFunc
}

// Router dispatches named procedures. Procedures are protected unless
// registered as public; protected calls are gated on a valid access token
// before the handler runs, with the identity attached to the context.
type Router struct {
	auth  *authority.Authority
	procs map[string]procedure
}

// NewRouter creates an empty procedure router gated by the given authority.
func NewRouter(auth *authority.Authority) *Router {
	return &Router{auth: auth, procs: make(map[string]procedure)}
}

// Query registers a protected query procedure.
func (r *Router) Query(name string, h gin.HandlerFunc) {
	r.procs[name] = procedure{kind: Query, handler: h}
}

// Mutation registers a protected mutation procedure.
func (r *Router) Mutation(name string, h gin.HandlerFunc) {
	r.procs[name] = procedure{kind: Mutation, handler: h}
}

// PublicQuery registers a query that skips the access token gate.
func (r *Router) PublicQuery(name string, h gin.HandlerFunc) {
	r.procs[name] = procedure{kind: Query, public: true, handler: h}
}

// PublicMutation registers a mutation that skips the access token gate.
func (r *Router) PublicMutation(name string, h gin.HandlerFunc) {
	r.procs[name] = procedure{kind: Mutation, public: true, handler: h}
}

// Mount attaches the router under a route group, typically /trpc.
func (r *Router) Mount(rg *gin.RouterGroup) {
	rg.GET("/:procedure", r.dispatch(Query))
	rg.POST("/:procedure", r.dispatch(Mutation))
}

func (r *Router) dispatch(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("procedure")
		proc, ok := r.procs[name]
		if !ok {
			response.NotFound(c, response.CauseProcedureNotFound, "no such procedure: "+name)
			return
		}
		if proc.kind != kind {
			response.Err(c, http.StatusMethodNotAllowed, response.CauseWrongMethod,
				"queries use GET, mutations use POST")
			return
		}
		if !proc.public {
			id, err := r.auth.ValidateAccess(middleware.ExtractAccessToken(c))
			if err != nil {
				response.Unauthorized(c, string(authority.CauseOf(err)), err.Error())
				return
			}
			middleware.SetIdentity(c, id)
		}
		proc.handler(c)
	}
}

// BindInput decodes the procedure input into dst and runs binding
// validation. Queries carry input in the ?input= query parameter, mutations
// in the JSON body. A missing input is treated as an empty object so
// procedures with optional inputs work without one.
func BindInput(c *gin.Context, dst interface{}) error {
	var raw []byte
	if c.Request.Method == http.MethodGet {
		raw = []byte(c.Query("input"))
	} else if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return err
		}
		raw = body
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(dst)
}
