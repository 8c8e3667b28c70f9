// Package http wires the chat API's routes to their services. Paths, bodies,
// and error strings follow the public client contract.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chronolock/chatd/internal/chat/service"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/pkg/blob"
	"github.com/chronolock/chatd/pkg/httpx"
	"github.com/chronolock/chatd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	IdentityService   *service.IdentityService
	GroupService      *service.GroupService
	MembershipService *service.MembershipService
	MessageService    *service.MessageService
	UserService       *service.UserService

	// UploadsDir enables static avatar serving when the filesystem blob
	// driver is active; empty for object-storage deployments.
	UploadsDir string
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.MetricsMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGroups()
	r.registerMembers()
	r.registerMessages()
	r.registerUsers()
	r.registerSystem()

	if r.UploadsDir != "" {
		r.Mux.Handle("GET "+blob.WebPrefix,
			http.StripPrefix(blob.WebPrefix, http.FileServer(http.Dir(r.UploadsDir))))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{IdentityService: r.IdentityService}

	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/googleSignIn",
		httpx.Chain(http.HandlerFunc(h.HandleGoogleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{GroupService: r.GroupService}

	lenient := httpx.RateLimitByIP(httpx.LenientLimit)

	r.Mux.Handle("GET /groups/fetchFilteredGroups/{idNumber}",
		httpx.Chain(http.HandlerFunc(h.HandleFetchFiltered), lenient))
	r.Mux.Handle("GET /groups/fetchAllgroups",
		httpx.Chain(http.HandlerFunc(h.HandleFetchAll), lenient))
	r.Mux.Handle("GET /groups/fetchAvailableGroups/{idNumber}",
		httpx.Chain(http.HandlerFunc(h.HandleFetchAvailable), lenient))
	r.Mux.Handle("POST /groups/insertGroup",
		httpx.Chain(http.HandlerFunc(h.HandleInsert), lenient))
	r.Mux.Handle("PUT /groups/updateGroup/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), lenient))
	r.Mux.Handle("DELETE /groups/deleteGroup/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), lenient))
}

func (r *Router) registerMembers() {
	h := &MembersHandler{MembershipService: r.MembershipService}

	lenient := httpx.RateLimitByIP(httpx.LenientLimit)

	r.Mux.Handle("GET /group-members/fetchMemberCount/",
		httpx.Chain(http.HandlerFunc(h.HandleCount), lenient))
	r.Mux.Handle("GET /group-members/fetchMembers/",
		httpx.Chain(http.HandlerFunc(h.HandleList), lenient))
	r.Mux.Handle("POST /group-members/insertMemberByGroupKey",
		httpx.Chain(http.HandlerFunc(h.HandleJoinByKey), lenient))
	r.Mux.Handle("DELETE /group-members/deleteMember",
		httpx.Chain(http.HandlerFunc(h.HandleRemove), lenient))
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{MessageService: r.MessageService}

	lenient := httpx.RateLimitByIP(httpx.LenientLimit)

	r.Mux.Handle("POST /messages/group/{groupId}/newMessage",
		httpx.Chain(http.HandlerFunc(h.HandleNewMessage), lenient))
	r.Mux.Handle("POST /messages/group/{groupId}/newSystemMessage",
		httpx.Chain(http.HandlerFunc(h.HandleNewSystemMessage), lenient))
	r.Mux.Handle("GET /messages/group/{groupId}/fetchMessages",
		httpx.Chain(http.HandlerFunc(h.HandleFetch), lenient))
	r.Mux.Handle("POST /messages/group/{groupId}/markMessageAsSeen",
		httpx.Chain(http.HandlerFunc(h.HandleMarkSeen), lenient))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	lenient := httpx.RateLimitByIP(httpx.LenientLimit)
	strict := httpx.RateLimitByIP(httpx.StrictLimit)

	r.Mux.Handle("PUT /users/updateUser/",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), lenient))
	r.Mux.Handle("DELETE /users/deleteUser/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), lenient))

	// Password endpoints share the auth endpoints' strict limit.
	r.Mux.Handle("POST /users/forgotPassword",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword), strict))
	r.Mux.Handle("PUT /users/resetPassword",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword), strict))
	r.Mux.Handle("PUT /users/changePassword",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword), strict))
}

func (r *Router) registerSystem() {
	lenient := httpx.RateLimitByIP(httpx.LenientLimit)

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), lenient))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), lenient))
	r.Mux.Handle("GET /metrics", httpx.MetricsHandler())
}
