package http

import (
	"net/http"
	"strings"
	"time"

	"veridia/internal/domain/user"
	"veridia/internal/http/handlers"
	"veridia/internal/http/metrics"
	httpmw "veridia/internal/http/middleware"
	"veridia/internal/observability"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	DepartmentHandler  *handlers.DepartmentHandler
	PositionHandler    *handlers.PositionHandler
	ApplicationHandler *handlers.ApplicationHandler
	DashboardHandler   *handlers.DashboardHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             *observability.Logger
	RequestTimeout     time.Duration
	MediaDir           string
}

type Router struct {
	deps  RouterDependencies
	media http.Handler
}

// Resume uploads pass through here, so the body cap sits above the 1 MiB a
// JSON API would use.
const maxBodyBytes = 12 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{
		deps:  deps,
		media: http.StripPrefix("/media/resumes/", http.FileServer(http.Dir(deps.MediaDir))),
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		case req.Method == http.MethodGet && path == "/departments":
			r.deps.DepartmentHandler.List(w, req)
			return
		case req.Method == http.MethodGet && path == "/positions":
			r.deps.PositionHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/media/resumes/"):
			r.media.ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/users") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/departments") || strings.HasPrefix(path, "/positions") || strings.HasPrefix(path, "/dashboard") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	admin := httpmw.RequireRole(user.RoleAdmin)

	switch {
	case req.Method == http.MethodGet && path == "/users/profile":
		r.deps.UserHandler.Profile(w, req)
		return
	case req.Method == http.MethodPatch && path == "/users/profile":
		r.deps.UserHandler.UpdateProfile(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		r.deps.ApplicationHandler.Submit(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		admin(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/"):
		admin(http.HandlerFunc(r.deps.ApplicationHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		admin(http.HandlerFunc(r.deps.ApplicationHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/departments":
		admin(http.HandlerFunc(r.deps.DepartmentHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/departments/"):
		admin(http.HandlerFunc(r.deps.DepartmentHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/departments/"):
		admin(http.HandlerFunc(r.deps.DepartmentHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/positions":
		admin(http.HandlerFunc(r.deps.PositionHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/positions/"):
		admin(http.HandlerFunc(r.deps.PositionHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/positions/"):
		admin(http.HandlerFunc(r.deps.PositionHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/dashboard/stats":
		r.deps.DashboardHandler.Stats(w, req)
		return
	case req.Method == http.MethodGet && path == "/dashboard/analytics":
		admin(http.HandlerFunc(r.deps.DashboardHandler.Analytics)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/dashboard/activity":
		admin(http.HandlerFunc(r.deps.DashboardHandler.Activity)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/dashboard/interviews":
		admin(http.HandlerFunc(r.deps.DashboardHandler.UpcomingInterviews)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
