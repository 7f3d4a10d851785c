package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux and groups route
// registration by surface.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterPublicRoutes wires the unauthenticated form endpoint.
func (r *Router) RegisterPublicRoutes(reg *RegisterHandler) {
	r.Handle("/register", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		reg.Register(w, req)
	})
}

// RegisterAuthRoutes wires login/logout.
func (r *Router) RegisterAuthRoutes(a *AuthHandler) {
	r.Handle("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		a.Login(w, req)
	})
	r.Handle("/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		a.Logout(w, req)
	})
}

// RegisterDashboardRoutes wires the reporting view behind the session check.
func (r *Router) RegisterDashboardRoutes(sessions *SessionManager, d *DashboardHandler) {
	r.Handle("/dashboard/stats", sessions.Require(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.GetStats(w, req)
	}))
}

// RegisterAdminRoutes wires the CRUD and import/export surface behind the
// session check.
func (r *Router) RegisterAdminRoutes(sessions *SessionManager, h *WargaHandler) {
	r.Handle("/admin/api/v1/warga", sessions.Require(h.Collection))
	r.Handle("/admin/api/v1/warga/", sessions.Require(h.ByID))
	r.Handle("/admin/api/v1/warga/export", sessions.Require(h.Export))
	r.Handle("/admin/api/v1/warga/import", sessions.Require(h.Import))
}
