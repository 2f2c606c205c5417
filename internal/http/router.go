package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
	"github.com/Ngapa/banyu-job-vacation/internal/http/handlers"
	"github.com/Ngapa/banyu-job-vacation/internal/http/metrics"
	"github.com/Ngapa/banyu-job-vacation/internal/http/middleware"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
)

const maxBodyBytes = 1 << 20

type RouterDependencies struct {
	Auth       *handlers.AuthHandler
	Jobs       *handlers.JobHandler
	Applicants *handlers.ApplicantHandler
	Favorites  *handlers.FavoriteHandler
	Profile    *handlers.ProfileHandler
	Metrics    *handlers.MetricsHandler

	AuthMiddleware *middleware.AuthMiddleware
	Collector      *metrics.Collector
	RequestTimeout time.Duration
}

func NewRouter(deps RouterDependencies) http.Handler {
	rt := &router{deps: deps}
	return middleware.Chain(rt,
		middleware.RequestID,
		middleware.Logging,
		middleware.BodyLimit(maxBodyBytes),
		middleware.Recover,
		middleware.Metrics(deps.Collector),
		middleware.Timeout(deps.RequestTimeout),
	)
}

type router struct {
	deps RouterDependencies
}

func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h := rt.resolve(r); h != nil {
		h.ServeHTTP(w, r)
		return
	}
	response.Error(w, common.NewError(common.CodeNotFound, "route not found", nil))
}

func (rt *router) resolve(r *http.Request) http.Handler {
	seg := pathSegments(r.URL.Path)
	method := r.Method

	if len(seg) == 0 {
		if method == http.MethodGet {
			return http.HandlerFunc(rt.deps.Jobs.Home)
		}
		return nil
	}

	switch seg[0] {
	case "health":
		if len(seg) == 1 && method == http.MethodGet {
			return http.HandlerFunc(healthHandler)
		}
	case "metrics":
		if len(seg) == 1 && method == http.MethodGet {
			return http.HandlerFunc(rt.deps.Metrics.Get)
		}
	case "auth":
		return rt.resolveAuth(seg, method)
	case "tags":
		if len(seg) == 1 && method == http.MethodGet {
			return http.HandlerFunc(rt.deps.Jobs.Tags)
		}
	case "jobs":
		return rt.resolveJobs(seg, method)
	case "favorites":
		if len(seg) == 1 && method == http.MethodPost {
			return rt.deps.AuthMiddleware.Optional(http.HandlerFunc(rt.deps.Favorites.Toggle))
		}
	case "applicants":
		if len(seg) == 3 && seg[2] == "response" && method == http.MethodPatch {
			return rt.employer(rt.deps.Applicants.SendResponse)
		}
	case "employee":
		return rt.resolveEmployee(seg, method)
	case "employer":
		return rt.resolveEmployer(seg, method)
	}
	return nil
}

func (rt *router) resolveAuth(seg []string, method string) http.Handler {
	if method != http.MethodPost {
		return nil
	}
	if len(seg) == 3 && seg[1] == "register" {
		switch seg[2] {
		case "employee":
			return http.HandlerFunc(rt.deps.Auth.RegisterEmployee)
		case "employer":
			return http.HandlerFunc(rt.deps.Auth.RegisterEmployer)
		}
		return nil
	}
	if len(seg) != 2 {
		return nil
	}
	switch seg[1] {
	case "login":
		return http.HandlerFunc(rt.deps.Auth.Login)
	case "refresh":
		return http.HandlerFunc(rt.deps.Auth.Refresh)
	case "logout":
		return http.HandlerFunc(rt.deps.Auth.Logout)
	}
	return nil
}

func (rt *router) resolveJobs(seg []string, method string) http.Handler {
	switch len(seg) {
	case 1:
		switch method {
		case http.MethodGet:
			return http.HandlerFunc(rt.deps.Jobs.List)
		case http.MethodPost:
			return rt.employer(rt.deps.Jobs.Create)
		}
	case 2:
		if seg[1] == "search" {
			if method == http.MethodGet {
				return http.HandlerFunc(rt.deps.Jobs.Search)
			}
			return nil
		}
		switch method {
		case http.MethodGet:
			return http.HandlerFunc(rt.deps.Jobs.Get)
		case http.MethodPatch:
			return rt.employer(rt.deps.Jobs.Update)
		}
	case 3:
		switch seg[2] {
		case "apply":
			if method == http.MethodPost {
				return rt.employee(rt.deps.Applicants.Apply)
			}
		case "filled":
			if method == http.MethodPost {
				return rt.employer(rt.deps.Jobs.MarkFilled)
			}
		case "applicants":
			if method == http.MethodGet {
				return rt.employer(rt.deps.Applicants.ListForJob)
			}
		}
	}
	return nil
}

func (rt *router) resolveEmployee(seg []string, method string) http.Handler {
	if len(seg) != 2 {
		return nil
	}
	switch seg[1] {
	case "applications":
		if method == http.MethodGet {
			return rt.employee(rt.deps.Applicants.ListMine)
		}
	case "favorites":
		if method == http.MethodGet {
			return rt.employee(rt.deps.Favorites.ListMine)
		}
	case "profile":
		switch method {
		case http.MethodGet:
			return rt.employee(rt.deps.Profile.Get)
		case http.MethodPut:
			return rt.employee(rt.deps.Profile.Update)
		}
	}
	return nil
}

func (rt *router) resolveEmployer(seg []string, method string) http.Handler {
	switch {
	case len(seg) == 2 && seg[1] == "jobs":
		if method == http.MethodGet {
			return rt.employer(rt.deps.Jobs.ListByOwner)
		}
	case len(seg) == 2 && seg[1] == "applicants":
		if method == http.MethodGet {
			return rt.employer(rt.deps.Applicants.ListByOwner)
		}
	case len(seg) == 3 && seg[1] == "applicants":
		if method == http.MethodGet {
			return rt.employer(rt.deps.Applicants.Get)
		}
	case len(seg) == 2 && seg[1] == "profile":
		switch method {
		case http.MethodGet:
			return rt.employer(rt.deps.Profile.Get)
		case http.MethodPut:
			return rt.employer(rt.deps.Profile.Update)
		}
	}
	return nil
}

func (rt *router) employee(h http.HandlerFunc) http.Handler {
	return rt.deps.AuthMiddleware.Authenticate(middleware.RequireRole(user.RoleEmployee)(h))
}

func (rt *router) employer(h http.HandlerFunc) http.Handler {
	return rt.deps.AuthMiddleware.Authenticate(middleware.RequireRole(user.RoleEmployer)(h))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
