package providers

import (
	"net/http"
	"time"

	"credd/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Delete(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Mux() *http.ServeMux
}

// RouterProvider collects method-guarded routes. Every request is written to the
// get or post log channel with its status and latency.
type RouterProvider struct {
	routes []structures.Route
	logger Logger
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler)
}

func (rp *RouterProvider) Delete(url string, handler http.Handler) {
	rp.add(url, http.MethodDelete, handler)
}

func (rp *RouterProvider) add(url, method string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Method:  method,
		Handler: rp.accessLog(methodHandler(method, handler)),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Mux mounts every registered route on a fresh ServeMux.
func (rp *RouterProvider) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range rp.routes {
		mux.Handle(route.Url, route.Handler)
	}
	return mux
}

func (rp *RouterProvider) accessLog(next http.Handler) http.Handler {
	if rp.logger == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		rp.logger.Infof(GetLogTypeByRequestType(r.Method), "%s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

func NewRouterProvider(logger Logger) RouterProviderInterface {
	return &RouterProvider{logger: logger}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
