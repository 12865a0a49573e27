package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
	"github.com/cloud-ru/mcp-amortization-go/internal/tools"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

// maxBodyBytes ограничивает размер тела запроса к инструменту
const maxBodyBytes = 1 << 20

// Handler отдает инструменты расчета по HTTP
type Handler struct {
	tools  map[string]tools.ToolHandler
	logger *zap.Logger
}

// NewHandler создает HTTP-обработчик поверх набора инструментов
func NewHandler(registry map[string]tools.ToolHandler, logger *zap.Logger) *Handler {
	return &Handler{tools: registry, logger: logger}
}

// NewRouter создает роутер со всеми маршрутами сервиса
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/tools", func(r chi.Router) {
		r.Get("/", h.ListTools)
		r.Post("/{name}", h.CallTool)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health отвечает на проверку живости
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTools возвращает имена доступных инструментов
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.tools))
	for name := range h.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string][]string{"tools": names})
}

// CallTool вызывает инструмент {name} с JSON-объектом параметров из тела запроса
func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	handler, ok := h.tools[name]
	if !ok {
		metrics.APICalls.WithLabelValues("http", name, "not_found").Inc()
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown tool: " + name})
		return
	}

	var params map[string]interface{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&params); err != nil || params == nil {
		metrics.APICalls.WithLabelValues("http", name, "bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "тело запроса должно быть JSON-объектом"})
		return
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, validators.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		metrics.APICalls.WithLabelValues("http", name, "error").Inc()
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	metrics.APICalls.WithLabelValues("http", name, "success").Inc()
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
