package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/liamcoop/projectforge/catalog"
	"github.com/liamcoop/projectforge/internal/logger"
	"github.com/liamcoop/projectforge/planner"
)

type Server struct {
	db      *sql.DB
	manager *catalog.Manager
	router  *chi.Mux
}

func NewServer(databaseURL string) (*Server, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	manager := catalog.NewManager(db)

	logger.Info("loading tenants from database")
	if err := manager.LoadAllTenants(); err != nil {
		return nil, fmt.Errorf("failed to load tenants: %w", err)
	}

	tenants := manager.ListTenants()
	logger.Info("tenants loaded", "count", len(tenants))

	s := &Server{
		db:      db,
		manager: manager,
	}

	s.setupRoutes()

	return s, nil
}

// slowRequestThreshold is the latency above which a request is counted
// and logged as slow, well below the middleware timeout
const slowRequestThreshold = 5 * time.Second

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(slowRequests(slowRequestThreshold))

	// Health check
	r.Get("/api/v1/health", s.handleHealth)

	// Engine queries
	r.Post("/api/v1/questions", s.handleQuestions)
	r.Post("/api/v1/plan", s.handlePlan)
	r.Post("/api/v1/schedule", s.handleSchedule)

	// Tenant and configuration management
	r.Route("/api/v1/tenants", func(r chi.Router) {
		r.Get("/", s.handleListTenants)
		r.Post("/", s.handleCreateTenant)

		r.Route("/{tenantId}", func(r chi.Router) {
			r.Route("/projecttypes", func(r chi.Router) {
				r.Post("/", s.handleCreateProjectType)
				r.Get("/", s.handleListProjectTypes)
				r.Get("/{projectTypeId}", s.handleGetProjectType)
				r.Put("/{projectTypeId}", s.handleUpdateProjectType)
				r.Delete("/{projectTypeId}", s.handleDeleteProjectType)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Post("/", s.handleCreateTemplate)
				r.Get("/", s.handleListTemplates)
				r.Get("/{templateId}", s.handleGetTemplate)
				r.Put("/{templateId}", s.handleUpdateTemplate)
				r.Delete("/{templateId}", s.handleDeleteTemplate)
			})
		})
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// slowRequests counts and logs requests whose handling exceeds
// threshold. Counting goes through logger.CountSlowRequest so the
// warning tally stays consistent with the HTTP status counters.
func slowRequests(threshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if elapsed := time.Since(start); elapsed > threshold {
				logger.CountSlowRequest()
				logger.Logger.Warn("slow request",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", elapsed)
			}
		})
	}
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"tenantsLoaded": len(s.manager.ListTenants()),
	})
}

// Active questions handler
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	var req QuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	engine, ok := s.tenantEngine(w, req.TenantID, req.ProjectTypeID)
	if !ok {
		return
	}

	questions, err := engine.Questions(req.ProjectTypeID, req.SelectedOptionIDs)
	if err != nil {
		respondError(w, http.StatusNotFound, "project type not found", err)
		return
	}
	if questions == nil {
		questions = []*planner.PrerequisiteQuestion{}
	}

	respondJSON(w, http.StatusOK, QuestionsResponse{Questions: questions})
}

// Generation plan handler
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	engine, ok := s.tenantEngine(w, req.TenantID, req.ProjectTypeID)
	if !ok {
		return
	}

	files, err := engine.Plan(req.ProjectTypeID, req.SelectedOptionIDs, req.ClientValues)
	if err != nil {
		respondError(w, http.StatusNotFound, "project type not found", err)
		return
	}
	if files == nil {
		files = []planner.GeneratedFile{}
	}

	respondJSON(w, http.StatusOK, PlanResponse{Files: files})
}

// Schedule handler
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	engine, ok := s.tenantEngine(w, req.TenantID, req.ProjectTypeID)
	if !ok {
		return
	}

	timeline, err := engine.Timeline(req.ProjectTypeID, req.DeploymentDate, req.ClientValues)
	if err != nil {
		respondError(w, http.StatusNotFound, "project type not found", err)
		return
	}

	resp := ScheduleResponse{
		Emails:    timeline.Emails,
		Documents: timeline.Documents,
		Questions: timeline.Questions,
	}
	if resp.Emails == nil {
		resp.Emails = []planner.ScheduledEmail{}
	}
	if resp.Documents == nil {
		resp.Documents = []planner.ScheduledDocument{}
	}
	if resp.Questions == nil {
		resp.Questions = []planner.ScheduledQuestion{}
	}

	respondJSON(w, http.StatusOK, resp)
}

// tenantEngine resolves the engine for a request, writing the error
// response itself when the tenant or required fields are missing
func (s *Server) tenantEngine(w http.ResponseWriter, tenantID, projectTypeID string) (*planner.Engine, bool) {
	if tenantID == "" {
		respondError(w, http.StatusBadRequest, "tenantId is required", nil)
		return nil, false
	}
	if projectTypeID == "" {
		respondError(w, http.StatusBadRequest, "projectTypeId is required", nil)
		return nil, false
	}

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return nil, false
	}
	return engine, true
}

// List tenants handler
func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query("SELECT id, name, created_at, updated_at FROM tenants ORDER BY created_at DESC")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list tenants", err)
		return
	}
	defer rows.Close()

	tenants := []TenantResponse{}
	for rows.Next() {
		var t TenantResponse
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to scan tenant", err)
			return
		}
		tenants = append(tenants, t)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"tenants": tenants,
	})
}

// Create tenant handler
func (s *Server) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	var tenantID string
	err := s.db.QueryRow(`
		INSERT INTO tenants (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id
	`, req.Name).Scan(&tenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create tenant", err)
		return
	}

	if err := s.manager.CreateTenant(tenantID, req.Name); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to initialize tenant", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":   tenantID,
		"name": req.Name,
	})
}

// Create project type handler
func (s *Server) handleCreateProjectType(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")

	var pt planner.ProjectType
	if err := json.NewDecoder(r.Body).Decode(&pt); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if pt.ID == "" {
		pt.ID = uuid.NewString()
	}

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	if err := engine.AddProjectType(&pt); err != nil {
		respondError(w, http.StatusBadRequest, "failed to create project type", err)
		return
	}

	respondJSON(w, http.StatusCreated, &pt)
}

// List project types handler
func (s *Server) handleListProjectTypes(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	c, err := engine.Catalog()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list project types", err)
		return
	}

	projectTypes := c.ProjectTypes
	if projectTypes == nil {
		projectTypes = []*planner.ProjectType{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"projectTypes": projectTypes,
	})
}

// Get project type handler
func (s *Server) handleGetProjectType(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	projectTypeID := chi.URLParam(r, "projectTypeId")

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	pt, err := engine.GetProjectType(projectTypeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "project type not found", err)
		return
	}

	respondJSON(w, http.StatusOK, pt)
}

// Update project type handler
func (s *Server) handleUpdateProjectType(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	projectTypeID := chi.URLParam(r, "projectTypeId")

	var pt planner.ProjectType
	if err := json.NewDecoder(r.Body).Decode(&pt); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	pt.ID = projectTypeID

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	if err := engine.UpdateProjectType(&pt); err != nil {
		respondError(w, http.StatusBadRequest, "failed to update project type", err)
		return
	}

	respondJSON(w, http.StatusOK, &pt)
}

// Delete project type handler
func (s *Server) handleDeleteProjectType(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	projectTypeID := chi.URLParam(r, "projectTypeId")

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	if err := engine.DeleteProjectType(projectTypeID); err != nil {
		respondError(w, http.StatusNotFound, "project type not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Create template handler
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")

	var tpl planner.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	if err := engine.AddTemplate(&tpl); err != nil {
		respondError(w, http.StatusBadRequest, "failed to create template", err)
		return
	}

	respondJSON(w, http.StatusCreated, &tpl)
}

// List templates handler
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	c, err := engine.Catalog()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list templates", err)
		return
	}

	templates := c.Templates
	if templates == nil {
		templates = []*planner.Template{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
	})
}

// Get template handler
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	templateID := chi.URLParam(r, "templateId")

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	tpl, err := engine.GetTemplate(templateID)
	if err != nil {
		respondError(w, http.StatusNotFound, "template not found", err)
		return
	}

	respondJSON(w, http.StatusOK, tpl)
}

// Update template handler
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	templateID := chi.URLParam(r, "templateId")

	var tpl planner.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	tpl.ID = templateID

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	if err := engine.UpdateTemplate(&tpl); err != nil {
		respondError(w, http.StatusBadRequest, "failed to update template", err)
		return
	}

	respondJSON(w, http.StatusOK, &tpl)
}

// Delete template handler
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	templateID := chi.URLParam(r, "templateId")

	engine, err := s.manager.GetEngine(tenantID)
	if err != nil {
		respondError(w, http.StatusNotFound, "tenant not found", err)
		return
	}

	if err := engine.DeleteTemplate(templateID); err != nil {
		respondError(w, http.StatusNotFound, "template not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
	logger.CountHTTPStatus(status)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	respondJSON(w, status, resp)
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	server, err := NewServer(databaseURL)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}
	defer server.db.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		logger.Error("logger shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
