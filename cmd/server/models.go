package main

import (
	"time"

	"github.com/liamcoop/projectforge/planner"
)

// API request and response models

// CreateTenantRequest is the request body for creating a tenant
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuestionsRequest asks for the prerequisite questions active for a selection
type QuestionsRequest struct {
	TenantID          string   `json:"tenantId"`
	ProjectTypeID     string   `json:"projectTypeId"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}

// QuestionsResponse lists the active questions in configuration order
type QuestionsResponse struct {
	Questions []*planner.PrerequisiteQuestion `json:"questions"`
}

// PlanRequest asks for the immediate generation plan
type PlanRequest struct {
	TenantID          string            `json:"tenantId"`
	ProjectTypeID     string            `json:"projectTypeId"`
	SelectedOptionIDs []string          `json:"selectedOptionIds"`
	ClientValues      map[string]string `json:"clientValues"`
}

// PlanResponse lists the files to generate now, documents before emails
type PlanResponse struct {
	Files []planner.GeneratedFile `json:"files"`
}

// ScheduleRequest asks for the future timeline anchored to a deployment date
type ScheduleRequest struct {
	TenantID       string            `json:"tenantId"`
	ProjectTypeID  string            `json:"projectTypeId"`
	DeploymentDate string            `json:"deploymentDate"`
	ClientValues   map[string]string `json:"clientValues"`
}

// ScheduleResponse carries the three time-ordered schedule lists
type ScheduleResponse struct {
	Emails    []planner.ScheduledEmail    `json:"emails"`
	Documents []planner.ScheduledDocument `json:"documents"`
	Questions []planner.ScheduledQuestion `json:"questions"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
