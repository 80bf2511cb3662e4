// Package constants defines shared constant values used across the application.
package constants

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Database table names.
const (
	TableTenants          = "tenants"
	TableSubscriptions    = "subscriptions"
	TableSubscriptionOrds = "subscription_orders"
	TableActivities       = "subscription_activities"
	TableSaveFlows        = "save_flows"
	TableSaveAttempts     = "save_attempts"
	TableValidationRuns   = "validation_runs"
	TableValidationIssues = "validation_issues"
	TableSellingPlans     = "selling_plans"
	TableTenantSettings   = "tenant_settings"
	TableAdminUsers       = "admin_users"
	TableEmailQueue       = "email_queue"
)

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys set by HTTP middleware.
const (
	ContextKeyActorType  = "actor_type"
	ContextKeyActorID    = "actor_id"
	ContextKeyTenantSlug = "tenant_slug"
	ContextKeyAdminID    = "admin_id"
	ContextKeyAdminEmail = "admin_email"
)
