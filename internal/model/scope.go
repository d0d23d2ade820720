package model

// Environment identifies the runtime environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the caller identity through every use case. Templates and
// the pending-sync queue are stored per household; DeviceID tags offline
// writes so a household can sync from several devices.
type Scope struct {
	HouseholdID string
	UserID      string
	DeviceID    string
}
