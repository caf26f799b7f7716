package model

import "time"

// UserRole controls what a user may do in the marketplace.
type UserRole string

// User role constants.
const (
	RoleViewer      UserRole = "viewer"
	RoleContributor UserRole = "contributor"
	RoleAdmin       UserRole = "admin"
)

// User is the marketplace view of an authenticated person.
type User struct {
	Username string
	Name     string
	Email    string
	Role     UserRole
}

// RecentView records that a user opened a dataset.
type RecentView struct {
	ViewedAt  time.Time
	DatasetID string
}

// OrganizationMetrics summarizes an organization's catalog footprint.
type OrganizationMetrics struct {
	DatasetCount         int
	AverageDatasetRating float64
	ActiveUsers          int
}

// Organization is a publishing entity in the marketplace.
type Organization struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
	Website     string
	DatasetIDs  []string
	Metrics     OrganizationMetrics
	Verified    bool
}
