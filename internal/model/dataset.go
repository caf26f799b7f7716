// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// MaturityLevel indicates the publication stage of a dataset.
type MaturityLevel string

// Maturity level constants.
const (
	MaturityDraft      MaturityLevel = "Draft"
	MaturityPrepared   MaturityLevel = "Prepared for distribution"
	MaturityPublished  MaturityLevel = "Published"
	MaturityDeprecated MaturityLevel = "Deprecated"
)

// LifecycleStatus indicates where a dataset is in its lifecycle.
type LifecycleStatus string

// Lifecycle status constants.
const (
	LifecycleActive     LifecycleStatus = "Active"
	LifecycleArchived   LifecycleStatus = "Archived"
	LifecycleDeprecated LifecycleStatus = "Deprecated"
)

// ClassificationType is the sensitivity tier governing how a dataset is handled.
type ClassificationType string

// Classification constants, ordered from least to most sensitive.
const (
	ClassificationPublic       ClassificationType = "Public"
	ClassificationInternal     ClassificationType = "Internal"
	ClassificationConfidential ClassificationType = "Confidential"
	ClassificationSensitive    ClassificationType = "Sensitive personal data"
	ClassificationRestricted   ClassificationType = "Restricted"
)

// DataOwner identifies the person accountable for a dataset.
type DataOwner struct {
	ID         string
	Name       string
	Email      string
	Department string
}

// DataSteward identifies the person responsible for a dataset's day-to-day quality.
type DataSteward struct {
	ID         string
	Name       string
	Email      string
	Department string
}

// DatasetMetrics holds the quality and usage measurements for a dataset.
// Score fields are percentages in [0,100]; AverageRating is in [0,5].
type DatasetMetrics struct {
	QualityScore  int
	Completeness  int
	Accuracy      int
	Timeliness    int
	UsageCount    int
	AverageRating float64
}

// Validate ensures all metrics are within their documented bounds.
func (m *DatasetMetrics) Validate() error {
	for _, check := range []struct {
		name  string
		value int
	}{
		{"quality score", m.QualityScore},
		{"completeness", m.Completeness},
		{"accuracy", m.Accuracy},
		{"timeliness", m.Timeliness},
	} {
		if check.value < 0 || check.value > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %d", check.name, check.value)
		}
	}

	if m.UsageCount < 0 {
		return fmt.Errorf("usage count must be non-negative, got %d", m.UsageCount)
	}

	if m.AverageRating < 0.0 || m.AverageRating > 5.0 {
		return fmt.Errorf("average rating must be between 0.0 and 5.0, got %.1f", m.AverageRating)
	}

	return nil
}

// PreviewColumn describes a single column of a dataset preview.
type PreviewColumn struct {
	Name         string
	BusinessName string
	Description  string
	DataType     string
	SampleValues []string
}

// Header returns the display name for the column, preferring the business name.
func (c *PreviewColumn) Header() string {
	if c.BusinessName != "" {
		return c.BusinessName
	}
	return c.Name
}

// DatasetPreview holds sample rows for a dataset.
type DatasetPreview struct {
	Columns    []PreviewColumn
	SampleData [][]string
	RowCount   int
}

// RelationshipType describes how two datasets relate to each other.
type RelationshipType string

// Relationship type constants.
const (
	RelationshipSimilar RelationshipType = "similar"
	RelationshipDerived RelationshipType = "derived"
	RelationshipParent  RelationshipType = "parent"
	RelationshipChild   RelationshipType = "child"
)

// RelatedDataset is a lightweight reference to another dataset in the catalog.
type RelatedDataset struct {
	ID               string
	Name             string
	Description      string
	RelationshipType RelationshipType
	SimilarityScore  float64 // 0-1, zero when unknown
}

// Dataset is the central entity of the marketplace: a cataloged data asset
// with governance metadata, quality metrics, and optional preview data.
// Datasets are immutable from the client's perspective; all mutation happens
// through server-backed operations (rating, bookmarking).
type Dataset struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ID              string
	TechnicalID     string
	SourceSystemID  string
	SourceSystem    string
	Name            string
	Description     string
	BusinessLine    string
	BusinessEntity  string
	Location        string
	Domain          string
	SubDomain       string
	Owner           DataOwner
	Steward         DataSteward
	Maturity        MaturityLevel
	Lifecycle       LifecycleStatus
	Classification  ClassificationType
	LegalGround     string
	CIARating       string
	Tags            []string
	Metrics         DatasetMetrics
	Preview         *DatasetPreview
	RelatedDatasets []RelatedDataset
	Ratings         []DatasetRating
	ElementCount    int
	HistoricalData  bool
}

// Validate ensures the dataset satisfies its core invariants.
func (d *Dataset) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("dataset ID is required")
	}
	if d.Name == "" {
		return fmt.Errorf("dataset name is required")
	}
	if err := d.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics for dataset %s: %w", d.ID, err)
	}
	return nil
}

// HasTag reports whether the dataset carries the given tag (case-sensitive).
func (d *Dataset) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
