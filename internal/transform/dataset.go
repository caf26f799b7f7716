// Package transform maps heterogeneous raw API payloads into normalized
// domain models. The backend mixes source-system field names (GDSId,
// GoldenDataSetName) with camelCase ones depending on which pipeline
// produced the record; this package coalesces both shapes.
package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/datafoundry/bazaar/internal/model"
)

// Metric defaults applied when the backend omits the metrics block.
const (
	defaultCompleteness = 85
	defaultAccuracy     = 90
	defaultTimeliness   = 95
)

// RawOwner is the wire form of an owner or steward reference.
type RawOwner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// RawMetrics is the wire form of the metrics block.
type RawMetrics struct {
	QualityScore  *int     `json:"qualityScore"`
	Completeness  *int     `json:"completeness"`
	Accuracy      *int     `json:"accuracy"`
	Timeliness    *int     `json:"timeliness"`
	UsageCount    *int     `json:"usageCount"`
	AverageRating *float64 `json:"averageRating"`
}

// RawPreviewColumn is the wire form of a preview column descriptor.
type RawPreviewColumn struct {
	Name         string   `json:"name"`
	BusinessName string   `json:"businessName"`
	Description  string   `json:"description"`
	DataType     string   `json:"dataType"`
	SampleValues []string `json:"sampleValues"`
}

// RawPreview is the wire form of a dataset preview.
type RawPreview struct {
	Columns    []RawPreviewColumn `json:"columns"`
	SampleData [][]string         `json:"sampleData"`
	RowCount   int                `json:"rowCount"`
}

// RawRelated is the wire form of a related-dataset reference.
type RawRelated struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	RelationshipType string  `json:"relationshipType"`
	SimilarityScore  float64 `json:"similarityScore"`
}

// RawRating is the wire form of a dataset rating.
type RawRating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// RawDataset carries both field-name conventions the backend emits. Fields
// are coalesced source-system name first, camelCase second.
type RawDataset struct {
	GDSID             string       `json:"GDSId"`
	ID                string       `json:"id"`
	SourceSysID       string       `json:"SourceSysId"`
	TechnicalID       string       `json:"technicalId"`
	SourceSysName     string       `json:"SourceSysName"`
	SourceSystem      string       `json:"sourceSysName"`
	GoldenDataSetName string       `json:"GoldenDataSetName"`
	Name              string       `json:"name"`
	DataDescription   string       `json:"DataDescription"`
	Description       string       `json:"description"`
	BusinessLineRaw   string       `json:"BusinessLine"`
	BusinessLine      string       `json:"businessLine"`
	BusinessEntityRaw string       `json:"BusinessEntity"`
	BusinessEntity    string       `json:"businessEntity"`
	MaturityRaw       string       `json:"Maturity"`
	Maturity          string       `json:"maturity"`
	DataLifecycleRaw  string       `json:"DataLifecycle"`
	DataLifecycle     string       `json:"dataLifecycle"`
	LocationRaw       string       `json:"Location"`
	Location          string       `json:"location"`
	DataDomainRaw     string       `json:"DataDomain"`
	DataDomain        string       `json:"dataDomain"`
	DataSubDomainRaw  string       `json:"DataSubDomain"`
	DataSubDomain     string       `json:"dataSubDomain"`
	DataOwnerID       string       `json:"DataOwnerID"`
	DataOwnerName     string       `json:"DataOwnerName"`
	DataOwner         *RawOwner    `json:"dataOwner"`
	DataStewardID     string       `json:"DataStewardID"`
	DataStewardName   string       `json:"DataStewardName"`
	DataSteward       *RawOwner    `json:"dataSteward"`
	ClassificationRaw string       `json:"DataClassification"`
	Classification    string       `json:"dataClassification"`
	LegalGroundRaw    string       `json:"LegalGroundCollection"`
	LegalGround       string       `json:"legalGroundCollection"`
	HistoricalRaw     string       `json:"HistoricalData"`
	Historical        bool         `json:"historicalData"`
	CIARatingRaw      string       `json:"CIARating"`
	CIARating         string       `json:"ciaRating"`
	NbDataElements    string       `json:"NbDataElements"`
	ElementCount      int          `json:"numberOfDataElements"`
	CreatedAt         string       `json:"createdAt"`
	UpdatedAt         string       `json:"updatedAt"`
	Tags              []string     `json:"tags"`
	Metrics           *RawMetrics  `json:"metrics"`
	Preview           *RawPreview  `json:"preview"`
	RelatedDatasets   []RawRelated `json:"relatedDatasets"`
	Ratings           []RawRating  `json:"ratings"`
}

// Dataset normalizes a raw record into the domain model.
func Dataset(raw RawDataset) model.Dataset {
	now := time.Now()

	d := model.Dataset{
		ID:             coalesce(raw.GDSID, raw.ID),
		TechnicalID:    coalesce(raw.SourceSysID, raw.TechnicalID),
		SourceSystemID: coalesce(raw.SourceSysID, raw.TechnicalID),
		SourceSystem:   coalesce(raw.SourceSysName, raw.SourceSystem),
		Name:           coalesce(raw.GoldenDataSetName, raw.Name, "Unnamed Dataset"),
		Description:    coalesce(raw.DataDescription, raw.Description, "No description available"),
		BusinessLine:   coalesce(raw.BusinessLineRaw, raw.BusinessLine, "Unknown"),
		BusinessEntity: coalesce(raw.BusinessEntityRaw, raw.BusinessEntity, "Unknown"),
		Location:       coalesce(raw.LocationRaw, raw.Location, "Unknown"),
		Domain:         coalesce(raw.DataDomain, raw.DataDomainRaw, "General"),
		SubDomain:      coalesce(raw.DataSubDomainRaw, raw.DataSubDomain, "General"),
		Maturity:       MaturityLevel(coalesce(raw.MaturityRaw, raw.Maturity)),
		Lifecycle:      LifecycleStatus(coalesce(raw.DataLifecycleRaw, raw.DataLifecycle)),
		Classification: ClassificationType(coalesce(raw.ClassificationRaw, raw.Classification)),
		LegalGround:    coalesce(raw.LegalGroundRaw, raw.LegalGround, "Not specified"),
		CIARating:      coalesce(raw.CIARatingRaw, raw.CIARating, "Not rated"),
		HistoricalData: raw.Historical || parseBool(raw.HistoricalRaw),
		ElementCount:   raw.ElementCount,
		CreatedAt:      parseTime(raw.CreatedAt, now),
		UpdatedAt:      parseTime(raw.UpdatedAt, now),
		Tags:           raw.Tags,
	}

	if d.ElementCount == 0 && raw.NbDataElements != "" {
		if n, err := strconv.Atoi(raw.NbDataElements); err == nil {
			d.ElementCount = n
		}
	}

	d.Owner = model.DataOwner{
		ID:   coalesce(raw.DataOwnerID, "unknown"),
		Name: coalesce(raw.DataOwnerName, "Unknown Owner"),
	}
	if raw.DataOwner != nil {
		d.Owner.ID = coalesce(raw.DataOwnerID, raw.DataOwner.ID, "unknown")
		d.Owner.Name = coalesce(raw.DataOwnerName, raw.DataOwner.Name, "Unknown Owner")
		d.Owner.Email = raw.DataOwner.Email
		d.Owner.Department = raw.DataOwner.Department
	}

	d.Steward = model.DataSteward{
		ID:   coalesce(raw.DataStewardID, "unknown"),
		Name: coalesce(raw.DataStewardName, "Unknown Steward"),
	}
	if raw.DataSteward != nil {
		d.Steward.ID = coalesce(raw.DataStewardID, raw.DataSteward.ID, "unknown")
		d.Steward.Name = coalesce(raw.DataStewardName, raw.DataSteward.Name, "Unknown Steward")
		d.Steward.Email = raw.DataSteward.Email
		d.Steward.Department = raw.DataSteward.Department
	}

	d.Metrics = metrics(raw)
	d.Preview = preview(raw.Preview)
	d.RelatedDatasets = related(raw.RelatedDatasets)
	d.Ratings = ratings(raw.Ratings)

	return d
}

// Preview normalizes a raw preview block. Returns nil for a nil input.
func Preview(raw *RawPreview) *model.DatasetPreview {
	return preview(raw)
}

// Ratings normalizes raw rating records.
func Ratings(raw []RawRating) []model.DatasetRating {
	return ratings(raw)
}

// Rating normalizes a single raw rating record.
func Rating(raw RawRating) model.DatasetRating {
	return model.DatasetRating{
		ID:        raw.ID,
		UserID:    raw.UserID,
		UserName:  raw.UserName,
		Rating:    raw.Rating,
		Comment:   raw.Comment,
		CreatedAt: raw.CreatedAt,
	}
}

// Datasets normalizes a slice of raw records.
func Datasets(raw []RawDataset) []model.Dataset {
	out := make([]model.Dataset, len(raw))
	for i, r := range raw {
		out[i] = Dataset(r)
	}
	return out
}

// MaturityLevel maps a raw maturity string onto the enum, defaulting to Draft.
func MaturityLevel(raw string) model.MaturityLevel {
	switch strings.ToLower(raw) {
	case "draft":
		return model.MaturityDraft
	case "prepared", "prepared for distribution":
		return model.MaturityPrepared
	case "published":
		return model.MaturityPublished
	case "deprecated":
		return model.MaturityDeprecated
	default:
		return model.MaturityDraft
	}
}

// LifecycleStatus maps a raw lifecycle string onto the enum, defaulting to Active.
func LifecycleStatus(raw string) model.LifecycleStatus {
	switch strings.ToLower(raw) {
	case "active":
		return model.LifecycleActive
	case "archived":
		return model.LifecycleArchived
	case "deprecated":
		return model.LifecycleDeprecated
	default:
		return model.LifecycleActive
	}
}

// ClassificationType maps a raw classification string onto the enum,
// defaulting to Internal.
func ClassificationType(raw string) model.ClassificationType {
	switch strings.ToLower(raw) {
	case "public":
		return model.ClassificationPublic
	case "internal":
		return model.ClassificationInternal
	case "confidential":
		return model.ClassificationConfidential
	case "sensitive", "sensitive personal data":
		return model.ClassificationSensitive
	case "restricted":
		return model.ClassificationRestricted
	default:
		return model.ClassificationInternal
	}
}

// QualityScore derives an overall quality score for records that do not
// carry one. Starts from a base of 70 and rewards metadata completeness.
func QualityScore(raw RawDataset) int {
	score := 70

	if len(coalesce(raw.DataDescription, raw.Description)) > 50 {
		score += 10
	}
	if owner := coalesce(raw.DataOwnerName, ownerName(raw.DataOwner)); owner != "" && owner != "Unknown" {
		score += 5
	}
	if steward := coalesce(raw.DataStewardName, ownerName(raw.DataSteward)); steward != "" && steward != "Unknown" {
		score += 5
	}
	if len(raw.Tags) > 0 {
		score += 5
	}
	if raw.ElementCount > 0 {
		score += 5
	} else if n, err := strconv.Atoi(raw.NbDataElements); err == nil && n > 0 {
		score += 5
	}

	return clamp(score)
}

func metrics(raw RawDataset) model.DatasetMetrics {
	m := model.DatasetMetrics{
		QualityScore: QualityScore(raw),
		Completeness: defaultCompleteness,
		Accuracy:     defaultAccuracy,
		Timeliness:   defaultTimeliness,
	}

	if raw.Metrics == nil {
		return m
	}

	if raw.Metrics.QualityScore != nil {
		m.QualityScore = clamp(*raw.Metrics.QualityScore)
	}
	if raw.Metrics.Completeness != nil {
		m.Completeness = clamp(*raw.Metrics.Completeness)
	}
	if raw.Metrics.Accuracy != nil {
		m.Accuracy = clamp(*raw.Metrics.Accuracy)
	}
	if raw.Metrics.Timeliness != nil {
		m.Timeliness = clamp(*raw.Metrics.Timeliness)
	}
	if raw.Metrics.UsageCount != nil && *raw.Metrics.UsageCount > 0 {
		m.UsageCount = *raw.Metrics.UsageCount
	}
	if raw.Metrics.AverageRating != nil {
		rating := *raw.Metrics.AverageRating
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		m.AverageRating = rating
	}

	return m
}

func preview(raw *RawPreview) *model.DatasetPreview {
	if raw == nil {
		return nil
	}

	columns := make([]model.PreviewColumn, len(raw.Columns))
	for i, col := range raw.Columns {
		columns[i] = model.PreviewColumn{
			Name:         col.Name,
			BusinessName: col.BusinessName,
			Description:  col.Description,
			DataType:     col.DataType,
			SampleValues: col.SampleValues,
		}
	}

	return &model.DatasetPreview{
		Columns:    columns,
		SampleData: raw.SampleData,
		RowCount:   raw.RowCount,
	}
}

func related(raw []RawRelated) []model.RelatedDataset {
	if len(raw) == 0 {
		return nil
	}

	out := make([]model.RelatedDataset, len(raw))
	for i, r := range raw {
		out[i] = model.RelatedDataset{
			ID:               r.ID,
			Name:             r.Name,
			Description:      r.Description,
			RelationshipType: model.RelationshipType(r.RelationshipType),
			SimilarityScore:  r.SimilarityScore,
		}
	}
	return out
}

func ratings(raw []RawRating) []model.DatasetRating {
	if len(raw) == 0 {
		return nil
	}

	out := make([]model.DatasetRating, len(raw))
	for i, r := range raw {
		out[i] = model.DatasetRating{
			ID:        r.ID,
			UserID:    r.UserID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
	}
	return out
}

func ownerName(o *RawOwner) string {
	if o == nil {
		return ""
	}
	return o.Name
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

func parseTime(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return fallback
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
