// Package api contains models for metadata wizard API communication
package api

// ClientSettings identifies the backend project and locations.
type ClientSettings struct {
	ProjectID        string `json:"project_id"`
	LLMLocation      string `json:"llm_location"`
	DataplexLocation string `json:"dataplex_location"`
}

// ClientOptionsSettings carries the generation-behavior toggles.
type ClientOptionsSettings struct {
	UseLineageTables         bool   `json:"use_lineage_tables"`
	UseLineageProcesses      bool   `json:"use_lineage_processes"`
	UseProfile               bool   `json:"use_profile"`
	UseDataQuality           bool   `json:"use_data_quality"`
	UseExtDocuments          bool   `json:"use_ext_documents"`
	PersistToDataplexCatalog bool   `json:"persist_to_dataplex_catalog"`
	StageForReview           bool   `json:"stage_for_review"`
	TopValuesInDescription   bool   `json:"top_values_in_description"`
	DescriptionHandling      string `json:"description_handling"`
	DescriptionPrefix        string `json:"description_prefix"`
}

// TableSettings identifies a table.
type TableSettings struct {
	ProjectID        string `json:"project_id"`
	DatasetID        string `json:"dataset_id"`
	TableID          string `json:"table_id"`
	DocumentationURI string `json:"documentation_uri"`
}

// DatasetSettings identifies a dataset and the dataset-scope strategy.
type DatasetSettings struct {
	ProjectID           string `json:"project_id"`
	DatasetID           string `json:"dataset_id"`
	DocumentationCSVURI string `json:"documentation_csv_uri"`
	Strategy            string `json:"strategy"`
}

// ColumnSettings identifies a column within a table.
type ColumnSettings struct {
	ColumnName string `json:"column_name"`
}

// ItemMetadata is the review aspect metadata attached to a table or column.
// The backend mixes snake_case and kebab-case keys; the tags mirror it.
type ItemMetadata struct {
	Certified           bool    `json:"certified"`
	UserWhoCertified    string  `json:"user_who_certified"`
	GenerationDate      string  `json:"generation_date"`
	ToBeRegenerated     bool    `json:"to_be_regenerated"`
	ExternalDocumentURI string  `json:"external_document_uri"`
	IsAccepted          bool    `json:"is-accepted"`
	WhenAccepted        *string `json:"when-accepted"`
}

// Item statuses as reported by the backend or derived client-side.
const (
	StatusCurrent  = "current"
	StatusDraft    = "draft"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ReviewItem represents a table or column under review. A table's details
// response carries all of its columns that have generated metadata.
type ReviewItem struct {
	ID                    string   `json:"id"`
	Type                  string   `json:"type"`
	Name                  string   `json:"name"`
	CurrentDescription    string   `json:"currentDescription"`
	DraftDescription      string   `json:"draftDescription"`
	IsHTML                bool     `json:"isHtml"`
	Status                string   `json:"status"`
	LastModified          string   `json:"lastModified"`
	Comments              []string `json:"comments"`
	MarkedForRegeneration bool     `json:"markedForRegeneration"`
	// TableMarkedForRegeneration mirrors the parent table's flag on cached
	// column entries.
	TableMarkedForRegeneration bool              `json:"tableMarkedForRegeneration,omitempty"`
	Metadata                   *ItemMetadata     `json:"metadata,omitempty"`
	Tags                       map[string]string `json:"tags,omitempty"`
	Columns                    []ReviewItem      `json:"columns,omitempty"`
}

// IsTable reports whether the item is a table item.
func (i *ReviewItem) IsTable() bool {
	return i.Type == "table"
}

// Accepted reports acceptance as derived from the aspect metadata.
func (i *ReviewItem) Accepted() bool {
	if i.Status == StatusAccepted {
		return true
	}
	return i.Metadata != nil && i.Metadata.IsAccepted
}

// ReviewList is the paged review item listing.
type ReviewList struct {
	Items         []ReviewItem `json:"items"`
	NextPageToken *string      `json:"nextPageToken"`
	TotalCount    int          `json:"totalCount"`
}

// RegenerationCounts reports how many objects are marked for regeneration.
type RegenerationCounts struct {
	Tables  int `json:"tables"`
	Columns int `json:"columns"`
}

// MessageResponse is the generic {"message": ...} success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the {"status": ..., "message": ...} envelope used by
// the draft update endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// VersionResponse is the backend version report.
type VersionResponse struct {
	Version string `json:"version"`
}

// RegeneratedObject is one entry of a selective regeneration result.
type RegeneratedObject struct {
	Object string `json:"object"`
	Status string `json:"status"`
}

// RegenerateSelectedResponse lists the objects a selective regeneration
// touched.
type RegenerateSelectedResponse struct {
	RegeneratedObjects []RegeneratedObject `json:"regenerated_objects"`
}
