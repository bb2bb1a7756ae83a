// Package api provides review endpoint methods
package api

import (
	"fmt"
	"net/url"
)

// reviewListRequest is the body of /metadata/review.
type reviewListRequest struct {
	ClientSettings  ClientSettings  `json:"client_settings"`
	DatasetSettings DatasetSettings `json:"dataset_settings"`
}

// GetReviewItems lists reviewable tables and columns for the configured
// project, optionally narrowed to one dataset.
func (c *Client) GetReviewItems(
	clientSettings ClientSettings,
	datasetSettings DatasetSettings,
) (*ReviewList, error) {
	req := reviewListRequest{
		ClientSettings:  clientSettings,
		DatasetSettings: datasetSettings,
	}

	var list ReviewList
	if err := c.post("/metadata/review", &req, &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []ReviewItem{}
	}
	return &list, nil
}

// reviewDetailsRequest is the body of /metadata/review/details.
type reviewDetailsRequest struct {
	ClientSettings ClientSettings `json:"client_settings"`
	TableSettings  TableSettings  `json:"table_settings"`
	ColumnName     *string        `json:"column_name,omitempty"`
}

// GetReviewItemDetails fetches details for a table, or for one of its
// columns when columnName is non-empty. Table responses include every
// column that carries generated metadata.
func (c *Client) GetReviewItemDetails(
	clientSettings ClientSettings,
	tableSettings TableSettings,
	columnName string,
) (*ReviewItem, error) {
	req := reviewDetailsRequest{
		ClientSettings: clientSettings,
		TableSettings:  tableSettings,
	}
	if columnName != "" {
		req.ColumnName = &columnName
	}

	var item ReviewItem
	if err := c.post("/metadata/review/details", &req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// acceptDraftRequest is the shared body of the accept endpoints.
type acceptDraftRequest struct {
	ClientOptionsSettings ClientOptionsSettings `json:"client_options_settings"`
	ClientSettings        ClientSettings        `json:"client_settings"`
	TableSettings         TableSettings         `json:"table_settings"`
	DatasetSettings       DatasetSettings       `json:"dataset_settings"`
	ColumnSettings        *ColumnSettings       `json:"column_settings,omitempty"`
}

// AcceptTableDraftDescription promotes a table's draft description to its
// current description and stamps the acceptance metadata.
func (c *Client) AcceptTableDraftDescription(
	clientOptions ClientOptionsSettings,
	clientSettings ClientSettings,
	tableSettings TableSettings,
	datasetSettings DatasetSettings,
) (*MessageResponse, error) {
	req := acceptDraftRequest{
		ClientOptionsSettings: clientOptions,
		ClientSettings:        clientSettings,
		TableSettings:         tableSettings,
		DatasetSettings:       datasetSettings,
	}

	var msg MessageResponse
	if err := c.post("/accept_table_draft_description", &req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AcceptColumnDraftDescription promotes a column's draft description.
func (c *Client) AcceptColumnDraftDescription(
	clientOptions ClientOptionsSettings,
	clientSettings ClientSettings,
	tableSettings TableSettings,
	datasetSettings DatasetSettings,
	columnName string,
) (*MessageResponse, error) {
	req := acceptDraftRequest{
		ClientOptionsSettings: clientOptions,
		ClientSettings:        clientSettings,
		TableSettings:         tableSettings,
		DatasetSettings:       datasetSettings,
		ColumnSettings:        &ColumnSettings{ColumnName: columnName},
	}

	var msg MessageResponse
	if err := c.post("/accept_column_draft_description", &req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// updateDraftRequest is the body of the draft update endpoints.
type updateDraftRequest struct {
	ClientSettings ClientSettings  `json:"client_settings"`
	TableSettings  TableSettings   `json:"table_settings"`
	ColumnSettings *ColumnSettings `json:"column_settings,omitempty"`
	Description    string          `json:"description"`
	IsHTML         bool            `json:"is_html"`
}

// UpdateTableDraftDescription replaces a table's draft description text.
func (c *Client) UpdateTableDraftDescription(
	clientSettings ClientSettings,
	tableSettings TableSettings,
	description string,
	isHTML bool,
) (*StatusResponse, error) {
	req := updateDraftRequest{
		ClientSettings: clientSettings,
		TableSettings:  tableSettings,
		Description:    description,
		IsHTML:         isHTML,
	}

	var status StatusResponse
	if err := c.post("/update_table_draft_description", &req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateColumnDraftDescription replaces a column's draft description text.
func (c *Client) UpdateColumnDraftDescription(
	clientSettings ClientSettings,
	tableSettings TableSettings,
	columnName, description string,
	isHTML bool,
) (*StatusResponse, error) {
	req := updateDraftRequest{
		ClientSettings: clientSettings,
		TableSettings:  tableSettings,
		ColumnSettings: &ColumnSettings{ColumnName: columnName},
		Description:    description,
		IsHTML:         isHTML,
	}

	var status StatusResponse
	if err := c.post("/update_column_draft_description", &req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// addCommentRequest is the body of /metadata/review/add_comment.
type addCommentRequest struct {
	ClientSettings ClientSettings `json:"client_settings"`
	TableSettings  TableSettings  `json:"table_settings"`
	Comment        string         `json:"comment"`
	ColumnName     *string        `json:"column_name,omitempty"`
}

// AddComment attaches a reviewer comment to a table's, or column's, draft
// description. The response echoes the stored comment.
func (c *Client) AddComment(
	clientSettings ClientSettings,
	tableSettings TableSettings,
	comment, columnName string,
) (string, error) {
	req := addCommentRequest{
		ClientSettings: clientSettings,
		TableSettings:  tableSettings,
		Comment:        comment,
	}
	if columnName != "" {
		req.ColumnName = &columnName
	}

	var result struct {
		Comment string `json:"comment"`
	}
	if err := c.post("/metadata/review/add_comment", &req, &result); err != nil {
		return "", err
	}
	return result.Comment, nil
}

// rejectRequest is the body of the per-item reject endpoint.
type rejectRequest struct {
	ClientSettings ClientSettings `json:"client_settings"`
}

// RejectReviewItem rejects a review item's draft by its composite id.
func (c *Client) RejectReviewItem(clientSettings ClientSettings, id string) error {
	req := rejectRequest{ClientSettings: clientSettings}

	var result struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	// Item ids contain '#', which url.Parse would read as a fragment.
	path := fmt.Sprintf("/metadata/review/%s/reject", url.PathEscape(id))
	return c.post(path, &req, &result)
}
