// Package api provides regeneration endpoint methods
package api

// regenerationCountsRequest is the body of /get_regeneration_counts.
type regenerationCountsRequest struct {
	ClientSettings  ClientSettings  `json:"client_settings"`
	DatasetSettings DatasetSettings `json:"dataset_settings"`
	SearchQuery     string          `json:"search_query,omitempty"`
}

// GetRegenerationCounts reports how many tables and columns in the dataset
// are currently marked for regeneration.
func (c *Client) GetRegenerationCounts(
	clientSettings ClientSettings,
	datasetSettings DatasetSettings,
	searchQuery string,
) (*RegenerationCounts, error) {
	req := regenerationCountsRequest{
		ClientSettings:  clientSettings,
		DatasetSettings: datasetSettings,
		SearchQuery:     searchQuery,
	}

	var counts RegenerationCounts
	if err := c.post("/get_regeneration_counts", &req, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// regenerateAllRequest is the body of /regenerate_all.
type regenerateAllRequest struct {
	ClientOptionsSettings ClientOptionsSettings `json:"client_options_settings"`
	ClientSettings        ClientSettings        `json:"client_settings"`
	DatasetSettings       DatasetSettings       `json:"dataset_settings"`
}

// RegenerateAll re-runs generation for every marked object in the dataset.
// The job is asynchronous server-side; the response only acknowledges the
// dispatch.
func (c *Client) RegenerateAll(
	clientOptions ClientOptionsSettings,
	clientSettings ClientSettings,
	datasetSettings DatasetSettings,
) (*MessageResponse, error) {
	req := regenerateAllRequest{
		ClientOptionsSettings: clientOptions,
		ClientSettings:        clientSettings,
		DatasetSettings:       datasetSettings,
	}

	var msg MessageResponse
	if err := c.post("/regenerate_all", &req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// regenerateSelectedRequest is the body of /regenerate_selected.
type regenerateSelectedRequest struct {
	ClientOptionsSettings ClientOptionsSettings `json:"client_options_settings"`
	ClientSettings        ClientSettings        `json:"client_settings"`
	DatasetSettings       DatasetSettings       `json:"dataset_settings"`
	RegenerationRequest   struct {
		Objects []string `json:"objects"`
	} `json:"regeneration_request"`
}

// RegenerateSelected re-runs generation for objects matching the given
// name patterns.
func (c *Client) RegenerateSelected(
	clientOptions ClientOptionsSettings,
	clientSettings ClientSettings,
	datasetSettings DatasetSettings,
	objects []string,
) (*RegenerateSelectedResponse, error) {
	req := regenerateSelectedRequest{
		ClientOptionsSettings: clientOptions,
		ClientSettings:        clientSettings,
		DatasetSettings:       datasetSettings,
	}
	req.RegenerationRequest.Objects = objects

	var result RegenerateSelectedResponse
	if err := c.post("/regenerate_selected", &req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// markForRegenerationRequest is the body of /mark_for_regeneration.
type markForRegenerationRequest struct {
	ClientSettings ClientSettings `json:"client_settings"`
	Request        struct {
		TableFQN   string  `json:"table_fqn"`
		ColumnName *string `json:"column_name,omitempty"`
	} `json:"request"`
}

// MarkForRegeneration flags a table, or a single column when columnName is
// non-empty, for the next regeneration run.
func (c *Client) MarkForRegeneration(
	clientSettings ClientSettings,
	tableFQN, columnName string,
) (*MessageResponse, error) {
	req := markForRegenerationRequest{ClientSettings: clientSettings}
	req.Request.TableFQN = tableFQN
	if columnName != "" {
		req.Request.ColumnName = &columnName
	}

	var msg MessageResponse
	if err := c.post("/mark_for_regeneration", &req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
