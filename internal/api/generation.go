// Package api provides generation endpoint methods
package api

// GenerationRequest is the shared body of the generation endpoints. The
// backend requires all four sections even when a scope only reads some.
type GenerationRequest struct {
	ClientOptionsSettings ClientOptionsSettings `json:"client_options_settings"`
	ClientSettings        ClientSettings        `json:"client_settings"`
	TableSettings         TableSettings         `json:"table_settings"`
	DatasetSettings       DatasetSettings       `json:"dataset_settings"`
}

// GenerateTableDescription generates a draft description for one table.
func (c *Client) GenerateTableDescription(req *GenerationRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post("/generate_table_description", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GenerateColumnsDescriptions generates draft descriptions for all columns
// of one table.
func (c *Client) GenerateColumnsDescriptions(req *GenerationRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post("/generate_columns_descriptions", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GenerateDatasetTablesDescriptions generates draft descriptions for every
// table in a dataset.
func (c *Client) GenerateDatasetTablesDescriptions(req *GenerationRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post("/generate_dataset_tables_descriptions", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GenerateDatasetTablesColumnsDescriptions generates draft descriptions for
// every table and column in a dataset.
func (c *Client) GenerateDatasetTablesColumnsDescriptions(req *GenerationRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post("/generate_dataset_tables_columns_descriptions", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
