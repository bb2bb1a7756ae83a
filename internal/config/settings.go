package config

import "github.com/mwizard/mwiz-cli/internal/api"

// ClientSettings builds the backend client_settings section.
func (c *Config) ClientSettings() api.ClientSettings {
	return api.ClientSettings{
		ProjectID:        c.ProjectID,
		LLMLocation:      c.LLMLocation,
		DataplexLocation: c.DataplexLocation,
	}
}

// ClientOptions builds the backend client_options_settings section.
func (c *Config) ClientOptions() api.ClientOptionsSettings {
	return api.ClientOptionsSettings{
		UseLineageTables:         c.Options.UseLineageTables,
		UseLineageProcesses:      c.Options.UseLineageProcesses,
		UseProfile:               c.Options.UseProfile,
		UseDataQuality:           c.Options.UseDataQuality,
		UseExtDocuments:          c.Options.UseExtDocuments,
		PersistToDataplexCatalog: c.Options.PersistToDataplexCatalog,
		StageForReview:           c.Options.StageForReview,
		TopValuesInDescription:   c.Options.TopValuesInDescription,
		DescriptionHandling:      c.Options.DescriptionHandling,
		DescriptionPrefix:        c.Options.DescriptionPrefix,
	}
}

// TableSettings builds the backend table_settings section from the
// configured default scope.
func (c *Config) TableSettings() api.TableSettings {
	return api.TableSettings{
		ProjectID:        c.ProjectID,
		DatasetID:        c.DatasetID,
		TableID:          c.TableID,
		DocumentationURI: c.DocumentationURI,
	}
}

// TableSettingsFor builds table_settings for an explicit table.
func (c *Config) TableSettingsFor(projectID, datasetID, tableID string) api.TableSettings {
	return api.TableSettings{
		ProjectID:        projectID,
		DatasetID:        datasetID,
		TableID:          tableID,
		DocumentationURI: c.DocumentationURI,
	}
}

// DatasetSettings builds the backend dataset_settings section.
func (c *Config) DatasetSettings() api.DatasetSettings {
	return api.DatasetSettings{
		ProjectID:           c.ProjectID,
		DatasetID:           c.DatasetID,
		DocumentationCSVURI: c.DocumentationCSVURI,
		Strategy:            c.Strategy,
	}
}

// GenerationRequest assembles the full generation request body.
func (c *Config) GenerationRequest() *api.GenerationRequest {
	return &api.GenerationRequest{
		ClientOptionsSettings: c.ClientOptions(),
		ClientSettings:        c.ClientSettings(),
		TableSettings:         c.TableSettings(),
		DatasetSettings:       c.DatasetSettings(),
	}
}
