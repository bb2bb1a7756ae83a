// Package generate dispatches generation and regeneration calls against
// the backend and records each call as a tracked task.
package generate

import (
	"fmt"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/tasks"
	"github.com/mwizard/mwiz-cli/internal/util"
)

// Actions dispatched by the generation page. The names match the backend
// endpoint routes.
const (
	ActionGenerateTable          = "generate_table_description"
	ActionGenerateColumns        = "generate_columns_descriptions"
	ActionGenerateDataset        = "generate_dataset_tables_descriptions"
	ActionGenerateDatasetColumns = "generate_dataset_tables_columns_descriptions"
	ActionRegenerateAll          = "regenerate_all"
	ActionRegenerateSelected     = "regenerate_selected"
)

// Dispatcher builds request payloads from the current configuration and
// issues one backend call per invocation. No retry, no backoff.
type Dispatcher struct {
	client  *api.Client
	cfg     *config.Config
	tracker *tasks.Tracker
}

// NewDispatcher creates a dispatcher over the given client and tracker.
func NewDispatcher(client *api.Client, cfg *config.Config, tracker *tasks.Tracker) *Dispatcher {
	return &Dispatcher{client: client, cfg: cfg, tracker: tracker}
}

// Tracker exposes the task log backing this dispatcher.
func (d *Dispatcher) Tracker() *tasks.Tracker {
	return d.tracker
}

// GenerateTableDescription generates a draft description for the
// configured table.
func (d *Dispatcher) GenerateTableDescription() (*api.MessageResponse, error) {
	if err := d.cfg.RequireTable(); err != nil {
		return nil, err
	}
	fqn := util.TableFQN(d.cfg.ProjectID, d.cfg.DatasetID, d.cfg.TableID)
	return d.run(ActionGenerateTable, fqn, func() (*api.MessageResponse, error) {
		return d.client.GenerateTableDescription(d.cfg.GenerationRequest())
	})
}

// GenerateColumnsDescriptions generates draft descriptions for all columns
// of the configured table.
func (d *Dispatcher) GenerateColumnsDescriptions() (*api.MessageResponse, error) {
	if err := d.cfg.RequireTable(); err != nil {
		return nil, err
	}
	fqn := util.TableFQN(d.cfg.ProjectID, d.cfg.DatasetID, d.cfg.TableID)
	return d.run(ActionGenerateColumns, fqn, func() (*api.MessageResponse, error) {
		return d.client.GenerateColumnsDescriptions(d.cfg.GenerationRequest())
	})
}

// GenerateDatasetTablesDescriptions generates draft descriptions for every
// table in the configured dataset.
func (d *Dispatcher) GenerateDatasetTablesDescriptions() (*api.MessageResponse, error) {
	if err := d.cfg.RequireDataset(); err != nil {
		return nil, err
	}
	fqn := util.DatasetFQN(d.cfg.ProjectID, d.cfg.DatasetID)
	return d.run(ActionGenerateDataset, fqn, func() (*api.MessageResponse, error) {
		return d.client.GenerateDatasetTablesDescriptions(d.cfg.GenerationRequest())
	})
}

// GenerateDatasetTablesColumnsDescriptions generates draft descriptions
// for every table and column in the configured dataset.
func (d *Dispatcher) GenerateDatasetTablesColumnsDescriptions() (*api.MessageResponse, error) {
	if err := d.cfg.RequireDataset(); err != nil {
		return nil, err
	}
	fqn := util.DatasetFQN(d.cfg.ProjectID, d.cfg.DatasetID)
	return d.run(ActionGenerateDatasetColumns, fqn, func() (*api.MessageResponse, error) {
		return d.client.GenerateDatasetTablesColumnsDescriptions(d.cfg.GenerationRequest())
	})
}

// RegenerateAll re-runs generation for every marked object in the
// configured dataset.
func (d *Dispatcher) RegenerateAll() (*api.MessageResponse, error) {
	if err := d.cfg.RequireDataset(); err != nil {
		return nil, err
	}
	fqn := util.DatasetFQN(d.cfg.ProjectID, d.cfg.DatasetID)
	return d.run(ActionRegenerateAll, fqn, func() (*api.MessageResponse, error) {
		return d.client.RegenerateAll(d.cfg.ClientOptions(), d.cfg.ClientSettings(), d.cfg.DatasetSettings())
	})
}

// RegenerateSelected re-runs generation for objects matching the given
// name patterns.
func (d *Dispatcher) RegenerateSelected(objects []string) (*api.RegenerateSelectedResponse, error) {
	if err := d.cfg.RequireDataset(); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("%s (%d patterns)", util.DatasetFQN(d.cfg.ProjectID, d.cfg.DatasetID), len(objects))
	id := d.tracker.Add("regeneration", ActionRegenerateSelected, details)

	result, err := d.client.RegenerateSelected(d.cfg.ClientOptions(), d.cfg.ClientSettings(), d.cfg.DatasetSettings(), objects)
	if err != nil {
		d.tracker.Fail(id, err.Error())
		return nil, err
	}
	d.tracker.Complete(id, fmt.Sprintf("regenerated %d objects", len(result.RegeneratedObjects)))
	return result, nil
}

// GetRegenerationCounts reports the dataset's regeneration backlog. Counts
// are a read, not a dispatch, so no task is logged.
func (d *Dispatcher) GetRegenerationCounts() (*api.RegenerationCounts, error) {
	if err := d.cfg.RequireDataset(); err != nil {
		return nil, err
	}
	return d.client.GetRegenerationCounts(d.cfg.ClientSettings(), d.cfg.DatasetSettings(), "")
}

// run executes one tracked backend call.
func (d *Dispatcher) run(action, details string, call func() (*api.MessageResponse, error)) (*api.MessageResponse, error) {
	id := d.tracker.Add("generation", action, details)

	msg, err := call()
	if err != nil {
		d.tracker.Fail(id, err.Error())
		return nil, err
	}
	d.tracker.Complete(id, msg.Message)
	return msg, nil
}
