// Package output provides formatted terminal output for mwiz entities.
// This centralizes all printing and formatting logic away from command modules.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/dashboard"
	"github.com/mwizard/mwiz-cli/internal/history"
	"github.com/mwizard/mwiz-cli/internal/tasks"
)

// Format represents different output formats
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Printer handles formatted output to the terminal
type Printer struct {
	writer io.Writer
	format Format
	quiet  bool
}

// NewPrinter creates a new printer with the specified format
func NewPrinter(format Format, quiet bool) *Printer {
	return &Printer{
		writer: os.Stdout,
		format: format,
		quiet:  quiet,
	}
}

// NewPrinterWithWriter creates a new printer with a custom writer
func NewPrinterWithWriter(writer io.Writer, format Format, quiet bool) *Printer {
	return &Printer{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Success prints a success message
func (p *Printer) Success(message string) {
	if !p.quiet {
		fmt.Fprintf(p.writer, "✓ %s\n", message)
	}
}

// Error prints an error message
func (p *Printer) Error(message string) {
	fmt.Fprintf(p.writer, "✗ %s\n", message)
}

// Warning prints a warning message
func (p *Printer) Warning(message string) {
	if !p.quiet {
		fmt.Fprintf(p.writer, "⚠ %s\n", message)
	}
}

// Info prints an informational message
func (p *Printer) Info(message string) {
	if !p.quiet {
		fmt.Fprintf(p.writer, "ℹ %s\n", message)
	}
}

// PrintConfig prints the effective configuration
func (p *Printer) PrintConfig(cfg *config.Config) error {
	switch p.format {
	case FormatTable:
		return p.printConfigTable(cfg)
	case FormatJSON:
		return p.printJSON(cfg)
	case FormatYAML:
		return p.printYAML(cfg)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintTasks prints the in-memory task log
func (p *Printer) PrintTasks(list []tasks.Task) error {
	switch p.format {
	case FormatTable:
		return p.printTasksTable(list)
	case FormatJSON:
		return p.printJSON(list)
	case FormatYAML:
		return p.printYAML(list)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintHistory prints persisted task records
func (p *Printer) PrintHistory(records []history.TaskRecord) error {
	switch p.format {
	case FormatTable:
		return p.printHistoryTable(records)
	case FormatJSON:
		return p.printJSON(records)
	case FormatYAML:
		return p.printYAML(records)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintReviewList prints the reviewable items
func (p *Printer) PrintReviewList(items []api.ReviewItem) error {
	switch p.format {
	case FormatTable:
		return p.printReviewListTable(items)
	case FormatJSON:
		return p.printJSON(items)
	case FormatYAML:
		return p.printYAML(items)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintReviewItem prints one review item with its descriptions
func (p *Printer) PrintReviewItem(item *api.ReviewItem) error {
	switch p.format {
	case FormatTable:
		return p.printReviewItemTable(item)
	case FormatJSON:
		return p.printJSON(item)
	case FormatYAML:
		return p.printYAML(item)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintCounts prints the regeneration counts
func (p *Printer) PrintCounts(counts *api.RegenerationCounts) error {
	switch p.format {
	case FormatTable:
		fmt.Fprintf(p.writer, "Tables marked for regeneration: %d\n", counts.Tables)
		fmt.Fprintf(p.writer, "Columns marked for regeneration: %d\n", counts.Columns)
		return nil
	case FormatJSON:
		return p.printJSON(counts)
	case FormatYAML:
		return p.printYAML(counts)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintContracts prints the data contract dashboard rows
func (p *Printer) PrintContracts(contracts []dashboard.Contract) error {
	switch p.format {
	case FormatTable:
		return p.printContractsTable(contracts)
	case FormatJSON:
		return p.printJSON(contracts)
	case FormatYAML:
		return p.printYAML(contracts)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintPolicies prints the compliance dashboard rows
func (p *Printer) PrintPolicies(policies []dashboard.Policy) error {
	switch p.format {
	case FormatTable:
		return p.printPoliciesTable(policies)
	case FormatJSON:
		return p.printJSON(policies)
	case FormatYAML:
		return p.printYAML(policies)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// PrintDestinations prints the publishing dashboard rows
func (p *Printer) PrintDestinations(destinations []dashboard.Destination) error {
	switch p.format {
	case FormatTable:
		return p.printDestinationsTable(destinations)
	case FormatJSON:
		return p.printJSON(destinations)
	case FormatYAML:
		return p.printYAML(destinations)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printConfigTable prints the configuration as sorted key/value rows
func (p *Printer) printConfigTable(cfg *config.Config) error {
	values := map[string]string{
		"api_url":           cfg.APIURL,
		"project_id":        cfg.ProjectID,
		"llm_location":      cfg.LLMLocation,
		"dataplex_location": cfg.DataplexLocation,
		"dataset_id":        cfg.DatasetID,
		"table_id":          cfg.TableID,
		"strategy":          cfg.Strategy,
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SETTING\tVALUE\n")
	fmt.Fprintf(w, "-------\t-----\n")
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%s\n", key, values[key])
	}

	opts := cfg.Options
	fmt.Fprintf(w, "use_lineage_tables\t%t\n", opts.UseLineageTables)
	fmt.Fprintf(w, "use_lineage_processes\t%t\n", opts.UseLineageProcesses)
	fmt.Fprintf(w, "use_profile\t%t\n", opts.UseProfile)
	fmt.Fprintf(w, "use_data_quality\t%t\n", opts.UseDataQuality)
	fmt.Fprintf(w, "use_ext_documents\t%t\n", opts.UseExtDocuments)
	fmt.Fprintf(w, "persist_to_dataplex_catalog\t%t\n", opts.PersistToDataplexCatalog)
	fmt.Fprintf(w, "stage_for_review\t%t\n", opts.StageForReview)
	fmt.Fprintf(w, "top_values_in_description\t%t\n", opts.TopValuesInDescription)
	fmt.Fprintf(w, "description_handling\t%s\n", opts.DescriptionHandling)
	fmt.Fprintf(w, "description_prefix\t%s\n", opts.DescriptionPrefix)

	return w.Flush()
}

// printTasksTable prints tasks newest first, as the tracker returns them
func (p *Printer) printTasksTable(list []tasks.Task) error {
	if len(list) == 0 {
		fmt.Fprintf(p.writer, "No tasks dispatched\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TIME\tTYPE\tACTION\tSTATUS\tDETAILS\n")
	fmt.Fprintf(w, "----\t----\t------\t------\t-------\n")

	for _, task := range list {
		details := task.Details
		if task.Status == tasks.StatusFailed {
			details = task.Error
		}
		if len(details) > 60 {
			details = details[:57] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			task.Timestamp.Format("15:04:05"),
			task.Type,
			task.Action,
			task.Status,
			details,
		)
	}

	return w.Flush()
}

// printHistoryTable prints persisted records newest first
func (p *Printer) printHistoryTable(records []history.TaskRecord) error {
	if len(records) == 0 {
		fmt.Fprintf(p.writer, "No task history\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FINISHED\tTYPE\tACTION\tSTATUS\tDETAILS\n")
	fmt.Fprintf(w, "--------\t----\t------\t------\t-------\n")

	for _, record := range records {
		details := record.Details
		if record.Error != "" {
			details = record.Error
		}
		if len(details) > 60 {
			details = details[:57] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			record.FinishedAt.Format("2006-01-02 15:04:05"),
			record.Type,
			record.Action,
			record.Status,
			details,
		)
	}

	return w.Flush()
}

// printReviewListTable prints the item list in table format
func (p *Printer) printReviewListTable(items []api.ReviewItem) error {
	if len(items) == 0 {
		fmt.Fprintf(p.writer, "No items found for review\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TYPE\tNAME\tSTATUS\tREGEN\n")
	fmt.Fprintf(w, "----\t----\t------\t-----\n")

	for _, item := range items {
		regen := ""
		if item.MarkedForRegeneration {
			regen = "marked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Type, item.Name, item.Status, regen)
	}

	return w.Flush()
}

// printReviewItemTable prints one item with both description variants
func (p *Printer) printReviewItemTable(item *api.ReviewItem) error {
	fmt.Fprintf(p.writer, "Item: %s\n", item.Name)
	fmt.Fprintf(p.writer, "Type: %s\n", item.Type)
	fmt.Fprintf(p.writer, "Status: %s\n", item.Status)
	if item.MarkedForRegeneration {
		fmt.Fprintf(p.writer, "Marked for regeneration: yes\n")
	}
	if item.Metadata != nil && item.Metadata.GenerationDate != "" {
		fmt.Fprintf(p.writer, "Generated: %s\n", item.Metadata.GenerationDate)
	}
	if item.Metadata != nil && item.Metadata.WhenAccepted != nil {
		fmt.Fprintf(p.writer, "Accepted: %s\n", *item.Metadata.WhenAccepted)
	}

	fmt.Fprintf(p.writer, "\nCurrent description:\n")
	if item.CurrentDescription == "" {
		fmt.Fprintf(p.writer, "  (none)\n")
	} else {
		fmt.Fprintf(p.writer, "  %s\n", item.CurrentDescription)
	}

	fmt.Fprintf(p.writer, "\nDraft description:\n")
	if item.DraftDescription == "" {
		fmt.Fprintf(p.writer, "  (none)\n")
	} else {
		fmt.Fprintf(p.writer, "  %s\n", item.DraftDescription)
	}

	if len(item.Comments) > 0 {
		fmt.Fprintf(p.writer, "\nComments:\n")
		for _, comment := range item.Comments {
			fmt.Fprintf(p.writer, "  - %s\n", comment)
		}
	}

	if len(item.Columns) > 0 {
		fmt.Fprintf(p.writer, "\nColumns with generated metadata: %d\n", len(item.Columns))
	}

	return nil
}

// printContractsTable prints the SLA dashboard in table format
func (p *Printer) printContractsTable(contracts []dashboard.Contract) error {
	if len(contracts) == 0 {
		fmt.Fprintf(p.writer, "No data contracts\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tDATASET\tSLA\tFRESHNESS\tSTATUS\tVIOLATIONS\n")
	fmt.Fprintf(w, "--\t----\t-------\t---\t---------\t------\t----------\n")

	for _, c := range contracts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.Name, c.Dataset, c.SLA, c.Freshness, c.Status, c.Violations)
	}

	return w.Flush()
}

// printPoliciesTable prints the compliance dashboard in table format
func (p *Printer) printPoliciesTable(policies []dashboard.Policy) error {
	if len(policies) == 0 {
		fmt.Fprintf(p.writer, "No policies\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tKIND\tSCOPE\tRULE\tSTATUS\n")
	fmt.Fprintf(w, "--\t----\t----\t-----\t----\t------\n")

	for _, pol := range policies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			pol.ID, pol.Name, pol.Kind, pol.Scope, pol.Rule, pol.Status)
	}

	return w.Flush()
}

// printDestinationsTable prints the publishing dashboard in table format
func (p *Printer) printDestinationsTable(destinations []dashboard.Destination) error {
	if len(destinations) == 0 {
		fmt.Fprintf(p.writer, "No publishing destinations\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tKIND\tTARGET\tSCHEDULE\tLAST PUBLISHED\tSTATUS\n")
	fmt.Fprintf(w, "--\t----\t----\t------\t--------\t--------------\t------\n")

	for _, d := range destinations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, d.Kind, d.Target, d.Schedule, d.LastPublished, d.Status)
	}

	return w.Flush()
}

// printJSON prints any object as JSON
func (p *Printer) printJSON(obj interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(obj)
}

// printYAML prints any object as YAML
func (p *Printer) printYAML(obj interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	defer encoder.Close()
	return encoder.Encode(obj)
}
