// Package review implements the review workflow: a normalized store of
// reviewable tables and columns, a details cache keyed by item id, and
// explicit selectors for the currently displayed item and column.
package review

import (
	"fmt"
	"sync"
	"time"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/util"
)

// ViewMode selects between the item list and the single-item review view.
type ViewMode int

const (
	ModeList ViewMode = iota
	ModeReview
)

// Session holds the review page state. Methods are safe to call from
// bubbletea command goroutines; the mutex is held across backend calls,
// which serializes operations the way the browser's single UI thread did.
type Session struct {
	mu     sync.Mutex
	client *api.Client
	cfg    *config.Config

	items            []api.ReviewItem
	currentItemIndex int
	viewMode         ViewMode
	hasLoadedItems   bool

	// details caches the last-fetched payload per item id. Table entries
	// carry their columns; column entries are cached individually so
	// column navigation never refetches.
	details map[string]*api.ReviewItem

	// taggedColumns are the current table's columns carrying generated
	// metadata, in schema order. currentColumnIndex of -1 means the table
	// itself is displayed.
	taggedColumns      []string
	currentColumnIndex int

	lastError string
}

// NewSession creates a review session over the given client and config.
func NewSession(client *api.Client, cfg *config.Config) *Session {
	return &Session{
		client:             client,
		cfg:                cfg,
		details:            make(map[string]*api.ReviewItem),
		currentColumnIndex: -1,
	}
}

// Items returns a snapshot of the loaded item list.
func (s *Session) Items() []api.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.ReviewItem, len(s.items))
	copy(out, s.items)
	return out
}

// HasLoaded reports whether the item list has been fetched at least once.
func (s *Session) HasLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasLoadedItems
}

// LastError returns the most recent request failure, if any. Errors
// overwrite one another; prior data stays usable.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Mode returns the active view mode.
func (s *Session) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// CurrentIndex returns the index of the current item in the list.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentItemIndex
}

// LoadItems fetches the reviewable tables and columns for the configured
// project and replaces the item list. An empty result is not an error.
func (s *Session) LoadItems() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.RequireProject(); err != nil {
		return s.fail(err)
	}

	list, err := s.client.GetReviewItems(s.cfg.ClientSettings(), s.cfg.DatasetSettings())
	if err != nil {
		return s.fail(err)
	}

	s.items = list.Items
	s.hasLoadedItems = true
	s.lastError = ""
	if s.currentItemIndex >= len(s.items) {
		s.currentItemIndex = 0
	}
	return nil
}

// EnterReview switches to the review view at the given item index,
// fetching details when the cache has none.
func (s *Session) EnterReview(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil
	}
	s.currentItemIndex = clamp(index, 0, len(s.items)-1)
	s.viewMode = ModeReview
	return s.loadCurrentLocked(false)
}

// BackToList returns to the list view, keeping the cache intact.
func (s *Session) BackToList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = ModeList
	s.currentColumnIndex = -1
}

// Current returns the list entry at the current index, or nil when the
// list is empty.
func (s *Session) Current() *api.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentListItemLocked()
}

func (s *Session) currentListItemLocked() *api.ReviewItem {
	if len(s.items) == 0 || s.currentItemIndex < 0 || s.currentItemIndex >= len(s.items) {
		return nil
	}
	item := s.items[s.currentItemIndex]
	return &item
}

// Displayed returns a copy of the item the review view is showing: the
// selected column when column navigation is active, the table otherwise.
func (s *Session) Displayed() *api.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItem(s.displayedLocked())
}

func (s *Session) displayedLocked() *api.ReviewItem {
	current := s.currentListItemLocked()
	if current == nil {
		return nil
	}
	fqn, _, err := util.ParseItemID(current.ID)
	if err != nil {
		return nil
	}
	if s.currentColumnIndex >= 0 && s.currentColumnIndex < len(s.taggedColumns) {
		return s.details[util.ColumnItemID(fqn, s.taggedColumns[s.currentColumnIndex])]
	}
	return s.details[current.ID]
}

// Details returns the item payload for id, fetching it when absent or
// forced. A column id resolves through its parent table's fetch, which
// always returns the full column set.
func (s *Session) Details(id string, force bool) (*api.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.detailsLocked(id, force)
	return cloneItem(item), err
}

func (s *Session) detailsLocked(id string, force bool) (*api.ReviewItem, error) {
	if !force {
		if cached, ok := s.details[id]; ok {
			return cached, nil
		}
	}

	fqn, column, err := util.ParseItemID(id)
	if err != nil {
		return nil, s.fail(err)
	}
	projectID, datasetID, tableID, err := util.SplitTableFQN(fqn)
	if err != nil {
		return nil, s.fail(err)
	}

	// The backend returns the full table with all metadata-carrying
	// columns; one fetch populates the table slot and every column slot.
	table, err := s.client.GetReviewItemDetails(
		s.cfg.ClientSettings(),
		s.cfg.TableSettingsFor(projectID, datasetID, tableID),
		"",
	)
	if err != nil {
		return nil, s.fail(err)
	}

	s.cacheTableLocked(table)
	s.lastError = ""

	if column != "" {
		cached, ok := s.details[id]
		if !ok {
			return nil, s.fail(fmt.Errorf("column %s not found in table %s", column, fqn))
		}
		return cached, nil
	}
	return s.details[table.ID], nil
}

// cacheTableLocked writes the table's cache slot and one slot per returned
// column, each carrying the table's regeneration flag.
func (s *Session) cacheTableLocked(table *api.ReviewItem) {
	deriveStatus(table)
	for i := range table.Columns {
		col := table.Columns[i]
		deriveStatus(&col)
		col.TableMarkedForRegeneration = table.MarkedForRegeneration
		s.details[col.ID] = &col
	}
	s.details[table.ID] = table
}

// deriveStatus folds the aspect acceptance metadata into the status field.
func deriveStatus(item *api.ReviewItem) {
	if item.Metadata != nil && item.Metadata.IsAccepted {
		item.Status = api.StatusAccepted
	}
}

// loadCurrentLocked ensures details for the current item and recomputes
// the tagged-column set.
func (s *Session) loadCurrentLocked(force bool) error {
	current := s.currentListItemLocked()
	if current == nil {
		return nil
	}

	item, err := s.detailsLocked(current.ID, force)
	if err != nil {
		return err
	}

	s.taggedColumns = taggedColumnNames(s.tableForLocked(item))
	s.currentColumnIndex = -1
	return nil
}

// tableForLocked resolves the table entry backing an item.
func (s *Session) tableForLocked(item *api.ReviewItem) *api.ReviewItem {
	if item == nil {
		return nil
	}
	if item.IsTable() {
		return item
	}
	fqn, _, err := util.ParseItemID(item.ID)
	if err != nil {
		return nil
	}
	return s.details[util.TableItemID(fqn)]
}

// taggedColumnNames lists the columns carrying non-empty generated
// metadata, in the order the backend returned them.
func taggedColumnNames(table *api.ReviewItem) []string {
	if table == nil {
		return nil
	}
	var names []string
	for _, col := range table.Columns {
		if col.DraftDescription != "" || col.Metadata != nil {
			_, name, err := util.ParseItemID(col.ID)
			if err != nil || name == "" {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// NextItem advances to the next item in the list. The index never leaves
// [0, len(items)-1]; at the end this is a no-op.
func (s *Session) NextItem() error {
	return s.moveItem(1)
}

// PrevItem moves to the previous item in the list.
func (s *Session) PrevItem() error {
	return s.moveItem(-1)
}

func (s *Session) moveItem(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil
	}
	next := clamp(s.currentItemIndex+delta, 0, len(s.items)-1)
	if next == s.currentItemIndex {
		return nil
	}
	s.currentItemIndex = next
	return s.loadCurrentLocked(false)
}

// PrefetchNext warms the cache for the item after the current one. Meant
// to run in the background; a miss or failure is silently ignored.
func (s *Session) PrefetchNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.currentItemIndex + 1
	if next >= len(s.items) {
		return
	}
	if _, ok := s.details[s.items[next].ID]; ok {
		return
	}
	_, _ = s.detailsLocked(s.items[next].ID, false)
}

// NextColumn advances to the next tagged column of the current table. At
// the last tagged column this is a no-op. Column navigation changes the
// displayed column only, never the current item index.
func (s *Session) NextColumn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentColumnIndex >= len(s.taggedColumns)-1 {
		return
	}
	s.currentColumnIndex++
}

// PrevColumn moves back one tagged column; -1 re-displays the table.
func (s *Session) PrevColumn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentColumnIndex < 0 {
		return
	}
	s.currentColumnIndex--
}

// ColumnPosition reports the displayed column index (-1 for the table
// view) and the number of tagged columns.
func (s *Session) ColumnPosition() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentColumnIndex, len(s.taggedColumns)
}

// Accept promotes the displayed item's draft description. Accepting an
// already-accepted item is a no-op. On success the draft becomes the
// current description and a best-effort refresh re-syncs the cache
// without disturbing the displayed column.
func (s *Session) Accept() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.displayedLocked()
	if item == nil {
		return s.fail(fmt.Errorf("no item displayed"))
	}
	if item.Accepted() {
		return nil
	}

	fqn, column, err := util.ParseItemID(item.ID)
	if err != nil {
		return s.fail(err)
	}
	projectID, datasetID, tableID, err := util.SplitTableFQN(fqn)
	if err != nil {
		return s.fail(err)
	}
	tableSettings := s.cfg.TableSettingsFor(projectID, datasetID, tableID)

	if column == "" {
		_, err = s.client.AcceptTableDraftDescription(
			s.cfg.ClientOptions(), s.cfg.ClientSettings(), tableSettings, s.cfg.DatasetSettings())
	} else {
		_, err = s.client.AcceptColumnDraftDescription(
			s.cfg.ClientOptions(), s.cfg.ClientSettings(), tableSettings, s.cfg.DatasetSettings(), column)
	}
	if err != nil {
		return s.fail(err)
	}

	when := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	s.applyLocked(item.ID, func(it *api.ReviewItem) {
		it.Status = api.StatusAccepted
		it.CurrentDescription = it.DraftDescription
		if it.Metadata == nil {
			it.Metadata = &api.ItemMetadata{}
		}
		it.Metadata.IsAccepted = true
		it.Metadata.WhenAccepted = &when
	})
	s.lastError = ""

	// Best-effort refresh; must not change which column is displayed.
	_ = s.refreshLocked()
	return nil
}

// SaveEdit replaces the displayed item's draft description and refreshes
// its cache entry.
func (s *Session) SaveEdit(description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.displayedLocked()
	if item == nil {
		return s.fail(fmt.Errorf("no item displayed"))
	}

	fqn, column, err := util.ParseItemID(item.ID)
	if err != nil {
		return s.fail(err)
	}
	projectID, datasetID, tableID, err := util.SplitTableFQN(fqn)
	if err != nil {
		return s.fail(err)
	}
	tableSettings := s.cfg.TableSettingsFor(projectID, datasetID, tableID)

	if column == "" {
		_, err = s.client.UpdateTableDraftDescription(s.cfg.ClientSettings(), tableSettings, description, item.IsHTML)
	} else {
		_, err = s.client.UpdateColumnDraftDescription(s.cfg.ClientSettings(), tableSettings, column, description, item.IsHTML)
	}
	if err != nil {
		return s.fail(err)
	}

	s.applyLocked(item.ID, func(it *api.ReviewItem) {
		it.DraftDescription = description
		it.Status = api.StatusDraft
	})
	s.lastError = ""

	_ = s.refreshLocked()
	return nil
}

// MarkForRegeneration flags the displayed item for the next regeneration
// run and invalidates exactly its cache slot. Sibling entries stay cached;
// the regeneration job itself is asynchronous server-side.
func (s *Session) MarkForRegeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.displayedLocked()
	if item == nil {
		return s.fail(fmt.Errorf("no item displayed"))
	}

	fqn, column, err := util.ParseItemID(item.ID)
	if err != nil {
		return s.fail(err)
	}

	if _, err := s.client.MarkForRegeneration(s.cfg.ClientSettings(), fqn, column); err != nil {
		return s.fail(err)
	}

	delete(s.details, item.ID)
	s.updateListItemLocked(item.ID, func(it *api.ReviewItem) {
		it.MarkedForRegeneration = true
	})
	s.lastError = ""
	return nil
}

// AddComment appends a reviewer comment to the displayed item, both
// server-side and in the cached and listed copies.
func (s *Session) AddComment(comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.displayedLocked()
	if item == nil {
		return s.fail(fmt.Errorf("no item displayed"))
	}

	fqn, column, err := util.ParseItemID(item.ID)
	if err != nil {
		return s.fail(err)
	}
	projectID, datasetID, tableID, err := util.SplitTableFQN(fqn)
	if err != nil {
		return s.fail(err)
	}

	stored, err := s.client.AddComment(
		s.cfg.ClientSettings(), s.cfg.TableSettingsFor(projectID, datasetID, tableID), comment, column)
	if err != nil {
		return s.fail(err)
	}
	if stored == "" {
		stored = comment
	}

	s.applyLocked(item.ID, func(it *api.ReviewItem) {
		it.Comments = append(it.Comments, stored)
	})
	s.lastError = ""
	return nil
}

// Reject rejects the displayed item's draft.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.displayedLocked()
	if item == nil {
		return s.fail(fmt.Errorf("no item displayed"))
	}

	if err := s.client.RejectReviewItem(s.cfg.ClientSettings(), item.ID); err != nil {
		return s.fail(err)
	}

	s.applyLocked(item.ID, func(it *api.ReviewItem) {
		it.Status = api.StatusRejected
	})
	s.lastError = ""
	return nil
}

// Refresh force-refetches the current table and re-applies the displayed
// column, so a refresh never navigates away from what the user is viewing.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked()
}

func (s *Session) refreshLocked() error {
	current := s.currentListItemLocked()
	if current == nil {
		return nil
	}

	// Remember the displayed column by name; indices may shift when the
	// refreshed table returns a different column set.
	var displayedColumn string
	if s.currentColumnIndex >= 0 && s.currentColumnIndex < len(s.taggedColumns) {
		displayedColumn = s.taggedColumns[s.currentColumnIndex]
	}

	item, err := s.detailsLocked(current.ID, true)
	if err != nil {
		return err
	}

	s.taggedColumns = taggedColumnNames(s.tableForLocked(item))
	s.currentColumnIndex = -1
	if displayedColumn != "" {
		for i, name := range s.taggedColumns {
			if name == displayedColumn {
				s.currentColumnIndex = i
				break
			}
		}
	}
	return nil
}

// applyLocked mutates the cached copy and the list entry for id.
func (s *Session) applyLocked(id string, fn func(*api.ReviewItem)) {
	if cached, ok := s.details[id]; ok {
		fn(cached)
	}
	// A column cached inside its table's slot needs the same mutation.
	if util.IsColumnItemID(id) {
		fqn, _, err := util.ParseItemID(id)
		if err == nil {
			if table, ok := s.details[util.TableItemID(fqn)]; ok {
				for i := range table.Columns {
					if table.Columns[i].ID == id {
						fn(&table.Columns[i])
					}
				}
			}
		}
	}
	s.updateListItemLocked(id, fn)
}

func (s *Session) updateListItemLocked(id string, fn func(*api.ReviewItem)) {
	for i := range s.items {
		if s.items[i].ID == id {
			fn(&s.items[i])
		}
	}
}

// CachedIDs lists the ids with a live cache slot. Used by tests and the
// list view's cache indicator.
func (s *Session) CachedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.details))
	for id := range s.details {
		ids = append(ids, id)
	}
	return ids
}

// Cached returns the cache slot for id without fetching.
func (s *Session) Cached(id string) *api.ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItem(s.details[id])
}

func (s *Session) fail(err error) error {
	s.lastError = err.Error()
	return err
}

func cloneItem(item *api.ReviewItem) *api.ReviewItem {
	if item == nil {
		return nil
	}
	out := *item
	return &out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
