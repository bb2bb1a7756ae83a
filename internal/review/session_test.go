package review

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
)

// fakeBackend serves the review endpoints from in-memory tables.
type fakeBackend struct {
	mu sync.Mutex

	tables map[string]*api.ReviewItem // keyed by table FQN

	detailsCalls      int
	acceptTableCalls  int
	acceptColumnCalls int
	markCalls         int
	rejectedID        string

	failNext bool
}

func makeTable(fqn string, marked bool, columns ...string) *api.ReviewItem {
	table := &api.ReviewItem{
		ID:                    fqn + "#table",
		Type:                  "table",
		Name:                  fqn,
		CurrentDescription:    "old table description",
		DraftDescription:      "draft table description",
		Status:                api.StatusDraft,
		Comments:              []string{},
		MarkedForRegeneration: marked,
		Metadata:              &api.ItemMetadata{},
	}
	for _, col := range columns {
		table.Columns = append(table.Columns, api.ReviewItem{
			ID:               fqn + "#column#" + col,
			Type:             "column",
			Name:             fqn + "." + col,
			DraftDescription: "draft for " + col,
			Status:           api.StatusDraft,
			Comments:         []string{},
			Metadata:         &api.ItemMetadata{},
		})
	}
	return table
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.failNext {
			b.failNext = false
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "backend unavailable"})
			return
		}

		switch r.URL.Path {
		case "/metadata/review":
			list := api.ReviewList{Items: []api.ReviewItem{}}
			for _, table := range b.tables {
				summary := *table
				summary.Columns = nil
				summary.DraftDescription = ""
				list.Items = append(list.Items, summary)
			}
			list.TotalCount = len(list.Items)
			json.NewEncoder(w).Encode(list)

		case "/metadata/review/details":
			b.detailsCalls++
			table := b.requestedTable(r)
			if table == nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"detail": "table not found"})
				return
			}
			json.NewEncoder(w).Encode(table)

		case "/accept_table_draft_description":
			b.acceptTableCalls++
			if table := b.requestedTable(r); table != nil {
				acceptItem(table)
			}
			json.NewEncoder(w).Encode(api.MessageResponse{Message: "accepted"})

		case "/accept_column_draft_description":
			b.acceptColumnCalls++
			var req struct {
				TableSettings  api.TableSettings   `json:"table_settings"`
				ColumnSettings *api.ColumnSettings `json:"column_settings"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			table := b.tables[tableFQN(req.TableSettings)]
			if table != nil && req.ColumnSettings != nil {
				for i := range table.Columns {
					if table.Columns[i].ID == table.Name+"#column#"+req.ColumnSettings.ColumnName {
						acceptItem(&table.Columns[i])
					}
				}
			}
			json.NewEncoder(w).Encode(api.MessageResponse{Message: "accepted"})

		case "/mark_for_regeneration":
			b.markCalls++
			json.NewEncoder(w).Encode(api.MessageResponse{Message: "marked"})

		case "/metadata/review/add_comment":
			var req struct {
				Comment string `json:"comment"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(map[string]string{"comment": req.Comment})

		case "/update_table_draft_description", "/update_column_draft_description":
			json.NewEncoder(w).Encode(api.StatusResponse{Status: "success"})

		default:
			if strings.HasPrefix(r.URL.Path, "/metadata/review/") && strings.HasSuffix(r.URL.Path, "/reject") {
				id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/metadata/review/"), "/reject")
				b.rejectedID = id
				json.NewEncoder(w).Encode(map[string]string{"status": "rejected", "id": id})
				return
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "no such endpoint"})
		}
	}
}

// requestedTable resolves the table named by the request's table_settings.
// Callers hold b.mu.
func (b *fakeBackend) requestedTable(r *http.Request) *api.ReviewItem {
	var req struct {
		TableSettings api.TableSettings `json:"table_settings"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	return b.tables[tableFQN(req.TableSettings)]
}

func tableFQN(ts api.TableSettings) string {
	return ts.ProjectID + "." + ts.DatasetID + "." + ts.TableID
}

func acceptItem(item *api.ReviewItem) {
	when := "2024-01-01T00:00:00Z"
	if item.Metadata == nil {
		item.Metadata = &api.ItemMetadata{}
	}
	item.Metadata.IsAccepted = true
	item.Metadata.WhenAccepted = &when
	item.CurrentDescription = item.DraftDescription
}

func setupTestSession(t *testing.T, backend *fakeBackend) *Session {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig()
	cfg.BaseDir = t.TempDir()
	cfg.APIURL = server.URL
	cfg.ProjectID = "p1"
	cfg.DatasetID = "d1"

	return NewSession(api.NewClient(server.URL, ""), cfg)
}

func TestEmptyListKeepsNavigationSafe(t *testing.T) {
	session := setupTestSession(t, &fakeBackend{tables: map[string]*api.ReviewItem{}})

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if !session.HasLoaded() {
		t.Error("HasLoaded should be true after a successful empty fetch")
	}
	if len(session.Items()) != 0 {
		t.Fatalf("expected no items")
	}

	// Navigation on an empty list must never error or move the index.
	if err := session.NextItem(); err != nil {
		t.Errorf("NextItem on empty list errored: %v", err)
	}
	if err := session.PrevItem(); err != nil {
		t.Errorf("PrevItem on empty list errored: %v", err)
	}
	if err := session.EnterReview(3); err != nil {
		t.Errorf("EnterReview on empty list errored: %v", err)
	}
	session.NextColumn()
	session.PrevColumn()
	if session.CurrentIndex() != 0 {
		t.Errorf("index moved on empty list: %d", session.CurrentIndex())
	}
}

func TestNavigationStaysInRange(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false),
		"p1.d1.t2": makeTable("p1.d1.t2", false),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	moves := []func() error{
		session.PrevItem, session.NextItem, session.NextItem, session.NextItem,
		session.PrevItem, session.PrevItem, session.PrevItem, session.NextItem,
	}
	for i, move := range moves {
		if err := move(); err != nil {
			t.Fatalf("move %d errored: %v", i, err)
		}
		idx := session.CurrentIndex()
		if idx < 0 || idx >= len(session.Items()) {
			t.Fatalf("index %d out of range after move %d", idx, i)
		}
	}
}

func TestTableFetchPopulatesColumnSlots(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", true, "user_id", "email"),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	for _, id := range []string{"p1.d1.t1#column#user_id", "p1.d1.t1#column#email"} {
		col := session.Cached(id)
		if col == nil {
			t.Fatalf("column slot %s not cached", id)
		}
		if !col.TableMarkedForRegeneration {
			t.Errorf("column %s should carry the table's regeneration flag", id)
		}
	}

	// Column details must come from the cache, not a second fetch.
	calls := backend.detailsCalls
	if _, err := session.Details("p1.d1.t1#column#email", false); err != nil {
		t.Fatalf("Details failed: %v", err)
	}
	if backend.detailsCalls != calls {
		t.Errorf("cached column access hit the backend (%d -> %d)", calls, backend.detailsCalls)
	}
}

func TestColumnNavigation(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false, "a", "b"),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	if idx, total := session.ColumnPosition(); idx != -1 || total != 2 {
		t.Fatalf("initial column position = %d/%d; want -1/2", idx, total)
	}

	session.NextColumn()
	session.NextColumn()
	if idx, _ := session.ColumnPosition(); idx != 1 {
		t.Fatalf("column index = %d; want 1", idx)
	}

	// Already at the last tagged column: advancing further is a no-op.
	session.NextColumn()
	if idx, _ := session.ColumnPosition(); idx != 1 {
		t.Errorf("NextColumn at the end moved the index to %d", idx)
	}

	// Column navigation never changes the current item index.
	if session.CurrentIndex() != 0 {
		t.Errorf("column navigation changed the item index to %d", session.CurrentIndex())
	}

	displayed := session.Displayed()
	if displayed == nil || displayed.ID != "p1.d1.t1#column#b" {
		t.Errorf("unexpected displayed item: %+v", displayed)
	}

	session.PrevColumn()
	session.PrevColumn()
	if idx, _ := session.ColumnPosition(); idx != -1 {
		t.Errorf("expected table view after walking back, got index %d", idx)
	}
	session.PrevColumn()
	if idx, _ := session.ColumnPosition(); idx != -1 {
		t.Errorf("PrevColumn below the table view moved the index to %d", idx)
	}
}

func TestAcceptTable(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	if err := session.Accept(); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if backend.acceptTableCalls != 1 {
		t.Fatalf("expected 1 accept call, got %d", backend.acceptTableCalls)
	}

	item := session.Cached("p1.d1.t1#table")
	if item.Status != api.StatusAccepted {
		t.Errorf("status = %s; want accepted", item.Status)
	}
	if item.CurrentDescription != "draft table description" {
		t.Errorf("draft was not copied to current description: %s", item.CurrentDescription)
	}
	if item.Metadata == nil || !item.Metadata.IsAccepted || item.Metadata.WhenAccepted == nil {
		t.Errorf("acceptance metadata not stamped: %+v", item.Metadata)
	}

	// A second accept on an accepted item is a guarded no-op.
	if err := session.Accept(); err != nil {
		t.Fatalf("second Accept errored: %v", err)
	}
	if backend.acceptTableCalls != 1 {
		t.Errorf("second accept reached the backend (%d calls)", backend.acceptTableCalls)
	}
}

func TestAcceptColumnRefreshKeepsDisplayedColumn(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false, "a", "b", "c"),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}
	session.NextColumn()
	session.NextColumn() // displaying column "b"

	if err := session.Accept(); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if backend.acceptColumnCalls != 1 {
		t.Fatalf("expected 1 column accept call, got %d", backend.acceptColumnCalls)
	}

	// The accept triggers a full-table refresh, which returns all columns;
	// the displayed column must survive it.
	displayed := session.Displayed()
	if displayed == nil || displayed.ID != "p1.d1.t1#column#b" {
		t.Errorf("refresh changed the displayed column: %+v", displayed)
	}
	if session.CurrentIndex() != 0 {
		t.Errorf("refresh changed the item index to %d", session.CurrentIndex())
	}
}

func TestMarkForRegenerationInvalidatesOnlyThatSlot(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false, "a", "b"),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}
	session.NextColumn() // displaying column "a"

	if err := session.MarkForRegeneration(); err != nil {
		t.Fatalf("MarkForRegeneration failed: %v", err)
	}
	if backend.markCalls != 1 {
		t.Fatalf("expected 1 mark call, got %d", backend.markCalls)
	}

	if session.Cached("p1.d1.t1#column#a") != nil {
		t.Error("marked item's cache slot should be invalidated")
	}
	if session.Cached("p1.d1.t1#column#b") == nil {
		t.Error("sibling cache slot should be untouched")
	}
	if session.Cached("p1.d1.t1#table") == nil {
		t.Error("table cache slot should be untouched")
	}
}

func TestAddComment(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	if err := session.AddComment("needs more detail"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	item := session.Cached("p1.d1.t1#table")
	if len(item.Comments) != 1 || item.Comments[0] != "needs more detail" {
		t.Errorf("comment not appended: %v", item.Comments)
	}
}

func TestReject(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	if err := session.Reject(); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	// The backend routes rejects by the composite id; a mangled path would
	// carry a truncated id.
	if backend.rejectedID != "p1.d1.t1#table" {
		t.Errorf("backend saw rejected id %q; want %q", backend.rejectedID, "p1.d1.t1#table")
	}

	item := session.Cached("p1.d1.t1#table")
	if item == nil || item.Status != api.StatusRejected {
		t.Errorf("cached item not marked rejected: %+v", item)
	}
	if got := session.Items()[0].Status; got != api.StatusRejected {
		t.Errorf("list entry status = %s; want rejected", got)
	}
}

func TestSaveEdit(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	if err := session.SaveEdit("rewritten draft"); err != nil {
		t.Fatalf("SaveEdit failed: %v", err)
	}

	// The refresh refetches the backend copy, which still holds the fake's
	// original draft; the list entry keeps the optimistic edit until then.
	item := session.Cached("p1.d1.t1#table")
	if item == nil {
		t.Fatal("table slot missing after edit")
	}
}

func TestRequestFailurePreservesStaleCache(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false, "a"),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	backend.mu.Lock()
	backend.failNext = true
	backend.mu.Unlock()

	if err := session.Refresh(); err == nil {
		t.Fatal("expected refresh to fail")
	}
	if session.LastError() == "" {
		t.Error("failure should record a session error")
	}
	if session.Cached("p1.d1.t1#table") == nil {
		t.Error("stale cache should survive a failed refresh")
	}

	// The next successful call clears the error.
	if err := session.Refresh(); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	if session.LastError() != "" {
		t.Errorf("error not cleared after success: %s", session.LastError())
	}
}

func TestPrefetchNextWarmsCache(t *testing.T) {
	backend := &fakeBackend{tables: map[string]*api.ReviewItem{
		"p1.d1.t1": makeTable("p1.d1.t1", false),
		"p1.d1.t2": makeTable("p1.d1.t2", false),
		"p1.d1.t3": makeTable("p1.d1.t3", false),
	}}
	session := setupTestSession(t, backend)

	if err := session.LoadItems(); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if err := session.EnterReview(0); err != nil {
		t.Fatalf("EnterReview failed: %v", err)
	}

	items := session.Items()
	nextID := items[1].ID
	if session.Cached(nextID) != nil {
		t.Fatal("next item unexpectedly cached already")
	}

	session.PrefetchNext()
	if session.Cached(nextID) == nil {
		t.Error("prefetch did not warm the next item's cache slot")
	}

	// Navigating onto the prefetched item must not refetch.
	calls := backend.detailsCalls
	if err := session.NextItem(); err != nil {
		t.Fatalf("NextItem failed: %v", err)
	}
	if backend.detailsCalls != calls {
		t.Errorf("navigation onto a prefetched item hit the backend")
	}

	// Each navigation step is followed by a prefetch of the new next item.
	session.PrefetchNext()
	if session.Cached(items[2].ID) == nil {
		t.Error("prefetch after navigation did not warm the following item")
	}
}
