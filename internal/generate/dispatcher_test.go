package generate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/tasks"
)

func setupTestDispatcher(t *testing.T, handler http.HandlerFunc) (*Dispatcher, *tasks.Tracker) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig()
	cfg.BaseDir = t.TempDir()
	cfg.APIURL = server.URL
	cfg.ProjectID = "p1"
	cfg.DatasetID = "d1"
	cfg.TableID = "t1"

	tracker := tasks.NewTracker(nil)
	return NewDispatcher(api.NewClient(server.URL, ""), cfg, tracker), tracker
}

func TestGenerateTableDescriptionTaskLifecycle(t *testing.T) {
	var got api.GenerationRequest
	dispatcher, tracker := setupTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate_table_description" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(api.MessageResponse{Message: "Table description generated successfully"})
	})

	msg, err := dispatcher.GenerateTableDescription()
	if err != nil {
		t.Fatalf("GenerateTableDescription failed: %v", err)
	}
	if msg.Message != "Table description generated successfully" {
		t.Errorf("unexpected message: %s", msg.Message)
	}

	want := api.TableSettings{ProjectID: "p1", DatasetID: "d1", TableID: "t1", DocumentationURI: ""}
	if got.TableSettings != want {
		t.Errorf("table_settings = %+v; want %+v", got.TableSettings, want)
	}

	list := tracker.List()
	if len(list) != 1 {
		t.Fatalf("expected exactly one task, got %d", len(list))
	}
	if list[0].Status != tasks.StatusCompleted {
		t.Errorf("task status = %s; want completed", list[0].Status)
	}
	if list[0].Action != ActionGenerateTable {
		t.Errorf("task action = %s; want %s", list[0].Action, ActionGenerateTable)
	}
}

func TestFailedDispatchLogsFailedTask(t *testing.T) {
	dispatcher, tracker := setupTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "permission denied"})
	})

	if _, err := dispatcher.RegenerateAll(); err == nil {
		t.Fatal("expected error")
	}

	list := tracker.List()
	if len(list) != 1 {
		t.Fatalf("expected exactly one task, got %d", len(list))
	}
	if list[0].Status != tasks.StatusFailed {
		t.Errorf("task status = %s; want failed", list[0].Status)
	}
	if list[0].Error == "" {
		t.Error("failed task should carry the server error message")
	}
}

func TestDispatchRequiresScope(t *testing.T) {
	dispatcher, tracker := setupTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend without a configured scope")
	})
	dispatcher.cfg.TableID = ""

	if _, err := dispatcher.GenerateTableDescription(); err == nil {
		t.Fatal("expected error with no table configured")
	}
	if len(tracker.List()) != 0 {
		t.Error("no task should be logged when validation fails before dispatch")
	}
}

func TestRegenerateSelected(t *testing.T) {
	dispatcher, tracker := setupTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.RegenerateSelectedResponse{
			RegeneratedObjects: []api.RegeneratedObject{{Object: "p1.d1.t1", Status: "regenerated"}},
		})
	})

	result, err := dispatcher.RegenerateSelected([]string{"t1*"})
	if err != nil {
		t.Fatalf("RegenerateSelected failed: %v", err)
	}
	if len(result.RegeneratedObjects) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if got := tracker.List()[0].Status; got != tasks.StatusCompleted {
		t.Errorf("task status = %s; want completed", got)
	}
}
