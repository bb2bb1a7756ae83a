package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "")
}

func TestVersion(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/version" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(VersionResponse{Version: "1.2.3"})
	})

	version, err := client.Version()
	if err != nil {
		t.Fatalf("Version() failed: %v", err)
	}
	if version != "1.2.3" {
		t.Errorf("unexpected version: %s", version)
	}
}

func TestServerDetailSurfacesAsAPIError(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "table not found"})
	})

	_, err := client.GetRegenerationCounts(ClientSettings{}, DatasetSettings{}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Detail != "table not found" {
		t.Errorf("unexpected detail: %s", apiErr.Detail)
	}
}

func TestGenerateTableDescriptionBody(t *testing.T) {
	var got GenerationRequest
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate_table_description" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(MessageResponse{Message: "Table description generated successfully"})
	})

	req := &GenerationRequest{
		ClientSettings: ClientSettings{
			ProjectID:        "p1",
			LLMLocation:      "us-central1",
			DataplexLocation: "us-central1",
		},
		TableSettings: TableSettings{
			ProjectID: "p1",
			DatasetID: "d1",
			TableID:   "t1",
		},
	}
	msg, err := client.GenerateTableDescription(req)
	if err != nil {
		t.Fatalf("GenerateTableDescription failed: %v", err)
	}
	if msg.Message == "" {
		t.Error("expected a success message")
	}

	want := TableSettings{ProjectID: "p1", DatasetID: "d1", TableID: "t1", DocumentationURI: ""}
	if got.TableSettings != want {
		t.Errorf("table_settings = %+v; want %+v", got.TableSettings, want)
	}
	if got.ClientSettings.ProjectID != "p1" {
		t.Errorf("client_settings.project_id = %s; want p1", got.ClientSettings.ProjectID)
	}
}

func TestGetReviewItemsEmptyResult(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items":         []interface{}{},
			"nextPageToken": nil,
			"totalCount":    0,
		})
	})

	list, err := client.GetReviewItems(ClientSettings{ProjectID: "p1"}, DatasetSettings{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("GetReviewItems failed: %v", err)
	}
	if list.Items == nil {
		t.Fatal("items should never be nil")
	}
	if len(list.Items) != 0 || list.TotalCount != 0 {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestMarkForRegenerationColumnBody(t *testing.T) {
	var body map[string]interface{}
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(MessageResponse{Message: "marked"})
	})

	if _, err := client.MarkForRegeneration(ClientSettings{ProjectID: "p1"}, "p1.d1.t1", "email"); err != nil {
		t.Fatalf("MarkForRegeneration failed: %v", err)
	}

	request, ok := body["request"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing request section: %v", body)
	}
	if request["table_fqn"] != "p1.d1.t1" || request["column_name"] != "email" {
		t.Errorf("unexpected request section: %v", request)
	}
}

func TestRejectReviewItemPath(t *testing.T) {
	// Item ids carry '#'; an unescaped id would be cut off as a URL
	// fragment and the reject route would never be reached.
	var gotPath string
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"status": "rejected", "id": "p1.d1.t1#table"})
	})

	if err := client.RejectReviewItem(ClientSettings{ProjectID: "p1"}, "p1.d1.t1#table"); err != nil {
		t.Fatalf("RejectReviewItem failed: %v", err)
	}
	if gotPath != "/metadata/review/p1.d1.t1#table/reject" {
		t.Errorf("server saw path %q; want %q", gotPath, "/metadata/review/p1.d1.t1#table/reject")
	}
}

func TestBearerTokenHeader(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(VersionResponse{Version: "x"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	if _, err := client.Version(); err != nil {
		t.Fatalf("Version() failed: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("unexpected Authorization header: %q", auth)
	}
}

func TestItemMetadataAcceptance(t *testing.T) {
	when := "2024-05-01T10:00:00Z"
	item := ReviewItem{
		Status:   StatusDraft,
		Metadata: &ItemMetadata{IsAccepted: true, WhenAccepted: &when},
	}
	if !item.Accepted() {
		t.Error("item with is-accepted metadata should report accepted")
	}

	item = ReviewItem{Status: StatusDraft}
	if item.Accepted() {
		t.Error("draft item without metadata should not report accepted")
	}
}
