package aiassist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSummarySendsRequestAndDecodesDraft(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody DraftRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(DraftResponse{Draft: "Weekly summary.", Model: "managed-v1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	resp, err := client.StatusSummary(context.Background(), DraftRequest{
		ProjectName: "Harbor Bridge",
		Text:        "poured foundation, waiting on permits",
	})
	require.NoError(t, err)

	assert.Equal(t, "/functions/v1/status-summary", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Harbor Bridge", gotBody.ProjectName)
	assert.Equal(t, "Weekly summary.", resp.Draft)
}

func TestMeetingMinutesAndActionItemsPaths(t *testing.T) {
	paths := make([]string, 0, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(DraftResponse{Draft: "ok"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.MeetingMinutes(context.Background(), DraftRequest{Text: "notes"})
	require.NoError(t, err)
	_, err = client.ActionItems(context.Background(), DraftRequest{Text: "notes"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/functions/v1/structure-minutes", "/functions/v1/extract-action-items"}, paths)
}

func TestDraftErrorSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream model unavailable"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.StatusSummary(context.Background(), DraftRequest{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream model unavailable")
}
