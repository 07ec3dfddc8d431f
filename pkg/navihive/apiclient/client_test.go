package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/dashboard"
	"github.com/Cooldy-Wong/Navihive/pkg/navihive/importexport"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, nil, StaticToken("test-token"))
	return client, server
}

func TestListGroupsDecodesOrderedResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"name":"First","order_num":0},{"id":1,"name":"Second","order_num":1}]`))
	}))
	defer server.Close()

	groups, err := client.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, uint(2), groups[0].ID)
	assert.Equal(t, "First", groups[0].Name)
}

func TestUnauthorizedBecomesErrAuthRequired(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token has expired"}`))
	}))
	defer server.Close()

	_, err := client.ListGroups(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dashboard.ErrAuthRequired)
	assert.Contains(t, err.Error(), "Token has expired")
}

func TestDeleteVanishedGroupReturnsFalse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Group not found"}`))
	}))
	defer server.Close()

	ok, err := client.DeleteGroup(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGroupOrderSubmitsBatch(t *testing.T) {
	var received struct {
		Orders []dashboard.OrderPair `json:"orders"`
	}
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/groups/order", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	pairs := []dashboard.OrderPair{{ID: 3, OrderNum: 0}, {ID: 1, OrderNum: 1}, {ID: 2, OrderNum: 2}}
	ok, err := client.SetGroupOrder(context.Background(), pairs)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pairs, received.Orders)
}

func TestSetGroupOrderConflictIsRejectionNotError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Group in batch no longer exists"}`))
	}))
	defer server.Close()

	ok, err := client.SetGroupOrder(context.Background(), []dashboard.OrderPair{{ID: 1, OrderNum: 0}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImportDatasetReturnsStats(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/import", r.URL.Path)
		w.Write([]byte(`{"success":true,"stats":{"groups":{"total":1,"created":1,"merged":0},"sites":{"total":2,"created":1,"updated":0,"skipped":1}}}`))
	}))
	defer server.Close()

	groups := []importexport.SnapshotGroup{{Name: "Dev"}}
	sites := []importexport.SnapshotSite{}
	configs := map[string]string{}
	result, err := client.ImportDataset(context.Background(), importexport.Snapshot{
		Groups: &groups, Sites: &sites, Configs: &configs,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Stats)
	assert.Equal(t, 1, result.Stats.Groups.Created)
	assert.Equal(t, 1, result.Stats.Sites.Skipped)
}

func TestImportDatasetRejectionIsResultNotError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"import format error: missing 'sites' section"}`))
	}))
	defer server.Close()

	result, err := client.ImportDataset(context.Background(), importexport.Snapshot{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "sites")
}

func TestGetConfigNotFound(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Config not found"}`))
	}))
	defer server.Close()

	_, err := client.GetConfig(context.Background(), "missing")
	assert.ErrorIs(t, err, dashboard.ErrNotFound)
}

func TestTransportFailureIsPlainError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection refused

	_, err := client.ListGroups(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, dashboard.ErrAuthRequired)
	assert.NotErrorIs(t, err, dashboard.ErrNotFound)
}

func TestLoginReturnsToken(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "admin", body["username"])
		w.Write([]byte(`{"token":"issued-token"}`))
	}))
	defer server.Close()

	token, err := client.Login(context.Background(), "admin", "changeme")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
}
