package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpdarago/beeminder/internal/config"
	"github.com/jpdarago/beeminder/internal/model"
)

var testCreds = config.Credentials{Username: "alice", AuthToken: "s3cr3t"}

func newTestClient(serverURL string) *Client {
	return NewClient(testCreds, serverURL, "test")
}

// parsePostBody decodes the form-encoded request body directly, since
// r.ParseForm ignores the body when the declared Content-Type is JSON.
func parsePostBody(t *testing.T, r *http.Request) url.Values {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(body))
	require.NoError(t, err)
	return form
}

func TestBuildURL(t *testing.T) {
	client := NewClient(testCreds, DefaultBaseURL, "test")

	got := client.buildURL("/goals/pushups.json")
	assert.Equal(t, "https://www.beeminder.com/api/v1/users/alice/goals/pushups.json?auth_token=s3cr3t", got)

	// Pure function: repeated calls yield the same string.
	assert.Equal(t, got, client.buildURL("/goals/pushups.json"))
}

func TestBuildURLEscapesToken(t *testing.T) {
	client := NewClient(config.Credentials{Username: "alice", AuthToken: "a+b&c"}, DefaultBaseURL, "test")

	built := client.buildURL(".json")
	u, err := url.Parse(built)
	require.NoError(t, err)
	assert.Equal(t, "a+b&c", u.Query().Get("auth_token"))
}

func TestUser(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		json.NewEncoder(w).Encode(model.User{
			ID:       "54f9d9",
			Username: "alice",
			Timezone: "America/Los_Angeles",
			Goals:    []string{"pushups", "running"},
		})
	}))
	defer srv.Close()

	user, err := newTestClient(srv.URL).User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"pushups", "running"}, user.Goals)

	require.NotNil(t, gotReq)
	assert.Equal(t, http.MethodGet, gotReq.Method)
	assert.Equal(t, "/users/alice.json", gotReq.URL.Path)
	assert.Equal(t, "s3cr3t", gotReq.URL.Query().Get("auth_token"))
	assert.Equal(t, "beeminder/test", gotReq.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
}

func TestGoalEndpointPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	client := newTestClient(srv.URL)

	_, err := client.Goals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/users/alice/goals.json", gotPath)

	_, err = client.Datapoints(context.Background(), "pushups")
	require.NoError(t, err)
	assert.Equal(t, "/users/alice/goals/pushups/datapoints.json", gotPath)
}

func TestGoalDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/goals/pushups.json", r.URL.Path)
		w.Write([]byte(`{"slug":"pushups","title":"Do pushups","goal_type":"hustler",` +
			`"yaxis":"pushups","goaldate":1735689600,"losedate":1672900000,` +
			`"updated_at":1672800000,"safesum":"safe for 3 days"}`))
	}))
	defer srv.Close()

	goal, err := newTestClient(srv.URL).Goal(context.Background(), "pushups")
	require.NoError(t, err)
	assert.Equal(t, "pushups", goal.Slug)
	assert.Equal(t, "hustler", goal.GoalType)
	assert.Equal(t, int64(1672900000), goal.Losedate)
	assert.Equal(t, "safe for 3 days", goal.Safesum)
}

func TestCreateDatapoint(t *testing.T) {
	var gotReq *http.Request
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		gotForm = parsePostBody(t, r)
	}))
	defer srv.Close()

	ts := int64(1672914600)
	comment := "morning set"
	err := newTestClient(srv.URL).CreateDatapoint(context.Background(), "pushups", CreateDatapointParams{
		Value:     12.5,
		Timestamp: &ts,
		Comment:   &comment,
	})
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/users/alice/goals/pushups/datapoints.json", gotReq.URL.Path)
	// The service contract declares JSON while the body is form-encoded.
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))

	assert.Equal(t, "12.5", gotForm.Get("value"))
	assert.Equal(t, "1672914600", gotForm.Get("timestamp"))
	assert.Equal(t, "morning set", gotForm.Get("comment"))
	assert.NotContains(t, gotForm, "daystamp")
	assert.NotContains(t, gotForm, "requestid")
}

func TestCreateDatapointOnlyValue(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotForm = parsePostBody(t, r)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CreateDatapoint(context.Background(), "pushups", CreateDatapointParams{Value: 3})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"value": []string{"3"}}, gotForm)
}

func TestCreateDatapointsBulk(t *testing.T) {
	var gotPath, gotField string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotField = parsePostBody(t, r).Get("datapoints")
	}))
	defer srv.Close()

	points := []model.Datapoint{
		{ID: "beeminder pushups 2023-01-05 10:30:00", Timestamp: 1672914600, Daystamp: "20230105", Value: 12.5, Comment: "ran 5k"},
		{ID: "beeminder pushups 2023-01-06 09:00:00", Timestamp: 1672995600, Daystamp: "20230106", Value: 3},
	}
	err := newTestClient(srv.URL).CreateDatapoints(context.Background(), "pushups", points)
	require.NoError(t, err)

	assert.Equal(t, "/users/alice/goals/pushups/datapoints/create_all.json", gotPath)
	var decoded []model.Datapoint
	require.NoError(t, json.Unmarshal([]byte(gotField), &decoded))
	assert.Equal(t, points, decoded)
}

func TestDeleteDatapoint(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).DeleteDatapoint(context.Background(), "pushups", "abc123")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/users/alice/goals/pushups/datapoints/abc123.json", gotPath)
}

func TestErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"no such goal"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Goal(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "no such goal")
}

func TestDecodeErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).User(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
