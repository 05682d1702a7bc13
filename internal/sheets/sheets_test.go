package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

func sampleRow() models.PersistedRow {
	return models.PersistedRow{
		Timestamp:  "2025-03-09T13:05:07Z",
		Gender:     "F",
		AgeBracket: "31-40",
		Education:  "Postgraduate",
		Total:      50,
		Scores:     [5]int{10, 10, 10, 10, 10},
	}
}

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://docs.google.com/spreadsheets/d/1AbC_d-9xyz/edit#gid=0", "1AbC_d-9xyz", false},
		{"https://docs.google.com/spreadsheets/d/1AbC_d-9xyz", "1AbC_d-9xyz", false},
		{"  1AbC_d-9xyz ", "1AbC_d-9xyz", false},
		{"https://example.com/not/a/sheet", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := SpreadsheetID(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestAppendRowSendsRowInColumnOrder(t *testing.T) {
	var (
		gotPath  string
		gotQuery map[string]string
		gotBody  struct {
			MajorDimension string          `json:"majorDimension"`
			Values         [][]interface{} `json:"values"`
		}
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"valueInputOption": r.URL.Query().Get("valueInputOption"),
			"insertDataOption": r.URL.Query().Get("insertDataOption"),
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123","updates":{"updatedRange":"Sheet1!A2:J2","updatedRows":1}}`))
	}))
	defer server.Close()

	appender := NewAppender(Config{
		SheetURL:   "https://docs.google.com/spreadsheets/d/sheet-123/edit",
		Endpoint:   server.URL + "/",
		HTTPClient: server.Client(),
	})

	result := appender.AppendRow(context.Background(), sampleRow())

	require.True(t, result.Success, result.ErrorDetail)
	assert.Empty(t, result.ErrorDetail)
	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/A1:append", gotPath)
	assert.Equal(t, "RAW", gotQuery["valueInputOption"])
	assert.Equal(t, "INSERT_ROWS", gotQuery["insertDataOption"])
	assert.Equal(t, "ROWS", gotBody.MajorDimension)
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, []interface{}{
		"2025-03-09T13:05:07Z", "F", "31-40", "Postgraduate",
		float64(50), float64(10), float64(10), float64(10), float64(10), float64(10),
	}, gotBody.Values[0])
}

func TestAppendRowReportsFailureWithoutRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	appender := NewAppender(Config{
		SheetURL:   "sheet-123",
		Endpoint:   server.URL + "/",
		HTTPClient: server.Client(),
	})

	result := appender.AppendRow(context.Background(), sampleRow())

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorDetail, "403")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAppendRowNotConfigured(t *testing.T) {
	result := NewAppender(Config{}).AppendRow(context.Background(), sampleRow())

	assert.False(t, result.Success)
	assert.Equal(t, ErrNotConfigured.Error(), result.ErrorDetail)
}

func TestConfigured(t *testing.T) {
	assert.False(t, Config{CredentialsJSON: "{}"}.Configured())
	assert.False(t, Config{SheetURL: "id"}.Configured())
	assert.True(t, Config{CredentialsJSON: "{}", SheetURL: "id"}.Configured())
}
