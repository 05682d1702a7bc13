package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

// Scopes requested for the service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// ErrNotConfigured is reported when credentials or the destination are missing.
var ErrNotConfigured = errors.New("spreadsheet persistence is not configured")

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// Config locates the destination spreadsheet and the credentials to reach it.
type Config struct {
	// CredentialsJSON is the service-account key file contents.
	CredentialsJSON string
	// SheetURL is the spreadsheet URL or its bare ID.
	SheetURL string
	// SheetName selects the tab; empty means the first sheet.
	SheetName string

	// Endpoint and HTTPClient override the Google API transport.
	Endpoint   string
	HTTPClient *http.Client
}

// Configured reports whether both secrets are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.SheetURL) != "" && (c.CredentialsJSON != "" || c.HTTPClient != nil)
}

// Appender appends persisted rows to a Google spreadsheet.
type Appender struct {
	cfg Config
}

func NewAppender(cfg Config) *Appender {
	return &Appender{cfg: cfg}
}

// SpreadsheetID extracts the ID from a spreadsheet URL, or returns the input
// unchanged when it is already a bare ID.
func SpreadsheetID(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", ErrNotConfigured
	}
	if m := spreadsheetIDPattern.FindStringSubmatch(locator); m != nil {
		return m[1], nil
	}
	if strings.Contains(locator, "/") {
		return "", fmt.Errorf("cannot find spreadsheet id in %q", locator)
	}
	return locator, nil
}

// AppendRow writes one row. The API client lives only for this call, and a
// failure is reported once without retrying.
func (a *Appender) AppendRow(ctx context.Context, row models.PersistedRow) models.AppendResult {
	if err := a.append(ctx, row); err != nil {
		log.Error().Err(err).Str("timestamp", row.Timestamp).Msg("failed to append row to spreadsheet")
		return models.AppendResult{Success: false, ErrorDetail: err.Error()}
	}
	return models.AppendResult{Success: true}
}

func (a *Appender) append(ctx context.Context, row models.PersistedRow) error {
	if !a.cfg.Configured() {
		return ErrNotConfigured
	}

	spreadsheetID, err := SpreadsheetID(a.cfg.SheetURL)
	if err != nil {
		return err
	}

	srv, err := gsheets.NewService(ctx, a.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	values := row.Values()
	if len(values) != models.RowWidth {
		return fmt.Errorf("row has %d columns, want %d", len(values), models.RowWidth)
	}

	rangeRef := "A1"
	if a.cfg.SheetName != "" {
		rangeRef = fmt.Sprintf("'%s'!A1", strings.ReplaceAll(a.cfg.SheetName, "'", "''"))
	}

	resp, err := srv.Spreadsheets.Values.Append(spreadsheetID, rangeRef, &gsheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}

	if resp.Updates != nil {
		log.Debug().
			Str("range", resp.Updates.UpdatedRange).
			Int64("rows", resp.Updates.UpdatedRows).
			Msg("row appended")
	}
	return nil
}

func (a *Appender) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if a.cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(a.cfg.HTTPClient))
	} else {
		opts = append(opts,
			option.WithCredentialsJSON([]byte(a.cfg.CredentialsJSON)),
			option.WithScopes(Scopes...),
		)
	}
	if a.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.cfg.Endpoint))
	}
	return opts
}
