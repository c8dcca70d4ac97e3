// Package feedback stores and summarizes user feedback on resolved pivots.
// Feedback lives in the tenant's own warehouse so it stays inside their data
// boundary; the table is created on first use.
package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// TableName is the feedback table created in the target database/schema.
const TableName = "FIELDLINE_PIVOT_FEEDBACK"

// Feedback is one user's verdict on a pivot run.
type Feedback struct {
	PivotID         string `json:"pivotId"`
	Rating          int    `json:"rating,omitempty"` // 1-5, 0 when unset
	Helpful         *bool  `json:"helpful,omitempty"`
	Comment         string `json:"comment,omitempty"`
	ContextDatabase string `json:"contextDatabase,omitempty"`
	ContextSchema   string `json:"contextSchema,omitempty"`
	ContextTable    string `json:"contextTable,omitempty"`
	QueryID         string `json:"queryId,omitempty"`
	SQL             string `json:"sql,omitempty"`
	UserName        string `json:"userName,omitempty"`
}

// Validate rejects feedback that cannot be stored.
func (f *Feedback) Validate() error {
	if f.PivotID == "" {
		return fmt.Errorf("feedback needs a pivot id")
	}
	if f.Rating != 0 && (f.Rating < 1 || f.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5, got %d", f.Rating)
	}
	return nil
}

// Summary aggregates the stored feedback for one pivot.
type Summary struct {
	PivotID        string  `json:"pivotId"`
	TotalFeedback  int64   `json:"totalFeedback"`
	AvgRating      float64 `json:"avgRating"`
	HelpfulCount   int64   `json:"helpfulCount"`
	LastFeedbackAt string  `json:"lastFeedbackAt,omitempty"`
}

// Store persists feedback through the warehouse executor.
type Store struct {
	exec     warehouse.Executor
	log      *logger.Logger
	database string
	schema   string
}

// NewStore creates a feedback store writing to database.schema.
func NewStore(exec warehouse.Executor, log *logger.Logger, database, schema string) *Store {
	return &Store{exec: exec, log: log, database: database, schema: schema}
}

func (s *Store) tableRef() string {
	return warehouse.TableRef(s.database, s.schema, TableName)
}

func (s *Store) ensureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	FEEDBACK_ID STRING,
	PIVOT_ID STRING,
	RATING NUMBER,
	HELPFUL BOOLEAN,
	COMMENT STRING,
	CONTEXT_DATABASE STRING,
	CONTEXT_SCHEMA STRING,
	CONTEXT_TABLE STRING,
	QUERY_ID STRING,
	SQL_TEXT STRING,
	USER_NAME STRING,
	CREATED_AT TIMESTAMP_LTZ
)`, s.tableRef())

	if _, err := s.exec.Execute(ctx, ddl); err != nil {
		return warehouse.NewQueryError("ensure feedback table", err)
	}
	return nil
}

func sqlLiteral(v string) string {
	return "'" + warehouse.EscapeLiteral(v) + "'"
}

func nullableLiteral(v string) string {
	if v == "" {
		return "NULL"
	}
	return sqlLiteral(v)
}

// Submit stores one feedback record and returns its generated id.
func (s *Store) Submit(ctx context.Context, f Feedback) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	if err := s.ensureTable(ctx); err != nil {
		return "", err
	}

	feedbackID := uuid.NewString()

	rating := "NULL"
	if f.Rating != 0 {
		rating = fmt.Sprintf("%d", f.Rating)
	}
	helpful := "NULL"
	if f.Helpful != nil {
		helpful = strings.ToUpper(fmt.Sprintf("%t", *f.Helpful))
	}

	insert := fmt.Sprintf(`INSERT INTO %s (
	FEEDBACK_ID, PIVOT_ID, RATING, HELPFUL, COMMENT,
	CONTEXT_DATABASE, CONTEXT_SCHEMA, CONTEXT_TABLE,
	QUERY_ID, SQL_TEXT, USER_NAME, CREATED_AT
) VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, '%s')`,
		s.tableRef(),
		sqlLiteral(feedbackID),
		sqlLiteral(f.PivotID),
		rating,
		helpful,
		nullableLiteral(f.Comment),
		nullableLiteral(f.ContextDatabase),
		nullableLiteral(f.ContextSchema),
		nullableLiteral(f.ContextTable),
		nullableLiteral(f.QueryID),
		nullableLiteral(f.SQL),
		nullableLiteral(f.UserName),
		time.Now().UTC().Format("2006-01-02 15:04:05"))

	if _, err := s.exec.Execute(ctx, insert); err != nil {
		if s.log != nil {
			s.log.Errorf("pivot feedback insert failed: %v", err)
		}
		return "", warehouse.NewQueryError("store pivot feedback", err)
	}

	return feedbackID, nil
}

// Summarize aggregates stored feedback per pivot, most-reviewed first.
func (s *Store) Summarize(ctx context.Context) ([]Summary, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT
	PIVOT_ID,
	COUNT(*) AS TOTAL_FEEDBACK,
	AVG(RATING) AS AVG_RATING,
	SUM(CASE WHEN HELPFUL = TRUE THEN 1 ELSE 0 END) AS HELPFUL_COUNT,
	MAX(CREATED_AT) AS LAST_FEEDBACK_AT
FROM %s
GROUP BY 1
ORDER BY TOTAL_FEEDBACK DESC`, s.tableRef())

	result, err := s.exec.Execute(ctx, query)
	if err != nil {
		return nil, warehouse.NewQueryError("summarize pivot feedback", err)
	}
	records, err := warehouse.NormalizeRows(result)
	if err != nil {
		return nil, warehouse.NewQueryError("summarize pivot feedback", err)
	}

	summaries := make([]Summary, 0, len(records))
	for _, rec := range records {
		summary := Summary{
			PivotID:        rec.String("PIVOT_ID"),
			TotalFeedback:  rec.Int("TOTAL_FEEDBACK"),
			HelpfulCount:   rec.Int("HELPFUL_COUNT"),
			LastFeedbackAt: rec.String("LAST_FEEDBACK_AT"),
		}
		if v, ok := rec.Get("AVG_RATING"); ok && v != nil {
			switch n := v.(type) {
			case float64:
				summary.AvgRating = n
			case int64:
				summary.AvgRating = float64(n)
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
