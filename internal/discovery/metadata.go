package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldline/fieldline/internal/warehouse"
)

// TableInfo describes one table or view in a schema.
type TableInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"` // TABLE or VIEW
	RowCount int64  `json:"rowCount"`
	Bytes    int64  `json:"bytes"`
	Owner    string `json:"owner,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// primaryTableCandidates are the table names checked, in order, when locating
// the asset table a schema is organized around.
var primaryTableCandidates = []string{"ASSETS", "ASSET", "GOLD_ASSETS", "TABLE_ENTITY", "ALL_ASSETS"}

// ListTables lists tables and views in a schema, sorted by row count
// descending. INFORMATION_SCHEMA row counts are more reliable than SHOW
// TABLES, which can report stale values.
func (d *Discoverer) ListTables(ctx context.Context, database, schema string) ([]TableInfo, error) {
	if database == "" || schema == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT
			TABLE_NAME,
			TABLE_TYPE,
			ROW_COUNT,
			BYTES,
			TABLE_OWNER,
			COMMENT
		FROM %s.INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = '%s'
		AND TABLE_TYPE IN ('BASE TABLE', 'VIEW')
		ORDER BY ROW_COUNT DESC NULLS LAST`,
		warehouse.QuoteIdentifier(database),
		warehouse.EscapeLiteral(schema))

	result, err := d.exec.Execute(ctx, query)
	if err != nil {
		return nil, warehouse.NewQueryError(fmt.Sprintf("list tables in %s.%s", database, schema), err)
	}

	records, err := warehouse.NormalizeRows(result)
	if err != nil {
		return nil, warehouse.NewQueryError(fmt.Sprintf("list tables in %s.%s", database, schema), err)
	}

	tables := make([]TableInfo, 0, len(records))
	for _, rec := range records {
		kind := "TABLE"
		if rec.String("TABLE_TYPE") == "VIEW" {
			kind = "VIEW"
		}
		tables = append(tables, TableInfo{
			Name:     rec.String("TABLE_NAME"),
			Kind:     kind,
			RowCount: rec.Int("ROW_COUNT"),
			Bytes:    rec.Int("BYTES"),
			Owner:    rec.String("TABLE_OWNER"),
			Comment:  rec.String("COMMENT"),
		})
	}

	return tables, nil
}

// FindPrimaryTable locates the asset table among the schema's tables: the
// known candidate names first, then any table whose name contains ASSET.
// Returns the table's actual name as stored, or "" when nothing matches.
func FindPrimaryTable(tables []TableInfo) string {
	for _, candidate := range primaryTableCandidates {
		for _, t := range tables {
			if strings.EqualFold(t.Name, candidate) {
				return t.Name
			}
		}
	}

	for _, t := range tables {
		if strings.Contains(strings.ToUpper(t.Name), "ASSET") {
			return t.Name
		}
	}

	return ""
}
