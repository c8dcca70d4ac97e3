// Package tenant assembles a complete tenant configuration: the schema is
// discovered, every catalog field is reconciled to a physical column, and the
// surrounding governance vocabulary (custom metadata, classifications,
// domains) is collected from the companion tables when they exist.
package tenant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/matching"
	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// FieldMapping reconciles one canonical field against the tenant's primary
// table.
type FieldMapping struct {
	CanonicalFieldID   string   `json:"canonicalFieldId"`
	CanonicalFieldName string   `json:"canonicalFieldName"`
	ExpectedColumns    []string `json:"expectedColumns"`
	MatchedColumn      string   `json:"matchedColumn,omitempty"`
	Confidence         float64  `json:"confidence"`
	Method             string   `json:"method"`

	// Status is "auto" for high-confidence matches and "pending" for
	// everything a reviewer should look at.
	Status string `json:"status"`
}

// CustomMetadataAttribute is one attribute inside a custom metadata set.
type CustomMetadataAttribute struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
}

// CustomMetadataSet groups the attributes of one custom metadata collection.
type CustomMetadataSet struct {
	Name        string                    `json:"name"`
	DisplayName string                    `json:"displayName"`
	Attributes  []CustomMetadataAttribute `json:"attributes"`
}

// Classification is one tag with its usage volume.
type Classification struct {
	Name       string `json:"name"`
	UsageCount int64  `json:"usageCount"`
}

// Domain is one glossary-backed domain.
type Domain struct {
	GUID          string `json:"guid"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualifiedName"`
}

// Config is the assembled tenant configuration.
type Config struct {
	TenantID     string    `json:"tenantId"`
	Database     string    `json:"database"`
	Schema       string    `json:"schema"`
	PrimaryTable string    `json:"primaryTable,omitempty"`
	Version      int       `json:"version"`
	GeneratedAt  time.Time `json:"generatedAt"`
	DiscoveredAt time.Time `json:"discoveredAt"`

	Tables          []discovery.TableInfo `json:"tables"`
	FieldMappings   []FieldMapping        `json:"fieldMappings"`
	CustomMetadata  []CustomMetadataSet   `json:"customMetadata"`
	Classifications []Classification      `json:"classifications"`
	Domains         []Domain              `json:"domains"`
}

// Builder assembles tenant configurations.
type Builder struct {
	exec       warehouse.Executor
	discoverer *discovery.Discoverer
	catalog    *catalog.Catalog
	log        *logger.Logger
}

// NewBuilder creates a tenant config builder.
func NewBuilder(exec warehouse.Executor, c *catalog.Catalog, log *logger.Logger) *Builder {
	return &Builder{
		exec:       exec,
		discoverer: discovery.NewDiscoverer(exec, log),
		catalog:    c,
		log:        log,
	}
}

// Build discovers the schema and assembles the configuration. Companion-table
// discovery (custom metadata, classifications, domains) degrades to empty
// sections on failure; only the table listing itself is fatal.
func (b *Builder) Build(ctx context.Context, tenantID, database, schema string) (*Config, error) {
	cfg := &Config{
		TenantID:    tenantID,
		Database:    database,
		Schema:      schema,
		Version:     1,
		GeneratedAt: time.Now().UTC(),
	}

	tables, err := b.discoverer.ListTables(ctx, database, schema)
	if err != nil {
		return nil, fmt.Errorf("tenant config for %s: %w", tenantID, err)
	}
	cfg.Tables = tables
	cfg.DiscoveredAt = time.Now().UTC()

	cfg.PrimaryTable = discovery.FindPrimaryTable(tables)
	if cfg.PrimaryTable == "" {
		if b.log != nil {
			b.log.Warnf("no primary asset table found in %s.%s", database, schema)
		}
	} else {
		snapshot, err := b.discoverer.Discover(ctx, database, schema, cfg.PrimaryTable)
		if err != nil && b.log != nil {
			b.log.Warnf("primary table discovery degraded: %v", err)
		}
		cfg.FieldMappings = b.reconcile(snapshot.Index())
	}

	cfg.CustomMetadata = b.discoverCustomMetadata(ctx, database, schema)
	cfg.Classifications = b.discoverClassifications(ctx, database, schema)
	cfg.Domains = b.discoverDomains(ctx, database, schema)

	if b.log != nil {
		b.log.Infof("tenant config built for %s: %d tables, %d field mappings",
			tenantID, len(cfg.Tables), len(cfg.FieldMappings))
	}

	return cfg, nil
}

// reconcile maps every catalog field through the tiered matcher. Matches at
// or above the high-confidence cut line are accepted automatically; the rest
// stay pending for review.
func (b *Builder) reconcile(ix *discovery.ColumnIndex) []FieldMapping {
	batch := matching.MatchAll(b.catalog, ix)

	mappings := make([]FieldMapping, 0, len(batch.Results))
	for _, r := range batch.Results {
		field, _ := b.catalog.Field(r.FieldID)

		mapping := FieldMapping{
			CanonicalFieldID: r.FieldID,
			MatchedColumn:    r.MatchedColumn,
			Confidence:       r.Confidence,
			Method:           string(r.Method),
			Status:           "pending",
		}
		if field != nil {
			mapping.CanonicalFieldName = field.DisplayName
			mapping.ExpectedColumns = field.CandidateColumns()
		}
		if r.HighConfidence() {
			mapping.Status = "auto"
		}
		mappings = append(mappings, mapping)
	}

	return mappings
}

func (b *Builder) tableExists(ctx context.Context, database, schema, table string) bool {
	query := fmt.Sprintf(`
		SELECT COUNT(*) AS N
		FROM %s.INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = '%s' AND TABLE_NAME = '%s'`,
		warehouse.QuoteIdentifier(database),
		warehouse.EscapeLiteral(schema),
		warehouse.EscapeLiteral(table))

	result, err := b.exec.Execute(ctx, query)
	if err != nil {
		return false
	}
	records, err := warehouse.NormalizeRows(result)
	if err != nil || len(records) == 0 {
		return false
	}
	return records[0].Int("N") > 0
}

func (b *Builder) discoverCustomMetadata(ctx context.Context, database, schema string) []CustomMetadataSet {
	if !b.tableExists(ctx, database, schema, "CUSTOMMETADATA_RELATIONSHIP") {
		return nil
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT
			SETDISPLAYNAME,
			ATTRIBUTEDISPLAYNAME,
			ATTRIBUTENAME
		FROM %s."CUSTOMMETADATA_RELATIONSHIP"
		WHERE SETDISPLAYNAME IS NOT NULL
		ORDER BY SETDISPLAYNAME, ATTRIBUTEDISPLAYNAME`,
		schemaRef(database, schema))

	records, err := b.query(ctx, query, "discover custom metadata")
	if err != nil {
		return nil
	}

	var sets []CustomMetadataSet
	index := make(map[string]int)
	seenAttr := make(map[string]bool)

	for _, rec := range records {
		setName := rec.String("SETDISPLAYNAME")
		if setName == "" {
			setName = "Unknown"
		}
		attrName := rec.String("ATTRIBUTENAME")
		attrDisplay := rec.String("ATTRIBUTEDISPLAYNAME")
		if attrDisplay == "" {
			attrDisplay = attrName
		}
		if attrName == "" {
			attrName = attrDisplay
		}

		i, ok := index[setName]
		if !ok {
			i = len(sets)
			index[setName] = i
			sets = append(sets, CustomMetadataSet{
				Name:        setIdentifier(setName),
				DisplayName: setName,
			})
		}

		attrKey := setName + "|" + attrName
		if attrName == "" || seenAttr[attrKey] {
			continue
		}
		seenAttr[attrKey] = true
		sets[i].Attributes = append(sets[i].Attributes, CustomMetadataAttribute{
			Name:        attrName,
			DisplayName: attrDisplay,
			Type:        "STRING",
		})
	}

	return sets
}

func (b *Builder) discoverClassifications(ctx context.Context, database, schema string) []Classification {
	if !b.tableExists(ctx, database, schema, "TAG_RELATIONSHIP") {
		return nil
	}

	query := fmt.Sprintf(`
		SELECT
			TAGNAME,
			COUNT(DISTINCT ENTITYGUID) AS USAGE_COUNT
		FROM %s."TAG_RELATIONSHIP"
		WHERE TAGNAME IS NOT NULL
		GROUP BY TAGNAME
		ORDER BY USAGE_COUNT DESC, TAGNAME`,
		schemaRef(database, schema))

	records, err := b.query(ctx, query, "discover classifications")
	if err != nil {
		return nil
	}

	classifications := make([]Classification, 0, len(records))
	for _, rec := range records {
		name := rec.String("TAGNAME")
		if name == "" {
			continue
		}
		classifications = append(classifications, Classification{
			Name:       name,
			UsageCount: rec.Int("USAGE_COUNT"),
		})
	}
	return classifications
}

func (b *Builder) discoverDomains(ctx context.Context, database, schema string) []Domain {
	if !b.tableExists(ctx, database, schema, "ATLASGLOSSARY_ENTITY") {
		return nil
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT
			GUID,
			NAME,
			QUALIFIEDNAME
		FROM %s."ATLASGLOSSARY_ENTITY"
		WHERE STATUS = 'ACTIVE'
		ORDER BY NAME
		LIMIT 100`,
		schemaRef(database, schema))

	records, err := b.query(ctx, query, "discover domains")
	if err != nil {
		return nil
	}

	domains := make([]Domain, 0, len(records))
	for _, rec := range records {
		name := rec.String("NAME")
		if name == "" {
			name = "Unknown"
		}
		domains = append(domains, Domain{
			GUID:          rec.String("GUID"),
			Name:          name,
			QualifiedName: rec.String("QUALIFIEDNAME"),
		})
	}
	return domains
}

func (b *Builder) query(ctx context.Context, sql, what string) ([]warehouse.Record, error) {
	result, err := b.exec.Execute(ctx, sql)
	if err != nil {
		if b.log != nil {
			b.log.Warnf("%s failed: %v", what, err)
		}
		return nil, err
	}
	return warehouse.NormalizeRows(result)
}

func schemaRef(database, schema string) string {
	return warehouse.QuoteIdentifier(database) + "." + warehouse.QuoteIdentifier(schema)
}

func setIdentifier(display string) string {
	return strings.ToUpper(strings.ReplaceAll(display, " ", "_"))
}
