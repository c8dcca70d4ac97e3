package pivot

// The builtin library covers the governance breakdowns the workbench ships
// with. Templates reference canonical column names; the resolver swaps in
// whatever variant the tenant's warehouse actually has.

var builtinDimensions = []Dimension{
	{
		ID:         "connector",
		Title:      "Connector",
		Column:     "CONNECTOR_NAME",
		Alternates: []string{"CONNECTORNAME"},
	},
	{
		ID:         "asset_type",
		Title:      "Asset Type",
		Column:     "ASSET_TYPE",
		Alternates: []string{"TYPE_NAME", "TYPENAME"},
	},
	{
		ID:         "certificate",
		Title:      "Certificate Status",
		Column:     "CERTIFICATE_STATUS",
		Alternates: []string{"CERTIFICATESTATUS"},
		Default:    "NONE",
	},
	{
		ID:         "ownership",
		Title:      "Ownership",
		Column:     "OWNER_USERS",
		Alternates: []string{"OWNERUSERS"},
		ExtractFn:  "IFF({COL} IS NOT NULL AND ARRAY_SIZE({COL}) > 0, 'Owned', 'Unowned')",
	},
	{
		ID:         "created_month",
		Title:      "Created Month",
		Column:     "CREATE_TIME",
		Alternates: []string{"CREATETIME", "__TIMESTAMP"},
		ExtractFn:  "DATE_TRUNC('MONTH', TO_TIMESTAMP({COL}))",
	},
}

var builtinMeasures = []Measure{
	{
		ID:    "asset_count",
		Title: "Assets",
		Expr:  "COUNT(*)",
	},
	{
		ID:         "with_lineage",
		Title:      "With Lineage",
		Expr:       "COUNT_IF({COL} = TRUE)",
		Column:     "HAS_LINEAGE",
		Alternates: []string{"HASLINEAGE", "__HASLINEAGE"},
	},
	{
		ID:         "described",
		Title:      "Described",
		Expr:       "COUNT_IF({COL} IS NOT NULL AND CAST({COL} AS VARCHAR) <> '')",
		Column:     "DESCRIPTION",
		Alternates: []string{"USER_DESCRIPTION", "USERDESCRIPTION"},
	},
	{
		ID:         "owned",
		Title:      "Owned",
		Expr:       "COUNT_IF({COL} IS NOT NULL AND ARRAY_SIZE({COL}) > 0)",
		Column:     "OWNER_USERS",
		Alternates: []string{"OWNERUSERS"},
	},
	{
		ID:         "avg_popularity",
		Title:      "Avg Popularity",
		Expr:       "AVG({COL})",
		Column:     "POPULARITY_SCORE",
		Alternates: []string{"POPULARITYSCORE"},
	},
}

var builtinPivots = []PivotDefinition{
	{
		ID:            "assets_by_connector",
		Title:         "Assets by Connector",
		Description:   "Asset volume and lineage coverage per source connector.",
		RowDimensions: []string{"connector"},
		Measures:      []string{"asset_count", "with_lineage"},
		SQLTemplate: `SELECT
    COALESCE(CONNECTOR_NAME, 'Unknown') AS CONNECTOR,
    COUNT(*) AS ASSET_COUNT,
    COUNT_IF(HAS_LINEAGE = TRUE) AS WITH_LINEAGE
FROM {TABLE}
WHERE STATUS = 'ACTIVE'
GROUP BY 1
ORDER BY 2 DESC`,
	},
	{
		ID:            "documentation_by_type",
		Title:         "Documentation by Asset Type",
		Description:   "How well each asset type is described.",
		RowDimensions: []string{"asset_type"},
		Measures:      []string{"asset_count", "described"},
		SQLTemplate: `SELECT
    COALESCE(ASSET_TYPE, 'Unknown') AS ASSET_TYPE,
    COUNT(*) AS ASSET_COUNT,
    COUNT_IF(DESCRIPTION IS NOT NULL AND CAST(DESCRIPTION AS VARCHAR) <> '') AS DESCRIBED
FROM {TABLE}
WHERE STATUS = 'ACTIVE'
GROUP BY 1
ORDER BY 2 DESC`,
	},
	{
		ID:            "ownership_by_connector",
		Title:         "Ownership by Connector",
		Description:   "Owned versus unowned assets per connector.",
		RowDimensions: []string{"connector", "ownership"},
		Measures:      []string{"asset_count"},
		SQLTemplate: `SELECT
    COALESCE(CONNECTOR_NAME, 'Unknown') AS CONNECTOR,
    IFF(OWNER_USERS IS NOT NULL AND ARRAY_SIZE(OWNER_USERS) > 0, 'Owned', 'Unowned') AS OWNERSHIP,
    COUNT(*) AS ASSET_COUNT
FROM {TABLE}
WHERE STATUS = 'ACTIVE'
GROUP BY 1, 2
ORDER BY 1, 2`,
	},
	{
		ID:            "certification_by_type",
		Title:         "Certification by Asset Type",
		Description:   "Certificate status distribution per asset type.",
		RowDimensions: []string{"asset_type", "certificate"},
		Measures:      []string{"asset_count"},
		SQLTemplate: `SELECT
    COALESCE(ASSET_TYPE, 'Unknown') AS ASSET_TYPE,
    COALESCE(CERTIFICATE_STATUS, 'NONE') AS CERTIFICATE,
    COUNT(*) AS ASSET_COUNT
FROM {TABLE}
WHERE STATUS = 'ACTIVE'
GROUP BY 1, 2
ORDER BY 1, 2`,
	},
}

// Builtin returns the compiled-in pivot library.
func Builtin() *Library {
	lib, err := NewLibrary(builtinPivots, builtinDimensions, builtinMeasures)
	if err != nil {
		panic(err)
	}
	return lib
}
