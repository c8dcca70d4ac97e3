package catalog

// builtinFields is the compiled-in governance field catalog. The canonical
// column is the name the lakehouse foundation reference uses; alternates cover
// the variants observed across tenant deployments (compact forms, legacy
// names, system-prefixed attributes).
var builtinFields = []FieldDefinition{
	// Identity
	{
		ID:              "guid",
		DisplayName:     "GUID",
		Description:     "Universal primary key for joins",
		Category:        "identity",
		CanonicalColumn: "GUID",
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 1.0, Required: true},
		},
	},
	{
		ID:              "asset_name",
		DisplayName:     "Asset Name",
		Description:     "Name of the asset",
		Category:        "identity",
		CanonicalColumn: "ASSET_NAME",
		AlternateNames:  []string{"NAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 1.0, Required: true},
		},
	},
	{
		ID:              "asset_type",
		DisplayName:     "Asset Type",
		Description:     "Type of asset (Table, View, Column, etc.)",
		Category:        "identity",
		CanonicalColumn: "ASSET_TYPE",
		AlternateNames:  []string{"TYPE_NAME", "TYPENAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 1.0},
		},
	},
	{
		ID:              "qualified_name",
		DisplayName:     "Qualified Name",
		Description:     "Fully qualified name of the asset",
		Category:        "identity",
		CanonicalColumn: "ASSET_QUALIFIED_NAME",
		AlternateNames:  []string{"QUALIFIED_NAME", "QUALIFIEDNAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 1.0},
		},
	},
	{
		ID:              "status",
		DisplayName:     "Status",
		Description:     "Asset status (ACTIVE, DELETED, etc.)",
		Category:        "identity",
		CanonicalColumn: "STATUS",
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 0.5},
		},
	},
	{
		ID:              "connector_name",
		DisplayName:     "Connector Name",
		Description:     "Name of the data source connector",
		Category:        "identity",
		CanonicalColumn: "CONNECTOR_NAME",
		AlternateNames:  []string{"CONNECTORNAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 0.5},
		},
	},

	// Ownership
	{
		ID:              "owner_users",
		DisplayName:     "Owner Users",
		Description:     "Individual users accountable for the asset",
		Category:        "ownership",
		CanonicalColumn: "OWNER_USERS",
		AlternateNames:  []string{"OWNERUSERS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalOwnership, Weight: 1.0, Required: true},
		},
	},
	{
		ID:              "owner_groups",
		DisplayName:     "Owner Groups",
		Description:     "Teams or groups accountable for the asset",
		Category:        "ownership",
		CanonicalColumn: "OWNER_GROUPS",
		AlternateNames:  []string{"OWNERGROUPS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalOwnership, Weight: 0.8},
		},
	},
	{
		ID:              "admin_users",
		DisplayName:     "Admin Users",
		Description:     "Users with administrative rights on the asset",
		Category:        "ownership",
		CanonicalColumn: "ADMIN_USERS",
		AlternateNames:  []string{"ADMINUSERS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalOwnership, Weight: 0.5},
		},
	},
	{
		ID:              "admin_groups",
		DisplayName:     "Admin Groups",
		Description:     "Groups with administrative rights on the asset",
		Category:        "ownership",
		CanonicalColumn: "ADMIN_GROUPS",
		AlternateNames:  []string{"ADMINGROUPS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalOwnership, Weight: 0.5},
		},
	},

	// Documentation
	{
		ID:              "description",
		DisplayName:     "Description",
		Description:     "Short prose description of the asset",
		Category:        "documentation",
		CanonicalColumn: "DESCRIPTION",
		AlternateNames:  []string{"USER_DESCRIPTION", "USERDESCRIPTION"},
		SignalContributions: []SignalContribution{
			{Signal: SignalDocumentation, Weight: 1.0, Required: true},
		},
	},
	{
		ID:              "readme",
		DisplayName:     "README",
		Description:     "Linked README documentation",
		Category:        "documentation",
		CanonicalColumn: "README",
		AlternateNames:  []string{"README_GUID", "READMEGUID"},
		SignalContributions: []SignalContribution{
			{Signal: SignalDocumentation, Weight: 0.7},
		},
	},
	{
		ID:              "glossary_terms",
		DisplayName:     "Glossary Terms",
		Description:     "Glossary terms linked to the asset",
		Category:        "documentation",
		CanonicalColumn: "TERM_GUIDS",
		AlternateNames:  []string{"TERMGUIDS", "MEANINGS", "ASSIGNEDTERMS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalDocumentation, Weight: 0.6},
			{Signal: SignalTrust, Weight: 0.3},
		},
	},

	// Lineage
	{
		ID:              "has_lineage",
		DisplayName:     "Has Lineage",
		Description:     "Asset has upstream or downstream lineage",
		Category:        "lineage",
		CanonicalColumn: "HAS_LINEAGE",
		AlternateNames:  []string{"HASLINEAGE", "__HASLINEAGE"},
		SignalContributions: []SignalContribution{
			{Signal: SignalLineage, Weight: 1.0, Required: true},
		},
	},
	{
		ID:              "is_primary_key",
		DisplayName:     "Is Primary Key",
		Description:     "Column participates in a primary key",
		Category:        "lineage",
		CanonicalColumn: "IS_PRIMARY_KEY",
		AlternateNames:  []string{"ISPRIMARYKEY"},
		SignalContributions: []SignalContribution{
			{Signal: SignalLineage, Weight: 0.3},
		},
	},
	{
		ID:              "is_foreign_key",
		DisplayName:     "Is Foreign Key",
		Description:     "Column participates in a foreign key",
		Category:        "lineage",
		CanonicalColumn: "IS_FOREIGN_KEY",
		AlternateNames:  []string{"ISFOREIGNKEY"},
		SignalContributions: []SignalContribution{
			{Signal: SignalLineage, Weight: 0.3},
		},
	},

	// Governance
	{
		ID:              "tags",
		DisplayName:     "Tags",
		Description:     "Tags assigned to the asset",
		Category:        "governance",
		CanonicalColumn: "TAGS",
		AlternateNames:  []string{"CLASSIFICATIONNAMES", "CLASSIFICATION_NAMES"},
		SignalContributions: []SignalContribution{
			{Signal: SignalTrust, Weight: 0.6},
		},
	},
	{
		ID:              "certificate_status",
		DisplayName:     "Certificate Status",
		Description:     "Certification status of the asset",
		Category:        "governance",
		CanonicalColumn: "CERTIFICATE_STATUS",
		AlternateNames:  []string{"CERTIFICATESTATUS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalTrust, Weight: 1.0, Required: true},
		},
	},
	{
		ID:              "certificate_message",
		DisplayName:     "Certificate Message",
		Description:     "Message attached to the certification",
		Category:        "governance",
		CanonicalColumn: "CERTIFICATE_STATUS_MESSAGE",
		AlternateNames:  []string{"CERTIFICATESTATUSMESSAGE"},
		SignalContributions: []SignalContribution{
			{Signal: SignalTrust, Weight: 0.3},
		},
	},
	{
		ID:              "policy_count",
		DisplayName:     "Policy Count",
		Description:     "Number of policies attached to the asset",
		Category:        "governance",
		CanonicalColumn: "ASSET_POLICIES_COUNT",
		AlternateNames:  []string{"ASSETPOLICIESCOUNT"},
		SignalContributions: []SignalContribution{
			{Signal: SignalTrust, Weight: 0.4},
		},
	},

	// Quality
	{
		ID:              "dq_soda_status",
		DisplayName:     "Soda DQ Status",
		Description:     "Soda data quality check status",
		Category:        "quality",
		CanonicalColumn: "ASSET_SODA_DQ_STATUS",
		AlternateNames:  []string{"ASSETSODADQSTATUS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalQuality, Weight: 0.8},
		},
	},
	{
		ID:              "mc_is_monitored",
		DisplayName:     "Monte Carlo Monitored",
		Description:     "Asset is monitored by Monte Carlo",
		Category:        "quality",
		CanonicalColumn: "ASSET_MC_IS_MONITORED",
		AlternateNames:  []string{"ASSETMCISMONITORED"},
		SignalContributions: []SignalContribution{
			{Signal: SignalQuality, Weight: 0.6},
		},
	},

	// Usage
	{
		ID:              "popularity_score",
		DisplayName:     "Popularity Score",
		Description:     "Usage popularity score",
		Category:        "usage",
		CanonicalColumn: "POPULARITY_SCORE",
		AlternateNames:  []string{"POPULARITYSCORE"},
		SignalContributions: []SignalContribution{
			{Signal: SignalUsage, Weight: 1.0},
		},
	},
	{
		ID:              "query_count",
		DisplayName:     "Query Count",
		Description:     "Number of queries executed against this asset",
		Category:        "usage",
		CanonicalColumn: "QUERY_COUNT",
		AlternateNames:  []string{"QUERYCOUNT"},
		SignalContributions: []SignalContribution{
			{Signal: SignalUsage, Weight: 0.8},
		},
	},
	{
		ID:              "query_user_count",
		DisplayName:     "Query User Count",
		Description:     "Number of unique users who queried this asset",
		Category:        "usage",
		CanonicalColumn: "QUERY_USER_COUNT",
		AlternateNames:  []string{"QUERYUSERCOUNT"},
		SignalContributions: []SignalContribution{
			{Signal: SignalUsage, Weight: 0.6},
		},
	},

	// Hierarchy
	{
		ID:              "connection_qualified_name",
		DisplayName:     "Connection Qualified Name",
		Category:        "hierarchy",
		CanonicalColumn: "CONNECTION_QUALIFIED_NAME",
		AlternateNames:  []string{"CONNECTIONQUALIFIEDNAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 0.2},
		},
	},
	{
		ID:              "database_qualified_name",
		DisplayName:     "Database Qualified Name",
		Category:        "hierarchy",
		CanonicalColumn: "DATABASE_QUALIFIED_NAME",
		AlternateNames:  []string{"DATABASEQUALIFIEDNAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 0.2},
		},
	},
	{
		ID:              "schema_qualified_name",
		DisplayName:     "Schema Qualified Name",
		Category:        "hierarchy",
		CanonicalColumn: "SCHEMA_QUALIFIED_NAME",
		AlternateNames:  []string{"SCHEMAQUALIFIEDNAME"},
		SignalContributions: []SignalContribution{
			{Signal: SignalCompleteness, Weight: 0.2},
		},
	},
	{
		ID:              "domain_guids",
		DisplayName:     "Domain GUIDs",
		Description:     "Domains the asset is assigned to",
		Category:        "hierarchy",
		CanonicalColumn: "DOMAIN_GUIDS",
		AlternateNames:  []string{"DOMAINGUIDS", "__DOMAINGUIDS"},
		SignalContributions: []SignalContribution{
			{Signal: SignalOwnership, Weight: 0.3},
			{Signal: SignalTrust, Weight: 0.2},
		},
	},

	// Lifecycle
	{
		ID:              "created_at",
		DisplayName:     "Created At",
		Description:     "Asset creation timestamp",
		Category:        "lifecycle",
		CanonicalColumn: "CREATE_TIME",
		AlternateNames:  []string{"CREATETIME", "__TIMESTAMP"},
		SignalContributions: []SignalContribution{
			{Signal: SignalFreshness, Weight: 0.5},
		},
	},
	{
		ID:              "updated_at",
		DisplayName:     "Updated At",
		Description:     "Asset last modification timestamp",
		Category:        "lifecycle",
		CanonicalColumn: "UPDATE_TIME",
		AlternateNames:  []string{"UPDATETIME", "__MODIFICATIONTIMESTAMP"},
		SignalContributions: []SignalContribution{
			{Signal: SignalFreshness, Weight: 1.0, Required: true},
		},
	},
}

// Builtin returns the compiled-in field catalog.
func Builtin() *Catalog {
	return MustNew(builtinFields)
}
