package resolver

// Mode selects the deployment pattern for an entire resolution run.
// It is chosen once per deployment, never per project.
type Mode string

const (
	// ModeExisting is the bring-your-own-resource pattern: every connection
	// points at a resource that already exists outside this tool's control.
	ModeExisting Mode = "byor"
	// ModeNew is the auto-provisioned pattern: every connection names a
	// resource-map key, and the resolved tables drive creation of new
	// backing resources, one per distinct key.
	ModeNew Mode = "new"
)

// ParseMode converts a config/flag string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeExisting, ModeNew:
		return Mode(s), true
	}
	return "", false
}

// Category identifies one of the four backing-resource kinds a project
// may connect to.
type Category string

const (
	CategoryStorageAccount Category = "storage_account"
	CategoryCosmosDB       Category = "cosmos_db"
	CategoryAISearch       Category = "ai_search"
	CategoryKeyVault       Category = "key_vault"
)

// SharedKeyVaultIdentity is the fixed identity of the single account-scoped
// key vault created in ModeNew. The vault is shared by every project
// regardless of how many projects the deployment contains.
const SharedKeyVaultIdentity = "shared"

// Categories returns all resource categories in stable order.
func Categories() []Category {
	return []Category{
		CategoryStorageAccount,
		CategoryCosmosDB,
		CategoryAISearch,
		CategoryKeyVault,
	}
}

// Connection is a project's binding to one backing resource category.
// Exactly one of the two fields is expected to be set, matching the
// selected Mode; which one is enforced by CheckMode.
type Connection struct {
	// ExistingResourceID is the full ARM resource id of a resource supplied
	// by the caller (ModeExisting).
	ExistingResourceID string
	// NewResourceMapKey is a caller-chosen label grouping the projects that
	// share one freshly provisioned resource (ModeNew).
	NewResourceMapKey string
}

// Project is one AI Foundry project as declared in the deployment input.
// Projects are read-only during resolution.
type Project struct {
	Name              string
	Description       string
	CreateConnections bool
	// Connections maps category to binding. A missing or nil entry means
	// the project has no connection of that category.
	Connections map[Category]*Connection
}

// Settings carries the category-wide options stamped onto every definition.
type Settings struct {
	EnableDiagnostics bool
	// Strict promotes an ExistingResourceID that is present but empty from
	// "not configured" to a configuration error.
	Strict bool
}

// Definition is one entry of a resolved table: the deduplication identity
// plus the settings the provisioning modules need for that resource.
type Definition struct {
	Identity          string `json:"identity"`
	EnableDiagnostics bool   `json:"enable_diagnostics"`
}

// Tables holds the resolver output, one definition table per category,
// keyed by identity.
type Tables map[Category]map[string]Definition
