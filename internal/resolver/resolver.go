package resolver

import (
	"fmt"
	"sort"
)

// ExtractIdentities walks the project map and returns the distinct
// backing-resource identities referenced for one category.
//
// A project contributes nothing when CreateConnections is false or when it
// has no connection for the category. In ModeExisting the identity is the
// connection's ExistingResourceID; an empty id is treated as "not
// configured" and skipped. In ModeNew the identity is the connection's
// NewResourceMapKey, falling back to the project's own map key so a project
// without an explicit key gets a dedicated resource.
//
// Projects are visited in sorted key order so that the first occurrence of
// a shared identity is deterministic. The returned slice is deduplicated;
// callers must not rely on its order beyond that.
func ExtractIdentities(projects map[string]Project, cat Category, mode Mode) []string {
	keys := sortedKeys(projects)

	var identities []string
	seen := make(map[string]bool)

	for _, key := range keys {
		p := projects[key]
		if !p.CreateConnections {
			continue
		}
		conn := p.Connections[cat]
		if conn == nil {
			continue
		}

		var identity string
		switch mode {
		case ModeExisting:
			identity = conn.ExistingResourceID
			if identity == "" {
				// Not configured, skip silently. Strict handling of this
				// case happens in Resolve before extraction runs.
				continue
			}
		case ModeNew:
			identity = conn.NewResourceMapKey
			if identity == "" {
				identity = key
			}
		default:
			continue
		}

		if seen[identity] {
			continue
		}
		seen[identity] = true
		identities = append(identities, identity)
	}

	return identities
}

// Materialize expands a set of identities into a definition table. Every
// identity gets exactly one entry; on duplicates the first occurrence wins.
// Empty identities never produce an entry.
func Materialize(identities []string, settings Settings) map[string]Definition {
	defs := make(map[string]Definition, len(identities))
	for _, identity := range identities {
		if identity == "" {
			continue
		}
		if _, exists := defs[identity]; exists {
			continue
		}
		defs[identity] = Definition{
			Identity:          identity,
			EnableDiagnostics: settings.EnableDiagnostics,
		}
	}
	return defs
}

// Resolve produces the four definition tables for a deployment. It fails
// fast, before any table is built, when the input mixes modes or (under
// Settings.Strict) when an existing-resource connection carries an empty id.
//
// In ModeNew the key vault table is always the single shared entry: the
// backing secret store is account-scoped in that topology, not
// project-scoped.
//
// Resolve is a pure function of its arguments and is safe to call
// concurrently.
func Resolve(projects map[string]Project, mode Mode, settings Settings) (Tables, error) {
	if err := CheckMode(projects, mode); err != nil {
		return nil, err
	}

	if settings.Strict && mode == ModeExisting {
		if err := checkEmptyIdentities(projects); err != nil {
			return nil, err
		}
	}

	tables := make(Tables, len(Categories()))
	for _, cat := range Categories() {
		if mode == ModeNew && cat == CategoryKeyVault {
			tables[cat] = map[string]Definition{
				SharedKeyVaultIdentity: {
					Identity:          SharedKeyVaultIdentity,
					EnableDiagnostics: settings.EnableDiagnostics,
				},
			}
			continue
		}
		tables[cat] = Materialize(ExtractIdentities(projects, cat, mode), settings)
	}

	return tables, nil
}

// CheckMode verifies that every connection across every project matches the
// selected mode. A connection that sets both identity fields, or that sets
// the other mode's field, is a caller configuration mistake; silently
// dropping it could mask a typo that leads to an unintended shared resource.
func CheckMode(projects map[string]Project, mode Mode) error {
	for _, key := range sortedKeys(projects) {
		p := projects[key]
		for _, cat := range Categories() {
			conn := p.Connections[cat]
			if conn == nil {
				continue
			}

			if conn.ExistingResourceID != "" && conn.NewResourceMapKey != "" {
				return fmt.Errorf("project %q: %s connection sets both existing_resource_id and new_resource_map_key", key, cat)
			}

			switch mode {
			case ModeExisting:
				if conn.NewResourceMapKey != "" {
					return fmt.Errorf("project %q: %s connection sets new_resource_map_key but the deployment mode is %q", key, cat, mode)
				}
			case ModeNew:
				if conn.ExistingResourceID != "" {
					return fmt.Errorf("project %q: %s connection sets existing_resource_id but the deployment mode is %q", key, cat, mode)
				}
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}
		}
	}
	return nil
}

// checkEmptyIdentities rejects connections that would be silently filtered
// in lenient mode: present, connecting, but with no identity field at all.
func checkEmptyIdentities(projects map[string]Project) error {
	for _, key := range sortedKeys(projects) {
		p := projects[key]
		if !p.CreateConnections {
			continue
		}
		for _, cat := range Categories() {
			conn := p.Connections[cat]
			if conn == nil {
				continue
			}
			if conn.ExistingResourceID == "" && conn.NewResourceMapKey == "" {
				return fmt.Errorf("project %q: %s connection has no existing_resource_id (strict mode)", key, cat)
			}
		}
	}
	return nil
}

// IdentityFor reports the identity a single project contributes for a
// category, mirroring ExtractIdentities for one project. The second return
// is false when the project contributes nothing.
func IdentityFor(key string, p Project, cat Category, mode Mode) (string, bool) {
	if !p.CreateConnections {
		return "", false
	}
	conn := p.Connections[cat]
	if conn == nil {
		return "", false
	}
	switch mode {
	case ModeExisting:
		if conn.ExistingResourceID == "" {
			return "", false
		}
		return conn.ExistingResourceID, true
	case ModeNew:
		if conn.NewResourceMapKey == "" {
			return key, true
		}
		return conn.NewResourceMapKey, true
	}
	return "", false
}

func sortedKeys(projects map[string]Project) []string {
	keys := make([]string, 0, len(projects))
	for k := range projects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
