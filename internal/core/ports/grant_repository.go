package ports

import "context"

// GrantRepository resolves role→module permission grants. Pure reads;
// both methods ignore soft-deleted grants and roles.
type GrantRepository interface {
	// ModulesForRole returns the ordered module names granted to the
	// role. An empty roleID yields an empty list, not an error.
	ModulesForRole(ctx context.Context, roleID string) ([]string, error)

	// RoleName returns the live role's display name, or
	// domain.RoleNameCustomer when roleID is empty or the role is gone.
	RoleName(ctx context.Context, roleID string) (string, error)
}
