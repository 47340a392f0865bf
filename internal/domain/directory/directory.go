package directory

import "context"

// Service is the narrow contract the approval engine needs from the user/role
// subsystem. It deliberately hides the relational graph behind two lookups.
type Service interface {
	// FindEligibleApprovers returns the ids of active users holding any of the
	// given roles within the tenant.
	FindEligibleApprovers(ctx context.Context, tenantID string, roles []string) ([]string, error)
	// IsMember reports whether the user holds any of the given roles.
	IsMember(ctx context.Context, tenantID, userID string, roles []string) (bool, error)
}
