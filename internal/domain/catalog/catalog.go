package catalog

import "context"

// Service covers the existence checks the transfer engine needs from the
// catalog and store subsystems. Full catalog CRUD lives elsewhere.
type Service interface {
	ProductExists(ctx context.Context, tenantID, productID string) (bool, error)
	StoreExists(ctx context.Context, tenantID, storeID string) (bool, error)
}
