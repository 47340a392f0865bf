package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogProductExists(t *testing.T) {
	db := openTestDB(t)
	repo := NewCatalogRepository(db)

	seed := []productRow{
		{TenantID: "t1", ProductID: "p1", Name: "Widget", Status: "active"},
		{TenantID: "t1", ProductID: "p2", Name: "Gadget", Status: "inactive"},
		{TenantID: "t2", ProductID: "p3", Name: "Gizmo", Status: "active"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	tests := []struct {
		name      string
		tenantID  string
		productID string
		want      bool
	}{
		{name: "active product", tenantID: "t1", productID: "p1", want: true},
		{name: "inactive product", tenantID: "t1", productID: "p2", want: false},
		{name: "unknown product", tenantID: "t1", productID: "p9", want: false},
		{name: "other tenant", tenantID: "t1", productID: "p3", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := repo.ProductExists(context.Background(), tc.tenantID, tc.productID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestCatalogStoreExists(t *testing.T) {
	db := openTestDB(t)
	repo := NewCatalogRepository(db)

	seed := []storeRow{
		{TenantID: "t1", StoreID: "s1", Name: "Downtown", Status: "active"},
		{TenantID: "t1", StoreID: "s2", Name: "Closed Branch", Status: "inactive"},
		{TenantID: "t2", StoreID: "s3", Name: "Uptown", Status: "active"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	tests := []struct {
		name     string
		tenantID string
		storeID  string
		want     bool
	}{
		{name: "active store", tenantID: "t1", storeID: "s1", want: true},
		{name: "inactive store", tenantID: "t1", storeID: "s2", want: false},
		{name: "unknown store", tenantID: "t1", storeID: "s9", want: false},
		{name: "other tenant", tenantID: "t1", storeID: "s3", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := repo.StoreExists(context.Background(), tc.tenantID, tc.storeID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
