package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RolePermissionsKey returns the cache key for a role's resolved permission names.
func (r *CacheKeyStruct) RolePermissionsKey(roleID int) string {
	return fmt.Sprintf("perms:role:%d", roleID)
}

// ActiveCampaignsKey returns the cache key for the public active-campaign listing.
func (r *CacheKeyStruct) ActiveCampaignsKey() string {
	return "campaigns:active"
}

var CacheKey = NewCacheKeyStruct()
