// Package models - tenant_defaults.go holds the baked-in default feature set,
// module list, and settings object applied to every new tenant. Callers override
// individual top-level keys; the merge is shallow by design and must stay that
// way — a nested caller value replaces the whole default subtree for that key.
package models

// DefaultFeatures returns the feature flags a new tenant starts with.
func DefaultFeatures() map[string]interface{} {
	return map[string]interface{}{
		"combinedPackAndPrep":            false,
		"combinedReceiveAndPrep":         false,
		"dropship":                       false,
		"maximumPalletClearanceStrategy": false,
		"multiplePickingStrategies":      false,
		"optimizedBatching":              false,
		"rateShopping":                   false,
	}
}

// DefaultModules returns the platform module toggles a new tenant starts with.
func DefaultModules() []TenantModule {
	return []TenantModule{
		{Name: "Receiving", Enabled: true},
		{Name: "Picking", Enabled: true},
		{Name: "Packing", Enabled: true},
		{Name: "Shipping", Enabled: true},
		{Name: "Inventory", Enabled: true},
		{Name: "Reporting", Enabled: false},
	}
}

// DefaultSettings returns the operational settings a new tenant starts with.
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"activities": map[string]interface{}{
			"packing": map[string]interface{}{
				"boxSelection": false,
			},
			"receiving": map[string]interface{}{
				"putawayBinLocation": false,
				"poEnabled":          false,
			},
		},
		"allowConstituentsPickingForBundleOrders": false,
		"backOrderEnabled":                        false,
		"blockParentLocations":                    false,
		"enableLocationValidation":                false,
		"isSTOEnabled":                            false,
		"metricsConfig": map[string]interface{}{
			"preferredDimensionUnit": []interface{}{"cm"},
			"preferredWeightUnit":    []interface{}{"kg"},
		},
		"multiAccountIntegrationSupportEnabled": false,
		"isOutboundPlanningEnabled":             false,
	}
}

// DefaultTypeOfCustomer returns the customer-type classification applied when
// the caller supplies none.
func DefaultTypeOfCustomer() []string {
	return []string{"3PL"}
}

// MergeShallow lays caller overrides over defaults one top-level key at a time.
// Caller values win per key; nested maps are not merged recursively.
func MergeShallow(defaults, overrides map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
