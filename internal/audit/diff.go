// Package audit records every mutation applied to a tenant as an immutable trail
// entry, computes field-level deltas between entity snapshots, and optionally
// ships entries to external destinations (file, webhook) for compliance
// retention. The trail rows live next to the tenant data and take part in the
// provisioning transactions; shipping is best-effort and happens only after a
// successful commit.
package audit

import (
	"reflect"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// Diff computes the field-level delta between two entity snapshots. Keys of the
// result are dot-separated paths to leaf fields; arrays compare as atomic
// values. A nil before marks every leaf of after as created (From nil); a nil
// after marks every leaf of before as deleted (To nil); both nil yields an
// empty delta. The result never contains entries for equal leaves.
func Diff(before, after map[string]interface{}) map[string]models.AuditChange {
	changes := make(map[string]models.AuditChange)
	if before == nil && after == nil {
		return changes
	}

	flatBefore := make(map[string]interface{})
	flatAfter := make(map[string]interface{})
	flatten("", before, flatBefore)
	flatten("", after, flatAfter)

	for path, fromValue := range flatBefore {
		toValue, present := flatAfter[path]
		if !present {
			changes[path] = models.AuditChange{From: fromValue, To: nil}
			continue
		}
		if !deepEqual(fromValue, toValue) {
			changes[path] = models.AuditChange{From: fromValue, To: toValue}
		}
	}

	for path, toValue := range flatAfter {
		if _, present := flatBefore[path]; !present {
			changes[path] = models.AuditChange{From: nil, To: toValue}
		}
	}

	return changes
}

// flatten walks a snapshot and records every leaf under its dot path. Nested
// maps recurse; everything else, arrays included, is a leaf.
func flatten(prefix string, value map[string]interface{}, out map[string]interface{}) {
	for key, v := range value {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(path, nested, out)
			continue
		}
		out[path] = v
	}
}

// deepEqual compares two leaf values: maps recursively by key, slices
// element-wise, everything else by reflect.DeepEqual.
func deepEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bw, present := bv[k]
			if !present || !deepEqual(v, bw) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
