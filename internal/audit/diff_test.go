package audit

import (
	"testing"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// ---------------------------------------------------------------------------
// Identity and nil handling
// ---------------------------------------------------------------------------

func TestDiff_EqualSnapshotsYieldEmptyDelta(t *testing.T) {
	snapshot := map[string]interface{}{
		"name":   "Acme",
		"active": false,
		"settings": map[string]interface{}{
			"backOrderEnabled": false,
			"metricsConfig": map[string]interface{}{
				"preferredWeightUnit": []interface{}{"kg"},
			},
		},
	}

	changes := Diff(snapshot, snapshot)
	if len(changes) != 0 {
		t.Errorf("Diff(x, x) = %v, want empty", changes)
	}
}

func TestDiff_BothNil(t *testing.T) {
	changes := Diff(nil, nil)
	if changes == nil {
		t.Fatal("Diff must return a non-nil map")
	}
	if len(changes) != 0 {
		t.Errorf("Diff(nil, nil) = %v, want empty", changes)
	}
}

func TestDiff_NilBeforeIsCreation(t *testing.T) {
	after := map[string]interface{}{
		"name": "Acme",
		"profile": map[string]interface{}{
			"country": "US",
		},
	}

	changes := Diff(nil, after)
	if len(changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2: %v", len(changes), changes)
	}
	if c := changes["name"]; c.From != nil || c.To != "Acme" {
		t.Errorf(`changes["name"] = %+v, want {nil, "Acme"}`, c)
	}
	if c := changes["profile.country"]; c.From != nil || c.To != "US" {
		t.Errorf(`changes["profile.country"] = %+v, want {nil, "US"}`, c)
	}
}

func TestDiff_NilAfterIsDeletion(t *testing.T) {
	before := map[string]interface{}{"name": "Acme"}

	changes := Diff(before, nil)
	if c := changes["name"]; c.From != "Acme" || c.To != nil {
		t.Errorf(`changes["name"] = %+v, want {"Acme", nil}`, c)
	}
}

// ---------------------------------------------------------------------------
// Path flattening and value comparison
// ---------------------------------------------------------------------------

func TestDiff_NestedChangeUsesDotPath(t *testing.T) {
	before := map[string]interface{}{
		"settings": map[string]interface{}{
			"activities": map[string]interface{}{
				"packing": map[string]interface{}{"boxSelection": false},
			},
		},
	}
	after := map[string]interface{}{
		"settings": map[string]interface{}{
			"activities": map[string]interface{}{
				"packing": map[string]interface{}{"boxSelection": true},
			},
		},
	}

	changes := Diff(before, after)
	if len(changes) != 1 {
		t.Fatalf("len(changes) = %d, want 1: %v", len(changes), changes)
	}
	c, ok := changes["settings.activities.packing.boxSelection"]
	if !ok {
		t.Fatalf("missing dot path entry: %v", changes)
	}
	if c.From != false || c.To != true {
		t.Errorf("change = %+v, want {false, true}", c)
	}
}

func TestDiff_ArraysCompareAtomically(t *testing.T) {
	before := map[string]interface{}{
		"typeOfCustomer": []interface{}{"3PL"},
	}
	after := map[string]interface{}{
		"typeOfCustomer": []interface{}{"3PL", "Brand"},
	}

	changes := Diff(before, after)
	c, ok := changes["typeOfCustomer"]
	if !ok {
		t.Fatalf("array change not recorded at the array path: %v", changes)
	}
	from, fromOK := c.From.([]interface{})
	to, toOK := c.To.([]interface{})
	if !fromOK || !toOK || len(from) != 1 || len(to) != 2 {
		t.Errorf("change = %+v, want whole-array before/after", c)
	}
}

func TestDiff_EqualArraysNotReported(t *testing.T) {
	before := map[string]interface{}{"tags": []interface{}{"a", "b"}}
	after := map[string]interface{}{"tags": []interface{}{"a", "b"}}

	if changes := Diff(before, after); len(changes) != 0 {
		t.Errorf("equal arrays reported as changed: %v", changes)
	}
}

func TestDiff_RemovedAndAddedLeaves(t *testing.T) {
	before := map[string]interface{}{
		"apiGateway": "https://old.example.com",
		"name":       "Acme",
	}
	after := map[string]interface{}{
		"cubeService": "https://cube.example.com",
		"name":        "Acme",
	}

	changes := Diff(before, after)
	if len(changes) != 2 {
		t.Fatalf("len(changes) = %d, want 2: %v", len(changes), changes)
	}
	if c := changes["apiGateway"]; c.From != "https://old.example.com" || c.To != nil {
		t.Errorf("removed leaf = %+v", c)
	}
	if c := changes["cubeService"]; c.From != nil || c.To != "https://cube.example.com" {
		t.Errorf("added leaf = %+v", c)
	}
}

// ---------------------------------------------------------------------------
// Symmetry
// ---------------------------------------------------------------------------

func TestDiff_SwappingArgumentsSwapsFromTo(t *testing.T) {
	a := map[string]interface{}{"active": false}
	b := map[string]interface{}{"active": true}

	forward := Diff(a, b)
	reverse := Diff(b, a)

	f := forward["active"]
	r := reverse["active"]
	if f.From != r.To || f.To != r.From {
		t.Errorf("forward = %+v, reverse = %+v, want mirrored", f, r)
	}
}

func TestDiff_ResultSlotsIntoAuditChanges(t *testing.T) {
	before := map[string]interface{}{"name": "Old"}
	after := map[string]interface{}{"name": "New"}

	changes := &models.AuditChanges{
		Before:   before,
		After:    after,
		Modified: Diff(before, after),
	}
	if len(changes.Modified) != 1 {
		t.Errorf("Modified = %v, want one entry", changes.Modified)
	}
}
