package handlers

import (
	"testing"

	"github.com/AloneGhost12/website/internal/models"
)

func countDefaults(addresses []models.Address) int {
	n := 0
	for _, a := range addresses {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAppendAddressClearsPriorDefault(t *testing.T) {
	existing := []models.Address{
		{ID: "a1", City: "Pune", IsDefault: true},
		{ID: "a2", City: "Delhi"},
	}

	out := appendAddress(existing, models.Address{ID: "a3", City: "Mumbai", IsDefault: true})

	if len(out) != 3 {
		t.Fatalf("expected 3 addresses, got %d", len(out))
	}
	if countDefaults(out) != 1 {
		t.Fatalf("expected exactly one default, got %d", countDefaults(out))
	}
	if !out[2].IsDefault {
		t.Fatal("expected the new address to be default")
	}
}

func TestAppendAddressNonDefaultKeepsExisting(t *testing.T) {
	existing := []models.Address{
		{ID: "a1", IsDefault: true},
	}

	out := appendAddress(existing, models.Address{ID: "a2"})

	if !out[0].IsDefault || out[1].IsDefault {
		t.Fatalf("expected existing default untouched, got %+v", out)
	}
}

func TestSetDefaultAddressExactlyOneDefault(t *testing.T) {
	addresses := []models.Address{
		{ID: "a1", IsDefault: true},
		{ID: "a2"},
		{ID: "a3", IsDefault: true},
	}

	out, found := setDefaultAddress(addresses, "a2")
	if !found {
		t.Fatal("expected address to be found")
	}
	if countDefaults(out) != 1 {
		t.Fatalf("expected exactly one default, got %d", countDefaults(out))
	}
	if !out[1].IsDefault {
		t.Fatal("expected a2 to be the default")
	}
}

func TestSetDefaultAddressMissingID(t *testing.T) {
	addresses := []models.Address{{ID: "a1"}}

	if _, found := setDefaultAddress(addresses, "nope"); found {
		t.Fatal("expected missing address to report not found")
	}
}

func TestRemoveAddress(t *testing.T) {
	addresses := []models.Address{
		{ID: "a1"},
		{ID: "a2"},
	}

	out, found := removeAddress(addresses, "a1")
	if !found {
		t.Fatal("expected address to be removed")
	}
	if len(out) != 1 || out[0].ID != "a2" {
		t.Fatalf("unexpected remaining addresses: %+v", out)
	}

	if _, found := removeAddress(addresses, "nope"); found {
		t.Fatal("expected missing address to report not found")
	}
}
