package cli

import "testing"

func TestParseItems(t *testing.T) {
	items, err := parseItems([]string{"burger:2", "fries", "iced tea:1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	if items[0].Name != "burger" || items[0].Quantity != 2 {
		t.Errorf("unexpected item: %+v", items[0])
	}
	// Без количества — по умолчанию 1
	if items[1].Name != "fries" || items[1].Quantity != 1 {
		t.Errorf("unexpected item: %+v", items[1])
	}
	if items[2].Name != "iced tea" || items[2].Quantity != 1 {
		t.Errorf("unexpected item: %+v", items[2])
	}
}

func TestParseItems_Invalid(t *testing.T) {
	for _, raw := range []string{"burger:zero", "burger:-1", "burger:0", ":2"} {
		if _, err := parseItems([]string{raw}); err == nil {
			t.Errorf("%q should be rejected", raw)
		}
	}
}
