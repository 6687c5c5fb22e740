package content

import (
	"strings"
	"testing"
)

// TestValidate is the build-time totality check for the shipped tables: every
// sub-category must resolve to a detail body and every category to a helpline
// block.
func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("shipped content tables failed validation: %v", err)
	}
}

func TestCategories_FixedSet(t *testing.T) {
	cats := Categories()
	if len(cats) != 3 {
		t.Fatalf("expected exactly 3 categories, got %d", len(cats))
	}
	wantKeys := []string{"mental", "sexual", "drugs"}
	for i, key := range wantKeys {
		if cats[i].Key != key {
			t.Errorf("category %d: expected key %q, got %q", i, key, cats[i].Key)
		}
		if cats[i].Label == "" || cats[i].IntroReply == "" {
			t.Errorf("category %q: label and intro reply must be non-empty", key)
		}
	}
}

func TestCategoryByKey(t *testing.T) {
	cat, ok := CategoryByKey("mental")
	if !ok {
		t.Fatalf("expected 'mental' to resolve")
	}
	if cat.Label != "Mental Health" {
		t.Errorf("expected label 'Mental Health', got %q", cat.Label)
	}
	if _, ok := CategoryByKey("unknown"); ok {
		t.Errorf("unknown key must not resolve")
	}
}

func TestSubCategoryLookups(t *testing.T) {
	subs, ok := SubCategoriesFor("mental")
	if !ok || len(subs) == 0 {
		t.Fatalf("expected sub-categories under 'mental'")
	}

	sub, ok := SubCategoryByLabel("mental", "Anxiety")
	if !ok {
		t.Fatalf("expected Anxiety under 'mental'")
	}
	if !strings.Contains(sub.BotReply, "Would you like more information") {
		t.Errorf("sub-category reply should end with an offer for detail, got %q", sub.BotReply)
	}

	if _, ok := SubCategoryByLabel("drugs", "Anxiety"); ok {
		t.Errorf("Anxiety must not resolve under 'drugs'")
	}
}

func TestHelplines_ContainDialableNumbers(t *testing.T) {
	block, ok := Helpline("mental")
	if !ok {
		t.Fatalf("expected helpline block for 'mental'")
	}
	if !strings.Contains(block, "988") {
		t.Errorf("mental helpline block should carry the 988 short code, got %q", block)
	}
}

func TestReadOnlyAccessors(t *testing.T) {
	cats := Categories()
	cats[0].Label = "mutated"
	if fresh := Categories(); fresh[0].Label == "mutated" {
		t.Errorf("Categories must return a detached copy")
	}

	subs, _ := SubCategoriesFor("mental")
	subs[0].Label = "mutated"
	if fresh, _ := SubCategoriesFor("mental"); fresh[0].Label == "mutated" {
		t.Errorf("SubCategoriesFor must return a detached copy")
	}
}
