package repository

import "testing"

func TestConversationConflictServiceScoped(t *testing.T) {
	id := uint(5)
	oc := conversationConflict(&id)

	if !oc.DoNothing {
		t.Fatal("arbiter must be DO NOTHING")
	}
	if len(oc.Columns) != 3 {
		t.Fatalf("service-scoped threads conflict on the full triple, got %d columns", len(oc.Columns))
	}
	if len(oc.TargetWhere.Exprs) != 0 {
		t.Fatal("triple arbiter must not carry a partial-index predicate")
	}
}

func TestConversationConflictGeneralThread(t *testing.T) {
	oc := conversationConflict(nil)

	if !oc.DoNothing {
		t.Fatal("arbiter must be DO NOTHING")
	}

	// NULL never conflicts with NULL under the triple index, so general
	// threads must target the partial index on the pair instead.
	if len(oc.Columns) != 2 {
		t.Fatalf("general threads conflict on (customer, provider), got %d columns", len(oc.Columns))
	}
	if oc.Columns[0].Name != "customer_id" || oc.Columns[1].Name != "provider_id" {
		t.Fatalf("unexpected arbiter columns: %+v", oc.Columns)
	}
	if len(oc.TargetWhere.Exprs) == 0 {
		t.Fatal("general arbiter must carry the service_id IS NULL predicate")
	}
}
