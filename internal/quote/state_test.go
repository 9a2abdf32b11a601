package quote

import (
	"errors"
	"testing"
)

func validCustomer() Customer {
	return Customer{Name: "Jo Smith", Address: "1 High St", Phone: "0400 000 000"}
}

func pricedItem(t *testing.T, location string) LineItem {
	t.Helper()
	in := rollerInput()
	in.Location = location
	item, err := BuildItem(in)
	if err != nil {
		t.Fatalf("BuildItem: %v", err)
	}
	return item
}

func mustApply(t *testing.T, s State, a Action) State {
	t.Helper()
	next, _, err := Apply(s, a)
	if err != nil {
		t.Fatalf("Apply(%T) returned error: %v", a, err)
	}
	return next
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := NewState("QU000001")
	s = mustApply(t, s, AddItem{Item: pricedItem(t, "Kitchen")})

	next := mustApply(t, s, AddItem{Item: pricedItem(t, "Study")})
	if len(s.Items) != 1 || len(next.Items) != 2 {
		t.Fatalf("expected original 1 item and next 2, got %d and %d", len(s.Items), len(next.Items))
	}

	updated := mustApply(t, next, UpdateItem{Index: 0, Item: pricedItem(t, "Laundry")})
	if next.Items[0].Location != "Kitchen" || updated.Items[0].Location != "Laundry" {
		t.Fatal("UpdateItem modified the previous state's items")
	}

	deleted := mustApply(t, updated, DeleteItem{Index: 0})
	if len(updated.Items) != 2 || len(deleted.Items) != 1 || deleted.Items[0].Location != "Study" {
		t.Fatalf("unexpected delete result: %+v", deleted.Items)
	}
}

func TestApply_ErrorReturnsOriginalState(t *testing.T) {
	s := NewState("QU000001")
	got, diff, err := Apply(s, DeleteItem{Index: 0})
	if !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if got.QuoteNumber != s.QuoteNumber || len(got.Items) != 0 || diff != (Diff{}) {
		t.Fatalf("state or diff changed on error: %+v %+v", got, diff)
	}

	if _, _, err := Apply(s, nil); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestApply_SetCustomer(t *testing.T) {
	s := NewState("QU000001")
	if _, _, err := Apply(s, SetCustomer{Customer: Customer{Name: "Jo"}}); err == nil {
		t.Fatal("incomplete customer accepted")
	}

	next, diff, err := Apply(s, SetCustomer{Customer: Customer{Name: " Jo ", Address: "1 High St", Phone: "0400"}})
	if err != nil {
		t.Fatalf("SetCustomer: %v", err)
	}
	if next.Customer.Name != "Jo" || diff.Kind != DiffCustomer {
		t.Fatalf("unexpected customer result: %+v %+v", next.Customer, diff)
	}
}

func TestApply_RejectsUnpricedItems(t *testing.T) {
	s := NewState("QU000001")
	item := pricedItem(t, "Kitchen")
	item.UnitPrice = 0
	if _, _, err := Apply(s, AddItem{Item: item}); !errors.Is(err, ErrUnpricedItem) {
		t.Fatalf("expected ErrUnpricedItem, got %v", err)
	}
}

func TestApply_SubmitItemAddsOrUpdates(t *testing.T) {
	s := NewState("QU000001")
	s = mustApply(t, s, SubmitItem{Item: pricedItem(t, "Kitchen")})
	s = mustApply(t, s, SubmitItem{Item: pricedItem(t, "Study")})
	s = mustApply(t, s, BeginEdit{Index: 0})

	if item, ok := s.EditingItem(); !ok || item.Location != "Kitchen" {
		t.Fatalf("expected to edit Kitchen, got %+v (%v)", item, ok)
	}

	next, diff, err := Apply(s, SubmitItem{Item: pricedItem(t, "Dining")})
	if err != nil {
		t.Fatalf("SubmitItem while editing: %v", err)
	}
	if diff.Kind != DiffItemUpdated || diff.Index != 0 || diff.ItemCount != 2 {
		t.Fatalf("unexpected diff: %+v", diff)
	}
	if next.Editing() || next.Items[0].Location != "Dining" || len(next.Items) != 2 {
		t.Fatalf("unexpected state after edit: %+v", next)
	}
}

func TestApply_DeleteAdjustsEditingIndex(t *testing.T) {
	s := NewState("QU000001")
	for _, loc := range []string{"Kitchen", "Study", "Dining"} {
		s = mustApply(t, s, AddItem{Item: pricedItem(t, loc)})
	}

	editingLater := mustApply(t, s, BeginEdit{Index: 2})
	afterDelete := mustApply(t, editingLater, DeleteItem{Index: 0})
	if afterDelete.EditingIndex != 1 {
		t.Fatalf("editing index = %d, want 1", afterDelete.EditingIndex)
	}
	if item, _ := afterDelete.EditingItem(); item.Location != "Dining" {
		t.Fatalf("edit target moved to %q", item.Location)
	}

	editingSame := mustApply(t, s, BeginEdit{Index: 1})
	cleared := mustApply(t, editingSame, DeleteItem{Index: 1})
	if cleared.Editing() {
		t.Fatal("deleting the edited item should end the edit")
	}
}

func TestApply_CancelEdit(t *testing.T) {
	s := mustApply(t, NewState("QU000001"), AddItem{Item: pricedItem(t, "Kitchen")})
	s = mustApply(t, s, BeginEdit{Index: 0})
	s = mustApply(t, s, CancelEdit{})
	if s.Editing() {
		t.Fatal("CancelEdit left the edit open")
	}
	if _, _, err := Apply(s, BeginEdit{Index: 3}); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestApply_StepGuards(t *testing.T) {
	s := NewState("QU000001")
	if _, _, err := Apply(s, SetStep{Step: StepItems}); !errors.Is(err, ErrCustomerRequired) {
		t.Fatalf("expected ErrCustomerRequired, got %v", err)
	}

	s = mustApply(t, s, SetCustomer{Customer: validCustomer()})
	s = mustApply(t, s, SetStep{Step: StepItems})
	if _, _, err := Apply(s, SetStep{Step: StepReview}); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	if _, _, err := Apply(s, SetStep{Step: "checkout"}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}

	s = mustApply(t, s, AddItem{Item: pricedItem(t, "Kitchen")})
	s = mustApply(t, s, SetStep{Step: StepQuotation})
	if s.Step != StepQuotation {
		t.Fatalf("step = %q", s.Step)
	}
}

func TestApply_ViewModeAndReset(t *testing.T) {
	s := mustApply(t, NewState("QU000001"), SetViewMode{Mode: ViewInternal})
	if s.ViewMode != ViewInternal {
		t.Fatalf("view mode = %q", s.ViewMode)
	}
	if _, _, err := Apply(s, SetViewMode{Mode: "print"}); !errors.Is(err, ErrInvalidViewMode) {
		t.Fatalf("expected ErrInvalidViewMode, got %v", err)
	}

	s = mustApply(t, s, AddItem{Item: pricedItem(t, "Kitchen")})
	reset := mustApply(t, s, Reset{QuoteNumber: "QU000002"})
	if reset.QuoteNumber != "QU000002" || len(reset.Items) != 0 || reset.ViewMode != ViewCustomer || reset.Step != StepCustomer {
		t.Fatalf("unexpected reset state: %+v", reset)
	}
}
