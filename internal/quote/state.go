package quote

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidIndex     = errors.New("invalid item index")
	ErrInvalidStep      = errors.New("invalid step")
	ErrInvalidViewMode  = errors.New("view mode must be customer or internal")
	ErrCustomerRequired = errors.New("customer details are required")
	ErrNoItems          = errors.New("add at least one item first")
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnpricedItem     = errors.New("item has no price")
)

// Step is a section of the quoting flow.
type Step string

const (
	StepCustomer  Step = "customer"
	StepItems     Step = "items"
	StepReview    Step = "review"
	StepQuotation Step = "quotation"
)

// ParseStep validates a step name.
func ParseStep(raw string) (Step, error) {
	switch s := Step(raw); s {
	case StepCustomer, StepItems, StepReview, StepQuotation:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStep, raw)
}

// ViewMode selects between the customer-facing and internal quotation.
type ViewMode string

const (
	ViewCustomer ViewMode = "customer"
	ViewInternal ViewMode = "internal"
)

// ParseViewMode validates a view mode name.
func ParseViewMode(raw string) (ViewMode, error) {
	switch m := ViewMode(raw); m {
	case ViewCustomer, ViewInternal:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, raw)
}

// NoEdit is the EditingIndex when no item is being edited.
const NoEdit = -1

// State is one quoting session. It is treated as a value: Apply never modifies the state it
// is given.
type State struct {
	Customer     Customer
	Items        []LineItem
	Step         Step
	QuoteNumber  string
	EditingIndex int
	ViewMode     ViewMode
}

// NewState starts a session with the given quote number.
func NewState(quoteNumber string) State {
	return State{
		Items:        []LineItem{},
		Step:         StepCustomer,
		QuoteNumber:  quoteNumber,
		EditingIndex: NoEdit,
		ViewMode:     ViewCustomer,
	}
}

// Editing reports whether an item is being edited.
func (s State) Editing() bool {
	return s.EditingIndex != NoEdit
}

// EditingItem returns the item being edited.
func (s State) EditingItem() (LineItem, bool) {
	if !s.Editing() || s.EditingIndex >= len(s.Items) {
		return LineItem{}, false
	}
	return s.Items[s.EditingIndex], true
}

// DiffKind names what an action changed.
type DiffKind string

const (
	DiffCustomer    DiffKind = "customer"
	DiffItemAdded   DiffKind = "item_added"
	DiffItemUpdated DiffKind = "item_updated"
	DiffItemDeleted DiffKind = "item_deleted"
	DiffEditing     DiffKind = "editing"
	DiffStep        DiffKind = "step"
	DiffViewMode    DiffKind = "view_mode"
	DiffReset       DiffKind = "reset"
)

// Diff describes the change one action made.
type Diff struct {
	Kind      DiffKind `json:"kind"`
	Index     int      `json:"index"`
	ItemCount int      `json:"itemCount"`
	Step      Step     `json:"step"`
	ViewMode  ViewMode `json:"viewMode"`
}

// Action is a state transition understood by Apply.
type Action interface {
	apply(State) (State, Diff, error)
}

type (
	// SetCustomer replaces the customer record after validation.
	SetCustomer struct{ Customer Customer }
	// SubmitItem adds the item, or replaces the item being edited and ends the edit.
	SubmitItem struct{ Item LineItem }
	// AddItem appends an item.
	AddItem struct{ Item LineItem }
	// UpdateItem replaces the item at Index.
	UpdateItem struct {
		Index int
		Item  LineItem
	}
	// DeleteItem removes the item at Index.
	DeleteItem struct{ Index int }
	// BeginEdit marks the item at Index as being edited.
	BeginEdit struct{ Index int }
	// CancelEdit ends editing without changes.
	CancelEdit struct{}
	// SetStep moves the flow to Step.
	SetStep struct{ Step Step }
	// SetViewMode switches the quotation view.
	SetViewMode struct{ Mode ViewMode }
	// Reset starts over with a new quote number.
	Reset struct{ QuoteNumber string }
)

// Apply runs a against s and returns the new state. On error the original state is returned
// untouched.
func Apply(s State, a Action) (State, Diff, error) {
	if a == nil {
		return s, Diff{}, ErrUnknownAction
	}
	next, diff, err := a.apply(s)
	if err != nil {
		return s, Diff{}, err
	}
	diff.ItemCount = len(next.Items)
	diff.Step = next.Step
	diff.ViewMode = next.ViewMode
	return next, diff, nil
}

func (a SetCustomer) apply(s State) (State, Diff, error) {
	c := a.Customer.Normalize()
	if err := c.Validate(); err != nil {
		return s, Diff{}, err
	}
	s.Customer = c
	return s, Diff{Kind: DiffCustomer, Index: NoEdit}, nil
}

func (a SubmitItem) apply(s State) (State, Diff, error) {
	if s.Editing() {
		next, diff, err := UpdateItem{Index: s.EditingIndex, Item: a.Item}.apply(s)
		if err != nil {
			return s, Diff{}, err
		}
		next.EditingIndex = NoEdit
		return next, diff, nil
	}
	return AddItem{Item: a.Item}.apply(s)
}

func (a AddItem) apply(s State) (State, Diff, error) {
	if err := checkPriced(a.Item); err != nil {
		return s, Diff{}, err
	}
	items := make([]LineItem, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	s.Items = append(items, a.Item)
	return s, Diff{Kind: DiffItemAdded, Index: len(s.Items) - 1}, nil
}

func (a UpdateItem) apply(s State) (State, Diff, error) {
	if a.Index < 0 || a.Index >= len(s.Items) {
		return s, Diff{}, ErrInvalidIndex
	}
	if err := checkPriced(a.Item); err != nil {
		return s, Diff{}, err
	}
	s.Items = slices.Clone(s.Items)
	s.Items[a.Index] = a.Item
	return s, Diff{Kind: DiffItemUpdated, Index: a.Index}, nil
}

func (a DeleteItem) apply(s State) (State, Diff, error) {
	if a.Index < 0 || a.Index >= len(s.Items) {
		return s, Diff{}, ErrInvalidIndex
	}
	s.Items = slices.Delete(slices.Clone(s.Items), a.Index, a.Index+1)

	switch {
	case s.EditingIndex == a.Index:
		s.EditingIndex = NoEdit
	case s.EditingIndex > a.Index:
		s.EditingIndex--
	}
	return s, Diff{Kind: DiffItemDeleted, Index: a.Index}, nil
}

func (a BeginEdit) apply(s State) (State, Diff, error) {
	if a.Index < 0 || a.Index >= len(s.Items) {
		return s, Diff{}, ErrInvalidIndex
	}
	s.EditingIndex = a.Index
	s.Step = StepItems
	return s, Diff{Kind: DiffEditing, Index: a.Index}, nil
}

func (CancelEdit) apply(s State) (State, Diff, error) {
	s.EditingIndex = NoEdit
	return s, Diff{Kind: DiffEditing, Index: NoEdit}, nil
}

func (a SetStep) apply(s State) (State, Diff, error) {
	step, err := ParseStep(string(a.Step))
	if err != nil {
		return s, Diff{}, err
	}
	if step != StepCustomer && !s.Customer.Complete() {
		return s, Diff{}, ErrCustomerRequired
	}
	if (step == StepReview || step == StepQuotation) && len(s.Items) == 0 {
		return s, Diff{}, ErrNoItems
	}
	s.Step = step
	return s, Diff{Kind: DiffStep, Index: NoEdit}, nil
}

func (a SetViewMode) apply(s State) (State, Diff, error) {
	mode, err := ParseViewMode(string(a.Mode))
	if err != nil {
		return s, Diff{}, err
	}
	s.ViewMode = mode
	return s, Diff{Kind: DiffViewMode, Index: NoEdit}, nil
}

func (a Reset) apply(State) (State, Diff, error) {
	return NewState(a.QuoteNumber), Diff{Kind: DiffReset, Index: NoEdit}, nil
}

func checkPriced(item LineItem) error {
	if !(item.UnitPrice > 0) || item.Quantity < 1 {
		return ErrUnpricedItem
	}
	return nil
}
