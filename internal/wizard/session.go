// Package wizard implements the guided quick-sort flow: category -> group
// -> item -> conditions -> result, with breadcrumb navigation.
package wizard

import (
	"errors"

	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/sorting"
)

// Step is one stop of the guided flow.
type Step string

const (
	StepCategory   Step = "category"
	StepGroup      Step = "group"
	StepItem       Step = "item"
	StepConditions Step = "conditions"
	StepResult     Step = "result"
)

var ErrNotFound = errors.New("selection not found")

// Session holds the in-progress walk through the catalog. Each session owns
// its state; concurrent sessions are independent.
type Session struct {
	cat *catalog.Catalog

	step        Step
	category    *catalog.Category
	group       *catalog.ItemGroup
	item        *catalog.Item
	cleanliness string
	shape       string
	bin         sorting.Bin
	explanation string
	done        bool
}

// NewSession starts at the category step.
func NewSession(cat *catalog.Catalog) *Session {
	return &Session{cat: cat, step: StepCategory}
}

// Step reports the current step.
func (s *Session) Step() Step { return s.step }

// Categories lists the choices for the first step.
func (s *Session) Categories() []catalog.Category { return s.cat.Categories }

// Groups lists the item groups of the selected category, empty until one is
// selected.
func (s *Session) Groups() []catalog.ItemGroup {
	if s.category == nil {
		return nil
	}
	return s.category.ItemGroups
}

// Items lists the items of the selected group, empty until one is selected.
func (s *Session) Items() []catalog.Item {
	if s.group == nil {
		return nil
	}
	return s.group.Items
}

// SelectCategory picks a category by name and advances to the group step.
// A no-op unless the session is at the category step.
func (s *Session) SelectCategory(name string) error {
	if s.step != StepCategory {
		return nil
	}
	for i := range s.cat.Categories {
		if s.cat.Categories[i].Name == name {
			s.category = &s.cat.Categories[i]
			s.step = StepGroup
			return nil
		}
	}
	return ErrNotFound
}

// SelectGroup picks an item group within the selected category and advances
// to the item step.
func (s *Session) SelectGroup(name string) error {
	if s.step != StepGroup || s.category == nil {
		return nil
	}
	for i := range s.category.ItemGroups {
		if s.category.ItemGroups[i].Name == name {
			s.group = &s.category.ItemGroups[i]
			s.step = StepItem
			return nil
		}
	}
	return ErrNotFound
}

// SelectItem picks an item. Items that skip conditions resolve immediately
// and jump straight to the result step; everything else advances to the
// conditions step.
func (s *Session) SelectItem(name string) error {
	if s.step != StepItem || s.group == nil {
		return nil
	}
	for i := range s.group.Items {
		if s.group.Items[i].Name == name {
			s.item = &s.group.Items[i]
			if s.item.SkipConditions {
				s.resolve()
				return nil
			}
			s.step = StepConditions
			return nil
		}
	}
	return ErrNotFound
}

// SetCleanliness records a cleanliness draft value. Values outside the
// item's allowed domain are rejected; the step does not change.
func (s *Session) SetCleanliness(v string) error {
	if s.step != StepConditions || s.item == nil {
		return nil
	}
	if !allowed(s.item.Allowed, true, v) {
		return ErrNotFound
	}
	s.cleanliness = v
	return nil
}

// SetShape records a shape draft value, validated like SetCleanliness.
func (s *Session) SetShape(v string) error {
	if s.step != StepConditions || s.item == nil {
		return nil
	}
	if !allowed(s.item.Allowed, false, v) {
		return ErrNotFound
	}
	s.shape = v
	return nil
}

// Finish classifies the selected item under the collected conditions and
// advances to the result step. A no-op away from the conditions step.
func (s *Session) Finish() {
	if s.step != StepConditions || s.item == nil {
		return
	}
	s.resolve()
}

func (s *Session) resolve() {
	s.bin = sorting.Classify(*s.item, s.cleanliness, s.shape)
	s.explanation = sorting.Explain(*s.item, s.bin, s.cleanliness, s.shape)
	s.done = true
	s.step = StepResult
}

// Result returns the resolved bin and explanation; ok is false until the
// result step has been reached.
func (s *Session) Result() (bin sorting.Bin, explanation string, ok bool) {
	if !s.done {
		return "", "", false
	}
	return s.bin, s.explanation, true
}

// Back steps to the logical predecessor, invalidating everything downstream
// of the target step.
func (s *Session) Back() {
	switch s.step {
	case StepGroup:
		s.GoTo(StepCategory)
	case StepItem:
		s.GoTo(StepGroup)
	case StepConditions:
		s.GoTo(StepItem)
	case StepResult:
		if s.item != nil && s.item.SkipConditions {
			s.GoTo(StepItem)
		} else {
			s.GoTo(StepConditions)
		}
	}
}

// GoTo jumps to an ancestor step (breadcrumb navigation) and resets every
// selection downstream of the target. The reset table is keyed by the
// target step, not the current one:
//
//	category   -> clears category, group, item, conditions, result
//	group      -> clears group, item, conditions, result
//	item       -> clears item, conditions, result
//	conditions -> clears result only
//
// Jumping to a step whose ancestor selections are missing is a no-op.
func (s *Session) GoTo(target Step) {
	switch target {
	case StepCategory:
		s.category = nil
		s.group = nil
		s.item = nil
		s.clearConditions()
	case StepGroup:
		if s.category == nil {
			return
		}
		s.group = nil
		s.item = nil
		s.clearConditions()
	case StepItem:
		if s.group == nil {
			return
		}
		s.item = nil
		s.clearConditions()
	case StepConditions:
		if s.item == nil || s.item.SkipConditions {
			return
		}
		s.clearResult()
	default:
		return
	}
	s.step = target
}

// StartOver resets all selections and returns to the category step.
func (s *Session) StartOver() { s.GoTo(StepCategory) }

// Breadcrumbs reports the labels of the selections made so far, in order.
func (s *Session) Breadcrumbs() []string {
	var parts []string
	if s.category != nil {
		parts = append(parts, s.category.Name)
	}
	if s.group != nil {
		parts = append(parts, s.group.Name)
	}
	if s.item != nil {
		parts = append(parts, s.item.Name)
	}
	return parts
}

func (s *Session) clearConditions() {
	s.cleanliness = ""
	s.shape = ""
	s.clearResult()
}

func (s *Session) clearResult() {
	s.bin = ""
	s.explanation = ""
	s.done = false
}

func allowed(domain *catalog.AllowedConditionValues, cleanliness bool, v string) bool {
	if domain == nil {
		return false
	}
	vals := domain.Shape
	if cleanliness {
		vals = domain.Cleanliness
	}
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
