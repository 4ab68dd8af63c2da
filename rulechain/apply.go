package rulechain

import (
	"github.com/erraggy/gw2oas/pathmap"
)

// Apply runs the chain on a deep copy of input and returns the result.
func (c *Chain) Apply(input any) (any, error) {
	result, err := c.ApplyWithResult(input)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// ApplyWithResult is Apply that also records what every action did.
func (c *Chain) ApplyWithResult(input any) (*ApplyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, ok := input.(*pathmap.Map)
	if !ok {
		return &ApplyResult{Document: input}, nil
	}

	result := &ApplyResult{
		Document: doc.Clone(),
		Changes:  make([]ChangeRecord, 0, len(c.Actions)),
	}
	working := result.Document.(*pathmap.Map)
	for i, action := range c.Actions {
		result.Changes = append(result.Changes, ChangeRecord{
			ActionIndex: i,
			Operation:   action.Operation,
			Path:        action.Target(),
			Applied:     applyAction(working, action),
		})
	}
	return result, nil
}

// applyAction performs one validated action and reports whether it changed doc.
func applyAction(doc *pathmap.Map, action Action) bool {
	switch action.Operation {
	case OpShift:
		value, ok := doc.GetFromPath(action.From)
		if !ok {
			return false
		}
		doc.DeleteFromPath(action.From)
		doc.SetFromPath(action.To, value)
		return true

	case OpDefault:
		if _, ok := doc.GetFromPath(action.Path); ok {
			return false
		}
		doc.SetFromPath(action.Path, pathmap.CloneValue(action.value))
		return true

	case OpRemove:
		return doc.DeleteFromPath(action.Path)

	case OpUpdate:
		current, _ := doc.GetFromPath(action.Path)
		target, targetIsMap := current.(*pathmap.Map)
		update, updateIsMap := action.value.(*pathmap.Map)
		if targetIsMap && updateIsMap {
			target.Merge(update)
			return true
		}
		doc.SetFromPath(action.Path, pathmap.CloneValue(action.value))
		return true
	}
	return false
}
