// Package wizard implements the guided intake flows: linear multi-step
// forms whose forward progress is gated by per-step validation and whose
// terminal step produces a derived result. Everything here is pure and
// synchronous; persistence and transport live in the endpoint package.
package wizard

import "strconv"

// FieldStore holds the current input set of a wizard instance, keyed by
// logical field name rather than by step. Values therefore survive back
// navigation: retreating and re-advancing shows prior answers intact.
type FieldStore struct {
	strings map[string]string
	numbers map[string]float64
	lists   map[string][]string
}

func NewFieldStore() *FieldStore {
	return &FieldStore{
		strings: make(map[string]string),
		numbers: make(map[string]float64),
		lists:   make(map[string][]string),
	}
}

// SetString overwrites a string field unconditionally.
func (f *FieldStore) SetString(name, value string) {
	f.strings[name] = value
}

// SetNumber parses and overwrites a numeric field. Empty or unparseable
// input stores 0, which the validators treat the same as unset.
func (f *FieldStore) SetNumber(name, raw string) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = 0
	}
	f.numbers[name] = v
}

// SetNumberValue overwrites a numeric field with an already-parsed value.
func (f *FieldStore) SetNumberValue(name string, value float64) {
	f.numbers[name] = value
}

// SetList overwrites a multi-select field.
func (f *FieldStore) SetList(name string, values []string) {
	f.lists[name] = values
}

func (f *FieldStore) String(name string) string {
	return f.strings[name]
}

func (f *FieldStore) Number(name string) float64 {
	return f.numbers[name]
}

func (f *FieldStore) List(name string) []string {
	return f.lists[name]
}

// Flow is a tagged set of step definitions. Implementations validate steps
// with an exhaustive switch over the step index and derive the flow's result
// from the completed field set.
type Flow interface {
	Name() string
	StepCount() int
	// ResultsOnlyFinal reports whether the final step carries no inputs of
	// its own; advancing into it triggers derivation immediately.
	ResultsOnlyFinal() bool
	StepValid(step int, fields *FieldStore) bool
	Derive(fields *FieldStore) (interface{}, error)
}

// Controller drives a flow through its steps. It is single-threaded and
// driven by caller input; steps are 1-based and the index never exceeds the
// flow's step count.
type Controller struct {
	flow   Flow
	step   int
	fields *FieldStore
	result interface{}
}

func NewController(flow Flow) *Controller {
	return &Controller{
		flow:   flow,
		step:   1,
		fields: NewFieldStore(),
	}
}

func (c *Controller) Step() int {
	return c.step
}

func (c *Controller) Fields() *FieldStore {
	return c.fields
}

// Result returns the derived output once the terminal step has been reached,
// nil before that.
func (c *Controller) Result() interface{} {
	return c.result
}

// Advance moves to the next step if the current one validates; otherwise it
// is a no-op and returns false. The presentation layer disables its button on
// invalid input, but the controller refuses independently. Entering a
// results-only terminal step derives the result synchronously.
func (c *Controller) Advance() bool {
	if c.step >= c.flow.StepCount() {
		return false
	}
	if !c.flow.StepValid(c.step, c.fields) {
		return false
	}
	c.step++
	if c.step == c.flow.StepCount() && c.flow.ResultsOnlyFinal() {
		result, err := c.flow.Derive(c.fields)
		if err != nil {
			c.step--
			return false
		}
		c.result = result
	}
	return true
}

// Retreat moves back one step, floored at the first step. Field values are
// never cleared by navigation.
func (c *Controller) Retreat() {
	if c.step > 1 {
		c.step--
	}
}

// Submit completes a flow whose final step accepts input (the lab flow):
// it validates the final step and derives the result. Submitting before the
// final step is refused.
func (c *Controller) Submit() (interface{}, bool) {
	if c.step != c.flow.StepCount() {
		return nil, false
	}
	if !c.flow.StepValid(c.step, c.fields) {
		return nil, false
	}
	result, err := c.flow.Derive(c.fields)
	if err != nil {
		return nil, false
	}
	c.result = result
	return result, true
}

// FirstInvalidStep replays validation from step 1 and returns the first step
// that fails, or 0 when every input step validates. Server-side handlers use
// this to gate one-shot submissions the same way interactive advancement is
// gated.
func FirstInvalidStep(flow Flow, fields *FieldStore) int {
	last := flow.StepCount()
	if flow.ResultsOnlyFinal() {
		last--
	}
	for step := 1; step <= last; step++ {
		if !flow.StepValid(step, fields) {
			return step
		}
	}
	return 0
}
