package cli

import (
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

// fieldView is the per-field half of `show` output: the raw slot next to
// its resolved display form, plus the shape error when the two disagree.
type fieldView struct {
	Key     string      `json:"key"`
	Label   string      `json:"label"`
	Value   field.Value `json:"value"`
	Display string      `json:"display"`
	Error   string      `json:"error,omitempty"`
}

func fieldViews(e *model.Entry) []fieldView {
	var views []fieldView
	for _, spec := range model.FieldSpecs() {
		v, ok := e.Slot(spec.Key)
		if !ok {
			continue
		}
		fv := fieldView{
			Key:     spec.Key,
			Label:   spec.Label,
			Value:   v,
			Display: field.Display(spec, v),
		}
		if err := field.CheckShape(spec, v); err != nil {
			fv.Error = err.Error()
		}
		views = append(views, fv)
	}
	return views
}
