package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/genui/internal/engine"
	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/view"
)

// formPlan is what FillForm asks for one form.
type formPlan struct {
	inputs  []engine.Field
	values  []string
	options []huh.Option[string]
	button  string
}

func planForm(b *engine.FormBinding) (*formPlan, error) {
	buttons := b.Buttons()
	if len(buttons) == 0 {
		return nil, errors.New(errors.ErrSubmit,
			fmt.Sprintf("Form %s has no button to submit with", engine.PathKey(b.Path())),
			"Add a button node to the form.")
	}

	p := &formPlan{inputs: b.Inputs()}
	p.values = make([]string, len(p.inputs))
	for i, in := range p.inputs {
		p.values[i] = b.Value(in.QueryID)
	}
	for _, btn := range buttons {
		label := btn.Query
		if label == "" {
			label = view.DefaultAction
		}
		p.options = append(p.options, huh.NewOption(label, btn.QueryID))
	}
	p.button = buttons[0].QueryID
	return p, nil
}

func (p *formPlan) form() *huh.Form {
	var fields []huh.Field
	for i, in := range p.inputs {
		title := in.Query
		if title == "" {
			title = in.QueryID
		}
		fields = append(fields, huh.NewInput().
			Title(title).
			Value(&p.values[i]))
	}
	if len(p.options) > 1 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Submit with").
			Options(p.options...).
			Value(&p.button))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// apply stores the answers on the binding and submits it.
func (p *formPlan) apply(b *engine.FormBinding) (map[string]string, error) {
	for i, in := range p.inputs {
		if err := b.SetValue(in.QueryID, p.values[i]); err != nil {
			return nil, err
		}
	}
	return b.Submit(p.button)
}

// FillForm asks for every input of the form on the terminal using huh,
// lets the user pick a button when there is more than one, and submits.
// accessible switches huh to its plain prompt mode for screen readers and
// non-interactive terminals.
func FillForm(b *engine.FormBinding, accessible bool) (map[string]string, error) {
	p, err := planForm(b)
	if err != nil {
		return nil, err
	}
	if len(p.inputs) > 0 || len(p.options) > 1 {
		if err := p.form().WithAccessible(accessible).Run(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSubmit,
				"Form was cancelled", "")
		}
	}
	return p.apply(b)
}
