package http

import (
	"fmt"
	"html/template"
	"strings"
)

// FieldKind enumerates every input widget the admin forms use. The set is
// closed: rendering an unknown kind is an error, not a silent fallback.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldSelect
	FieldTextArea
	FieldDate
	FieldMonth
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldNumber:
		return "number"
	case FieldSelect:
		return "select"
	case FieldTextArea:
		return "textarea"
	case FieldDate:
		return "date"
	case FieldMonth:
		return "month"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Option is one entry of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input. Handlers build fields, templates render
// them through RenderField.
type Field struct {
	Kind        FieldKind
	Name        string
	Label       string
	Value       string
	Required    bool
	Placeholder string
	Hint        string
	Options     []Option
	Rows        int
}

// RenderField renders a field to HTML. The switch is exhaustive over
// FieldKind; an unhandled kind returns an error instead of degrading to a
// text input.
func RenderField(f Field) (template.HTML, error) {
	var b strings.Builder

	esc := template.HTMLEscapeString
	b.WriteString(`<div class="field">`)
	if f.Label != "" {
		b.WriteString(`<label for="` + esc(f.Name) + `">` + esc(f.Label))
		if f.Required {
			b.WriteString(`<span class="required">*</span>`)
		}
		b.WriteString(`</label>`)
	}

	required := ""
	if f.Required {
		required = ` required`
	}
	placeholder := ""
	if f.Placeholder != "" {
		placeholder = ` placeholder="` + esc(f.Placeholder) + `"`
	}

	switch f.Kind {
	case FieldText:
		b.WriteString(`<input type="text" id="` + esc(f.Name) + `" name="` + esc(f.Name) + `" value="` + esc(f.Value) + `"` + placeholder + required + `>`)
	case FieldNumber:
		b.WriteString(`<input type="number" id="` + esc(f.Name) + `" name="` + esc(f.Name) + `" value="` + esc(f.Value) + `"` + placeholder + required + `>`)
	case FieldDate:
		b.WriteString(`<input type="date" id="` + esc(f.Name) + `" name="` + esc(f.Name) + `" value="` + esc(f.Value) + `"` + required + `>`)
	case FieldMonth:
		b.WriteString(`<input type="month" id="` + esc(f.Name) + `" name="` + esc(f.Name) + `" value="` + esc(f.Value) + `"` + required + `>`)
	case FieldSelect:
		b.WriteString(`<select id="` + esc(f.Name) + `" name="` + esc(f.Name) + `"` + required + `>`)
		b.WriteString(`<option value="">--</option>`)
		for _, opt := range f.Options {
			selected := ""
			if opt.Value == f.Value && opt.Value != "" {
				selected = ` selected`
			}
			b.WriteString(`<option value="` + esc(opt.Value) + `"` + selected + `>` + esc(opt.Label) + `</option>`)
		}
		b.WriteString(`</select>`)
	case FieldTextArea:
		rows := f.Rows
		if rows == 0 {
			rows = 3
		}
		b.WriteString(fmt.Sprintf(`<textarea id="%s" name="%s" rows="%d"%s%s>%s</textarea>`,
			esc(f.Name), esc(f.Name), rows, placeholder, required, esc(f.Value)))
	default:
		return "", fmt.Errorf("unhandled field kind %v for %q", f.Kind, f.Name)
	}

	if f.Hint != "" {
		b.WriteString(`<small class="hint">` + esc(f.Hint) + `</small>`)
	}
	b.WriteString(`</div>`)

	return template.HTML(b.String()), nil
}
