package http

import (
	"strings"
	"testing"
)

func TestRenderFieldKinds(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  []string
	}{
		{
			name:  "text",
			field: Field{Kind: FieldText, Name: "name", Label: "Tên phòng", Value: "P101", Required: true},
			want:  []string{`type="text"`, `name="name"`, `value="P101"`, ` required`, `<span class="required">`},
		},
		{
			name:  "number",
			field: Field{Kind: FieldNumber, Name: "rent", Value: "2000000"},
			want:  []string{`type="number"`, `value="2000000"`},
		},
		{
			name:  "month",
			field: Field{Kind: FieldMonth, Name: "month", Value: "2024-03"},
			want:  []string{`type="month"`, `value="2024-03"`},
		},
		{
			name:  "date",
			field: Field{Kind: FieldDate, Name: "start_date", Value: "2024-03-15"},
			want:  []string{`type="date"`, `value="2024-03-15"`},
		},
		{
			name: "select marks current value",
			field: Field{Kind: FieldSelect, Name: "status", Value: "paid", Options: []Option{
				{Value: "unpaid", Label: "Chưa thanh toán"},
				{Value: "paid", Label: "Đã thanh toán"},
			}},
			want: []string{`<select`, `<option value="">--</option>`, `value="paid" selected`, "Đã thanh toán"},
		},
		{
			name:  "textarea",
			field: Field{Kind: FieldTextArea, Name: "note", Value: "ghi chú", Rows: 4},
			want:  []string{`<textarea`, `rows="4"`, "ghi chú"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := RenderField(tt.field)
			if err != nil {
				t.Fatalf("RenderField: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(html), want) {
					t.Errorf("rendered field missing %q:\n%s", want, html)
				}
			}
		})
	}
}

func TestRenderFieldRejectsUnknownKind(t *testing.T) {
	if _, err := RenderField(Field{Kind: FieldKind(42), Name: "x"}); err == nil {
		t.Fatal("expected error for unknown field kind")
	}
}

func TestRenderFieldEscapesValues(t *testing.T) {
	html, err := RenderField(Field{Kind: FieldText, Name: "name", Value: `"><script>`})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("value not escaped:\n%s", html)
	}
}
