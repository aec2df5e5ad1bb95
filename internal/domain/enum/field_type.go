package enum

import "encoding/json"

// FieldType represents the input type of a form field
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "tel"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

func (t FieldType) String() string {
	return string(t)
}

// Valid reports whether the value is a known field type
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeNumber,
		FieldTypeDate, FieldTypeTextarea, FieldTypeSelect, FieldTypeCheckbox:
		return true
	}
	return false
}

// JotformControl maps a field type to its Jotform question control name
func (t FieldType) JotformControl() string {
	switch t {
	case FieldTypeEmail:
		return "control_email"
	case FieldTypePhone:
		return "control_phone"
	case FieldTypeNumber:
		return "control_number"
	case FieldTypeDate:
		return "control_datetime"
	case FieldTypeTextarea:
		return "control_textarea"
	case FieldTypeSelect:
		return "control_dropdown"
	case FieldTypeCheckbox:
		return "control_checkbox"
	default:
		return "control_textbox"
	}
}

func (t FieldType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *FieldType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = FieldType(str)
	return nil
}
