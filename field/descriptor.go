package field

// Type tags the input kind of a form field.
type Type string

const (
	TypeText     Type = "text"
	TypeEmail    Type = "email"
	TypePassword Type = "password"
	TypeSelect   Type = "select"
	TypeCheckbox Type = "checkbox"
	TypeRadio    Type = "radio"
	TypeFile     Type = "file"
)

// Supported reports whether Build produces a rule for fields of this type.
func (t Type) Supported() bool {
	_, ok := variants[t]
	return ok
}

// Enumerated reports whether the type draws its values from Options.
func (t Type) Enumerated() bool { return t == TypeSelect || t == TypeRadio }

// Descriptor declares one form input: its record key, type and validation.
type Descriptor struct {
	Name       string      `json:"name" yaml:"name"`
	Type       Type        `json:"type" yaml:"type"`
	Label      string      `json:"label,omitempty" yaml:"label,omitempty"`
	Validation *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Options    []Choice    `json:"options,omitempty" yaml:"options,omitempty"`
}

// Validation holds the optional constraints of text-like fields and the
// message reported when any of them fails. ErrorMessage also applies to
// checkbox fields.
type Validation struct {
	MinLength    *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength    *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern      string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// Choice is one option of a select or radio field.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Form is the document shape accepted by the loaders: a titled list of
// field descriptors.
type Form struct {
	Title  string       `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Descriptor `json:"fields" yaml:"fields"`
}

func (v *Validation) errorMessage() string {
	if v == nil {
		return ""
	}
	return v.ErrorMessage
}
