package ml

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/rotisserie/eris"
)

// ErrUnknownCategory is returned when a value is not among an encoder's
// known classes.
var ErrUnknownCategory = errors.New("unrecognized category")

const (
	FieldArea = "Area"
	FieldCrop = "Crop"
)

// LabelEncoder maps a fixed, ordered set of category strings to the integer
// codes used at training time. A class's code is its position in the list.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, eris.New("ml: encoder has no classes")
	}
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		if _, dup := index[class]; dup {
			return nil, eris.Errorf("ml: duplicate class %q", class)
		}
		index[class] = i
	}
	return &LabelEncoder{
		classes: append([]string(nil), classes...),
		index:   index,
	}, nil
}

func (e *LabelEncoder) Transform(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, eris.Wrapf(ErrUnknownCategory, "%q", value)
	}
	return code, nil
}

func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", eris.Wrapf(ErrUnknownCategory, "code %d", code)
	}
	return e.classes[code], nil
}

// Classes returns a copy of the known classes in code order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *LabelEncoder) Contains(value string) bool {
	_, ok := e.index[value]
	return ok
}

// Encoders holds one LabelEncoder per categorical field.
type Encoders map[string]*LabelEncoder

func (e Encoders) Area() *LabelEncoder { return e[FieldArea] }
func (e Encoders) Crop() *LabelEncoder { return e[FieldCrop] }

// LoadEncoders reads a JSON object mapping field name to its ordered class
// list. Both categorical fields must be present.
func LoadEncoders(path string) (Encoders, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ml: read encoders")
	}
	var raw map[string][]string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, eris.Wrap(err, "ml: decode encoders")
	}
	encoders := make(Encoders, len(raw))
	for _, field := range []string{FieldArea, FieldCrop} {
		classes, ok := raw[field]
		if !ok {
			return nil, eris.Errorf("ml: encoders missing field %q", field)
		}
		encoder, err := NewLabelEncoder(classes)
		if err != nil {
			return nil, eris.Wrapf(err, "ml: encoder %s", field)
		}
		encoders[field] = encoder
	}
	return encoders, nil
}
