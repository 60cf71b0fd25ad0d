package transforms

import (
	"reflect"

	"github.com/rs/zerolog/log"
)

// TransformDefinition rewrites fields of any struct whose Match fields all
// equal the given strings
type TransformDefinition struct {
	Match map[string]string `yaml:"match"`
	Data  map[string]any    `yaml:"data"`
}

func (t *TransformDefinition) Matches(inputValue reflect.Value) bool {
	if len(t.Match) == 0 {
		return false
	}

	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || field.Kind() != reflect.String || field.String() != value {
			return false
		}
	}

	return true
}

func (t *TransformDefinition) Transform(inputValue reflect.Value) bool {
	if !inputValue.IsValid() || inputValue.Kind() != reflect.Struct || !t.Matches(inputValue) {
		return false
	}

	for key, value := range t.Data {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || !field.CanSet() {
			log.Warn().Str("field", key).Msg("Transform targets an unknown field")
			continue
		}

		newValue := reflect.ValueOf(value)
		if !assignable(newValue, field.Type()) {
			log.Warn().Str("field", key).Interface("value", value).Msg("Transform value does not fit field")
			continue
		}

		field.Set(newValue.Convert(field.Type()))
	}

	return true
}

// assignable refuses numeric to string conversions, which reflect would
// otherwise turn into runes
func assignable(value reflect.Value, fieldType reflect.Type) bool {
	if !value.IsValid() || !value.Type().ConvertibleTo(fieldType) {
		return false
	}
	if fieldType.Kind() == reflect.String && value.Kind() != reflect.String {
		return false
	}
	return true
}

type Transformer struct {
	transforms []TransformDefinition
}

func New(transforms []TransformDefinition) *Transformer {
	return &Transformer{
		transforms: transforms,
	}
}

// Transform applies every matching definition to input, which must be a
// pointer to a struct or a slice of structs. It returns how many
// definitions matched.
func (t *Transformer) Transform(input any) int {
	if t == nil || len(t.transforms) == 0 {
		return 0
	}

	inputValue := reflect.ValueOf(input)
	if inputValue.Kind() == reflect.Pointer {
		inputValue = inputValue.Elem()
	}

	if inputValue.Kind() == reflect.Slice {
		matched := 0
		for i := 0; i < inputValue.Len(); i++ {
			matched += t.transformValue(inputValue.Index(i))
		}
		return matched
	}

	return t.transformValue(inputValue)
}

func (t *Transformer) transformValue(inputValue reflect.Value) int {
	if inputValue.Kind() == reflect.Pointer {
		inputValue = inputValue.Elem()
	}

	matched := 0
	for i := range t.transforms {
		if t.transforms[i].Transform(inputValue) {
			matched++
		}
	}
	return matched
}
