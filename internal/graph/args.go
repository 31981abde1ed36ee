package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// args holds a field's coerced arguments. Numbers arrive as int64 from
// literals and json.Number from variables.
type args map[string]any

func (a args) str(name string) string {
	s, _ := a[name].(string)
	return s
}

func (a args) optString(name string) *string {
	s, ok := a[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (a args) flag(name string) bool {
	b, _ := a[name].(bool)
	return b
}

func (a args) optInt(name string) (*int, error) {
	var n int64
	switch v := a[name].(type) {
	case nil:
		return nil, nil
	case int64:
		n = v
	case int:
		n = int64(v)
	case float64:
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", errBadInput, name)
		}
		n = i
	default:
		return nil, fmt.Errorf("%w: %s must be an integer", errBadInput, name)
	}
	i := int(n)
	return &i, nil
}

// id returns a UUID argument. Malformed ids never reach the database.
func (a args) id(name string) (string, error) {
	s := a.str(name)
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: %s must be a UUID", errBadInput, name)
	}
	return s, nil
}

// decode copies an input object argument into dest and validates it. A
// missing argument leaves dest at its zero value.
func (a args) decode(name string, dest any) error {
	if raw, ok := a[name]; ok && raw != nil {
		b, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", errBadInput, name, err)
		}
		if err := json.Unmarshal(b, dest); err != nil {
			return fmt.Errorf("%w: %s: %v", errBadInput, name, err)
		}
	}
	if err := validate.Struct(dest); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errBadInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" "+validationMessage(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", errBadInput, strings.Join(msgs, ", "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "uuid":
		return "must be a UUID"
	}
	return "is invalid"
}
