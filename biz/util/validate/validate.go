package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

const tagName = "validate"

// Validator plugs go-playground/validator into hertz binding.
type Validator struct {
	once     sync.Once
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateStruct(obj interface{}) error {
	v.lazyInit()
	return v.validate.Struct(obj)
}

func (v *Validator) Engine() interface{} {
	v.lazyInit()
	return v.validate
}

func (v *Validator) ValidateTag() string {
	return tagName
}

// Var validates a single value against tag, e.g. Var(email, "email").
func (v *Validator) Var(field interface{}, tag string) error {
	v.lazyInit()
	return v.validate.Var(field, tag)
}

func (v *Validator) lazyInit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName(tagName)
	})
}

var defaultValidator = New()

func Default() *Validator {
	return defaultValidator
}
