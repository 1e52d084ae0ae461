package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `validate:"notblank"`
	Code  string  `validate:"required,digits"`
	Label *string `validate:"omitnil,notblank"`
	Count int     `validate:"gt=0,lte=3"`
}

var sampleMessages = Messages{
	"Name.notblank":  "Name is required.",
	"Code.required":  "Code is required.",
	"Code.digits":    "Code must be digits.",
	"Label.notblank": "Label cannot be empty.",
	"Count.gt":       "Count must be positive.",
	"Count.lte":      "Count is too large.",
}

func newSampleValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(WithPattern("digits", regexp.MustCompile(`^\d+$`)))
	require.NoError(t, err)
	return v
}

func TestValidate_AggregatesEveryViolation(t *testing.T) {
	v := newSampleValidator(t)
	empty := "   "

	err := v.Validate(sample{Name: " ", Code: "12a", Label: &empty, Count: 4}, sampleMessages)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, Errors{"Name is required.", "Code must be digits.", "Label cannot be empty.", "Count is too large."}, errs)
	assert.Equal(t, "Name is required.; Code must be digits.; Label cannot be empty.; Count is too large.", err.Error())
}

func TestValidate_AbsentPointerSkipsRules(t *testing.T) {
	v := newSampleValidator(t)

	err := v.Validate(sample{Name: "ok", Code: "42", Count: 1}, sampleMessages)
	require.NoError(t, err)
}

func TestValidate_FallsBackToGenericMessage(t *testing.T) {
	v := newSampleValidator(t)

	err := v.Validate(sample{Name: "ok", Code: "42", Count: 0}, Messages{})
	require.EqualError(t, err, "Count is invalid.")
}
