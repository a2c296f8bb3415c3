package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FieldUsesJSONName(t *testing.T) {
	t.Parallel()

	type row struct {
		DateTime string `json:"dateTime,omitempty" validate:"required"`
		Count    int    `validate:"min=1"`
	}

	err := New().Struct(row{})
	require.Error(t, err)

	var fieldErrors ValidationErrors
	require.True(t, errors.As(err, &fieldErrors))
	require.Len(t, fieldErrors, 2)

	assert.Equal(t, "dateTime", fieldErrors[0].Field())
	assert.Equal(t, "row.DateTime", fieldErrors[0].StructNamespace())
	assert.Equal(t, "Count", fieldErrors[1].Field(), "untagged fields keep the Go name")
}
