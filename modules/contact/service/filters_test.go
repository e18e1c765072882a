package service

import (
	"agenda-api/modules/contact/entity"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocomplete_PrefixFirstAndLimited(t *testing.T) {
	contacts := []entity.Contact{{Name: "Adam Smith"}, {Name: "Smith Jones"}}

	got := Autocomplete(contacts, "smi")
	require.Len(t, got, 2)
	assert.Equal(t, "Smith Jones", got[0].Label)
	assert.Equal(t, "Adam Smith", got[1].Label)

	many := make([]entity.Contact, 0, 25)
	for i := range 25 {
		many = append(many, entity.Contact{Name: fmt.Sprintf("Person %02d", i)})
	}
	assert.Len(t, Autocomplete(many, "person"), 10)
	assert.Empty(t, Autocomplete(many, ""))
}

func TestStats_Empty(t *testing.T) {
	assert.Zero(t, Stats(nil).Total)
	assert.Empty(t, ByCompany([]entity.Contact{{Name: "x"}}, ""))
}
