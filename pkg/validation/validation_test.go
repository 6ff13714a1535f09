package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uvais-khan078/village360/entities"
)

type place struct {
	Name  string            `validate:"notblank"`
	Kind  string            `validate:"required,oneof=school clinic" label:"Place type"`
	Lat   *entities.Decimal `validate:"required,gte=-90,lte=90" msg:"Lat must be between -90 and 90"`
	Beds  *int              `validate:"omitnil,gte=0"`
	Code  string            `validate:"omitempty,min=3"`
	Email string            `validate:"omitempty,email"`
}

func valid() place {
	lat := entities.Dec("18.5")
	return place{Name: "Ward 4", Kind: "clinic", Lat: &lat}
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Message
}

func TestStructMessages(t *testing.T) {
	require.NoError(t, Struct(valid()))

	lat := entities.Dec("90.00000001")
	zero := 0
	neg := -2
	cases := map[string]func(*place){
		"Name is required":                   func(p *place) { p.Name = "   " },
		"Place type is required":             func(p *place) { p.Kind = "" },
		"Invalid place type":                 func(p *place) { p.Kind = "farm" },
		"Lat is required":                    func(p *place) { p.Lat = nil },
		"Lat must be between -90 and 90":     func(p *place) { p.Lat = &lat },
		"Beds cannot be negative":            func(p *place) { p.Beds = &neg },
		"Code must be at least 3 characters": func(p *place) { p.Code = "ab" },
		"Invalid email address":              func(p *place) { p.Email = "nope" },
	}
	for want, mutate := range cases {
		p := valid()
		mutate(&p)
		assert.Equal(t, want, messageOf(t, Struct(&p)), want)
	}

	p := valid()
	p.Beds = &zero
	assert.NoError(t, Struct(&p))
}

func TestFirstFailureWins(t *testing.T) {
	p := valid()
	p.Name, p.Kind = "", ""
	assert.Equal(t, "Name is required", messageOf(t, Struct(p)))
}

type outer struct {
	inner
}

type inner struct {
	Title string `validate:"notblank" label:"Project title"`
}

func TestEmbeddedFieldLabel(t *testing.T) {
	assert.Equal(t, "Project title is required", messageOf(t, Struct(&outer{})))
}

func TestDecimalComparesByValue(t *testing.T) {
	p := valid()
	edge := entities.Dec("-90")
	p.Lat = &edge
	assert.NoError(t, Struct(p))
}

func TestVar(t *testing.T) {
	assert.True(t, Var("secret1", "min=6"))
	assert.False(t, Var("abc", "min=6"))
}
