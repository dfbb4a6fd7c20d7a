package catalog

import (
	"strings"
	"testing"

	"perfumism/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
	"brands": ["Le Labo", "Diptyque"],
	"accords": [
		{"korean_name": "우디", "english_name": "Woody"},
		{"korean_name": "시트러스", "english_name": "Citrus"}
	],
	"perfumes": [
		{"name": "Santal 33", "brand": "Le Labo", "launch_year": 2011, "accords": ["woody"]},
		{"name": "Philosykos", "brand": "Diptyque", "accords": ["Woody", "Citrus"]},
		{"name": "Bleu", "brand": "Chanel"}
	]
}`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Len(t, c.Accords, 2)
	require.Len(t, c.Perfumes, 3)
	require.NotNil(t, c.Perfumes[0].LaunchYear)
	assert.Equal(t, 2011, *c.Perfumes[0].LaunchYear)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `brands: []`},
		{name: "perfume without brand", body: `{"perfumes": [{"name": "Santal 33"}]}`},
		{name: "accord without korean name", body: `{"accords": [{"english_name": "Woody"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestBrandNames_IncludesPerfumeBrandsOnce(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"Le Labo", "Diptyque", "Chanel"}, c.brandNames())
}

func TestResolve(t *testing.T) {
	brandIDs := map[string]int64{"Le Labo": 1}
	accords := map[string]models.Accord{"woody": {ID: 3, EnglishName: "Woody"}}

	t.Run("known references", func(t *testing.T) {
		brandID, linked, err := resolve(Perfume{Name: "Santal 33", Brand: " Le Labo ", Accords: []string{"WOODY"}}, brandIDs, accords)
		require.NoError(t, err)
		assert.Equal(t, int64(1), brandID)
		require.Len(t, linked, 1)
		assert.Equal(t, int64(3), linked[0].ID)
	})

	t.Run("unknown accord", func(t *testing.T) {
		_, _, err := resolve(Perfume{Name: "Santal 33", Brand: "Le Labo", Accords: []string{"Amber"}}, brandIDs, accords)
		assert.ErrorContains(t, err, "Amber")
	})

	t.Run("unknown brand", func(t *testing.T) {
		_, _, err := resolve(Perfume{Name: "Bleu", Brand: "Chanel"}, brandIDs, accords)
		assert.Error(t, err)
	})
}
