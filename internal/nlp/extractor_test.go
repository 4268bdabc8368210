package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	e := NewExtractor()

	normalized := e.NormalizeTitle(`NEW Samsung 65" 4K UHD Smart TV - Open Box`)

	assert.NotContains(t, normalized, "new")
	assert.NotContains(t, normalized, "open")
	assert.Contains(t, normalized, "samsung")
	assert.Contains(t, normalized, "65")
}

func TestFindBrand(t *testing.T) {
	e := NewExtractor()

	cases := []struct {
		title string
		want  string
	}{
		{`Samsung 65" TV`, "Samsung"},
		{"LG OLED55C1PUB", "LG"},
		{"GE Profile Microwave", "GE"},
		{"Unknown Widget TV", ""},
	}

	for _, tc := range cases {
		normalized := e.NormalizeTitle(tc.title)
		assert.Equal(t, tc.want, e.FindBrand(normalized), tc.title)
	}
}

func TestFindModel(t *testing.T) {
	e := NewExtractor()

	assert.Equal(t, "UN65TU8000FXZA", e.FindModel(`Samsung UN65TU8000FXZA 65" 4K UHD TV`))
	assert.Equal(t, "OLED65C1PUB", e.FindModel(`LG OLED65C1PUB 65" OLED TV`))
	assert.Equal(t, "JVM3160RFSS", e.FindModel("GE Profile JVM3160RFSS Over-the-Range Microwave"))
}

func TestFindCategory(t *testing.T) {
	e := NewExtractor()

	cases := []struct {
		title string
		want  string
	}{
		{"Samsung Refrigerator", "Appliances"},
		{`65" TV Television`, "Electronics"},
		{"Leather Sofa", "Furniture"},
		{"DeWalt Drill Set", "Tools"},
		{"Mystery Item", ""},
	}

	for _, tc := range cases {
		normalized := e.NormalizeTitle(tc.title)
		assert.Equal(t, tc.want, e.FindCategory(normalized), tc.title)
	}
}

func TestExtractScreenSize(t *testing.T) {
	size, ok := ExtractScreenSize(`Samsung 65" TV`)
	assert.True(t, ok)
	assert.Equal(t, 65, size)

	size, ok = ExtractScreenSize("55 inch Monitor")
	assert.True(t, ok)
	assert.Equal(t, 55, size)

	_, ok = ExtractScreenSize("No size here")
	assert.False(t, ok)

	_, ok = ExtractScreenSize("999 inch invalid")
	assert.False(t, ok)
}

func TestExtractCapacity(t *testing.T) {
	capacity, ok := ExtractCapacity("25 cu. ft. Refrigerator")
	assert.True(t, ok)
	assert.Equal(t, 25.0, capacity)

	capacity, ok = ExtractCapacity("18.5 cubic feet Fridge")
	assert.True(t, ok)
	assert.Equal(t, 18.5, capacity)

	_, ok = ExtractCapacity("No capacity")
	assert.False(t, ok)
}

func TestFullExtraction(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("GE Profile Spacemaker 1.9 cu ft OTR Microwave JVM3160RFSS")

	assert.Equal(t, "GE", entities.Brand)
	assert.Equal(t, "JVM3160RFSS", entities.Model)
	assert.Equal(t, "Appliances", entities.Category)
	assert.Contains(t, entities.NormalizedTitle, "profile")
}
