package cache

import (
	"testing"

	"roamify/models"

	"github.com/stretchr/testify/assert"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("estimate:v1", "Paris", "FR", "n5", "m7")
	b := Key("estimate:v1", "Paris", "FR", "n5", "m7")
	assert.Equal(t, a, b, "same parameters always yield the same key")
}

func TestKeyUnsetFieldsUsePlaceholder(t *testing.T) {
	withRegion := Key("q", "JFK", "europe", "")
	withCountry := Key("q", "JFK", "", "FR")
	neither := Key("q", "JFK", "", "")

	assert.NotEqual(t, withRegion, withCountry,
		"queries differing only in which optional field is set must not collide")
	assert.NotEqual(t, withRegion, neither)
	assert.NotEqual(t, withCountry, neither)
	assert.Contains(t, neither, Placeholder)
}

func TestKeyFieldCountMatters(t *testing.T) {
	// A value spanning the separator can't alias a two-field key.
	assert.NotEqual(t, Key("q", "a|b"), Key("q", "a", "b"))
}

func TestKeyCaseInsensitive(t *testing.T) {
	assert.Equal(t, Key("q", "Paris"), Key("q", "paris"))
}

func TestEstimateKeyDistinguishesStays(t *testing.T) {
	city := models.CityCandidate{Name: "Lisbon", CountryCode: "PT"}
	other := models.CityCandidate{Name: "Lisbon", CountryCode: "BR"}

	assert.NotEqual(t, EstimateKey(city, 5, 7), EstimateKey(city, 5, 8), "month participates")
	assert.NotEqual(t, EstimateKey(city, 5, 7), EstimateKey(city, 6, 7), "nights participate")
	assert.NotEqual(t, EstimateKey(city, 5, 7), EstimateKey(other, 5, 7), "country participates")
	assert.Equal(t, EstimateKey(city, 5, 7), EstimateKey(city, 5, 7))
}
