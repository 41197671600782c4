package handlers

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProjectPatch(t *testing.T, body string) projectPatch {
	t.Helper()
	var patch projectPatch
	require.NoError(t, json.Unmarshal([]byte(body), &patch))
	return patch
}

func TestBuildProjectUpdatesOmittedFieldsUntouched(t *testing.T) {
	patch := decodeProjectPatch(t, `{"title": "Skyline Towers"}`)

	updates, err := buildProjectUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"title": "Skyline Towers"}, updates)
}

func TestBuildProjectUpdatesNullClearsField(t *testing.T) {
	patch := decodeProjectPatch(t, `{"brochure_url": null, "tags": null}`)

	updates, err := buildProjectUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, "", updates["brochure_url"])
	assert.Equal(t, pq.StringArray{}, updates["tags"])
	assert.NotContains(t, updates, "title")
}

func TestBuildProjectUpdatesNormalizesLocationCity(t *testing.T) {
	patch := decodeProjectPatch(t, `{"location": {"place": "Sector 62", "city": "  nOIDA "}}`)

	updates, err := buildProjectUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, "Sector 62", updates["location_place"])
	assert.Equal(t, "Noida", updates["location_city"])
}

func TestBuildProjectUpdatesLegacyLocationString(t *testing.T) {
	patch := decodeProjectPatch(t, `{"location": "Sector 62, Noida"}`)

	updates, err := buildProjectUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, "Sector 62, Noida", updates["location_place"])
	assert.Equal(t, "", updates["location_city"])
}

func TestBuildProjectUpdatesRejectsBadStatus(t *testing.T) {
	patch := decodeProjectPatch(t, `{"status": "Archived"}`)

	_, err := buildProjectUpdates(patch)
	assert.Error(t, err)
}

func TestBuildProjectUpdatesRejectsNullStatus(t *testing.T) {
	patch := decodeProjectPatch(t, `{"status": null}`)

	_, err := buildProjectUpdates(patch)
	assert.Error(t, err)
}

func TestBuildProjectUpdatesBools(t *testing.T) {
	patch := decodeProjectPatch(t, `{"for_sale": true, "for_rent": false}`)

	updates, err := buildProjectUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, true, updates["for_sale"])
	assert.Equal(t, false, updates["for_rent"])
}

func TestBuildPropertyUpdates(t *testing.T) {
	var patch propertyPatch
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "3BHK Apartment",
		"price": null,
		"gallery_urls": ["https://cdn.example.com/a.jpg"],
		"location": {"place": "Sector 18", "city": "greater noida"}
	}`), &patch))

	updates, err := buildPropertyUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, "3BHK Apartment", updates["name"])
	assert.Equal(t, "", updates["price"])
	assert.Equal(t, pq.StringArray{"https://cdn.example.com/a.jpg"}, updates["gallery_urls"])
	assert.Equal(t, "Greater Noida", updates["location_city"])
	assert.NotContains(t, updates, "size")
	assert.NotContains(t, updates, "type")
}

func TestBuildPropertyUpdatesRejectsBadType(t *testing.T) {
	var patch propertyPatch
	require.NoError(t, json.Unmarshal([]byte(`{"type": "Premium"}`), &patch))

	_, err := buildPropertyUpdates(patch)
	assert.Error(t, err)
}

func decodeRequirementPatch(t *testing.T, body string) requirementPatch {
	t.Helper()
	var patch requirementPatch
	require.NoError(t, json.Unmarshal([]byte(body), &patch))
	return patch
}

func TestBuildRequirementUpdates(t *testing.T) {
	patch := decodeRequirementPatch(t, `{
		"category": "Commercial",
		"status": "In Progress",
		"type": "Investor",
		"budget_min": 1500000,
		"budget_max": null
	}`)

	updates, err := buildRequirementUpdates(patch)
	require.NoError(t, err)

	assert.Equal(t, "Commercial", updates["category"])
	assert.Equal(t, "In Progress", updates["status"])
	assert.Equal(t, "Investor", updates["type"])
	assert.Equal(t, 1500000.0, updates["budget_min"])
	assert.Nil(t, updates["budget_max"])
	assert.Contains(t, updates, "budget_max")
	assert.NotContains(t, updates, "location")
}

func TestBuildRequirementUpdatesRejectsBadStatus(t *testing.T) {
	patch := decodeRequirementPatch(t, `{"status": "Banana"}`)

	_, err := buildRequirementUpdates(patch)
	assert.Error(t, err)
}

func TestBuildRequirementUpdatesRejectsNullStatus(t *testing.T) {
	patch := decodeRequirementPatch(t, `{"status": null}`)

	_, err := buildRequirementUpdates(patch)
	assert.Error(t, err)
}

func TestBuildRequirementUpdatesRejectsBadType(t *testing.T) {
	patch := decodeRequirementPatch(t, `{"type": "Broker"}`)

	_, err := buildRequirementUpdates(patch)
	assert.Error(t, err)
}

func TestEmptyPatchBuildsNoUpdates(t *testing.T) {
	patch := decodeProjectPatch(t, `{}`)

	updates, err := buildProjectUpdates(patch)
	require.NoError(t, err)
	assert.Empty(t, updates)
}
