package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usagi-tienda/storefront-go/pkg/storefront"
)

func sampleResults() []storefront.EndpointCheck {
	return []storefront.EndpointCheck{
		{
			Family:    storefront.FamilyProduct,
			Resolved:  "/product",
			Available: true,
			Tried:     []storefront.PathCheck{{Path: "/product", Status: 200}},
		},
		{
			Family: storefront.FamilyCartItem,
			Tried:  []storefront.PathCheck{{Path: "/cart_item", Status: 404, Error: "Unable to locate request."}},
		},
	}
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	report := buildReport("https://api.test.com", sampleResults(), now)

	assert.Equal(t, now, report.Timestamp)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Available)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 50.0, report.SuccessRate)
}

func TestBuildReport_Empty(t *testing.T) {
	report := buildReport("https://api.test.com", nil, time.Now())
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.SuccessRate)
}

func TestSaveReport(t *testing.T) {
	report := buildReport("https://api.test.com", sampleResults(), time.Now())
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, saveReport(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://api.test.com", decoded["base_url"])
	assert.Len(t, decoded["results"], 2)
}

func TestPrintSummary(t *testing.T) {
	report := buildReport("https://api.test.com", sampleResults(), time.Now())

	var buf bytes.Buffer
	printSummary(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "Success Rate: 50.0%")
	assert.Contains(t, out, "  - product: /product")
	assert.Contains(t, out, "  - cart_item (1 paths tried): Unable to locate request.")
}

func TestParseFamilies(t *testing.T) {
	assert.Nil(t, parseFamilies(""))
	assert.Equal(t,
		[]storefront.Family{storefront.FamilyLogin, storefront.FamilyCart},
		parseFamilies("login, cart,"))
}
