package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julian/jobbider/internal/config"
	"github.com/julian/jobbider/internal/observability"
	"github.com/julian/jobbider/internal/types"
)

func testRunConfig() *config.Config {
	return &config.Config{
		Platforms: map[string]config.Platform{
			"dice": {Enabled: true, SearchQuery: "golang developer"},
		},
	}
}

func TestBuildAdapters_WithCredentials(t *testing.T) {
	t.Setenv("DICE_EMAIL", "user@example.com")
	t.Setenv("DICE_PASSWORD", "hunter2")

	adapters, err := buildAdapters(testRunConfig(), nil, "", false)
	require.NoError(t, err)
	require.Len(t, adapters, 1)
	assert.Equal(t, "dice", adapters[0].Platform())
}

func TestBuildAdapters_MissingCredentialsSkipsPlatform(t *testing.T) {
	t.Setenv("DICE_EMAIL", "")
	t.Setenv("DICE_PASSWORD", "")

	_, err := buildAdapters(testRunConfig(), nil, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runnable platforms")
}

func TestBuildAdapters_UnconfigurablePlatformDoesNotBlockOthers(t *testing.T) {
	t.Setenv("DICE_EMAIL", "user@example.com")
	t.Setenv("DICE_PASSWORD", "hunter2")
	t.Setenv("INDEED_EMAIL", "")
	t.Setenv("INDEED_PASSWORD", "")

	cfg := testRunConfig()
	cfg.Platforms["indeed"] = config.Platform{Enabled: true, SearchQuery: "golang"}

	adapters, err := buildAdapters(cfg, nil, "", false)
	require.NoError(t, err)
	require.Len(t, adapters, 1, "the platform without credentials is skipped")
	assert.Equal(t, "dice", adapters[0].Platform())
}

func TestBuildAdapters_PlatformFilterRequiresEnabled(t *testing.T) {
	_, err := buildAdapters(testRunConfig(), nil, "indeed", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	printer := observability.NewPrinter(&buf)

	discovered := []types.JobRecord{
		{Title: "Senior Go Engineer", Company: "Acme Corp", Description: "golang services"},
		{Title: "Mainframe Operator", Company: "Globex", Description: "COBOL batch"},
	}
	criteria := types.SearchCriteria{RequiredSkills: []string{"golang"}}

	printMatches(printer, discovered, &criteria)
	output := buf.String()

	assert.Contains(t, output, "MATCHED JOBS")
	assert.Contains(t, output, "Senior Go Engineer")
	assert.NotContains(t, output, "Mainframe Operator")
}
