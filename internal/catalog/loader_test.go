package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkflow/perkflow/internal/model"
)

const sampleCatalogue = `
providers:
  - id: testair
    display_name: TestAir Miles
    category: Miles
    sender_domains:
      - testair.com
    subject_patterns:
      - miles statement
    balance_patterns:
      - '(\d{1,3}(?:,\d{3})*)\s*miles'
    value_per_unit: 0.012
  - id: legacyair
    display_name: LegacyAir Club
    category: Miles
    sender_domains:
      - legacyair.com
    balance_patterns:
      - '(\d+)\s*miles'
    value_per_unit: 0.01
    enabled: false
`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalogue))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	testair := cat.Rules()[0]
	assert.Equal(t, "testair", testair.ID)
	assert.Equal(t, model.CategoryMiles, testair.Category)
	assert.True(t, testair.Enabled, "omitted enabled field defaults to true")

	legacyair := cat.Rules()[1]
	assert.False(t, legacyair.Enabled)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "not yaml",
			data:    "providers: [unclosed",
			wantErr: "failed to parse catalogue",
		},
		{
			name:    "empty document",
			data:    "",
			wantErr: "no providers",
		},
		{
			name: "invalid rule",
			data: `
providers:
  - id: broken
    display_name: Broken
    category: Miles
    sender_domains: [broken.com]
    balance_patterns: ['(\d+']
    value_per_unit: 0.01
`,
			wantErr: "invalid balance pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogue), 0o600))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalogue file")
}
