package footballapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestSupportedSeason(t *testing.T) {
	tests := []struct {
		name    string
		seasons []seasonInfo
		want    int
	}{
		{"current within cap", []seasonInfo{{Year: 2022, Current: true}, {Year: 2023}}, 2022},
		{"current past cap falls back to newest allowed", []seasonInfo{{Year: 2021}, {Year: 2023}, {Year: 2024, Current: true}}, 2023},
		{"only future seasons", []seasonInfo{{Year: 2025, Current: true}}, 2023},
		{"no seasons", nil, 2023},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, latestSupportedSeason(tt.seasons, 2023))
		})
	}
}

func TestCurrentSeason(t *testing.T) {
	assert.Equal(t, 2024, currentSeason([]seasonInfo{{Year: 2023}, {Year: 2024, Current: true}}, 2023))
	assert.Equal(t, 2023, currentSeason([]seasonInfo{{Year: 2019}}, 2023))
}

func TestFirstTable(t *testing.T) {
	assert.Nil(t, firstTable(nil))

	item := standingsItem{}
	assert.Nil(t, firstTable([]standingsItem{item}))
}

func TestReportedErrorEmpty(t *testing.T) {
	assert.NoError(t, reportedError(nil))
	assert.NoError(t, reportedError([]any{}))
	assert.NoError(t, reportedError(map[string]any{}))
	assert.NoError(t, reportedError(""))
}
