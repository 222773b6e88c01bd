package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		want         []string
		wantDangling []string
	}{
		{
			name: "vt rewritten",
			args: []string{"-t", "-vt", "-u"},
			want: []string{"-t", "--view-tags", "-u"},
		},
		{
			name:         "dangling output dropped",
			args:         []string{"-t", "--output"},
			want:         []string{"-t"},
			wantDangling: []string{"--output"},
		},
		{
			name:         "dangling short seat dropped",
			args:         []string{"-f", "-s"},
			want:         []string{"-f"},
			wantDangling: []string{"-s"},
		},
		{
			name: "filter with value kept",
			args: []string{"-o", "DellInc.", "-l"},
			want: []string{"-o", "DellInc.", "-l"},
		},
		{
			name: "after terminator untouched",
			args: []string{"-t", "--", "-vt", "-o"},
			want: []string{"-t", "--", "-vt", "-o"},
		},
		{
			name: "empty",
			args: []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dangling := NormalizeArgs(tt.args)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDangling, dangling)
		})
	}
}

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "view-tags", normalizeFlagName("view_tags"))
	assert.Equal(t, "urgency", normalizeFlagName("urgent-tags"))
	assert.Equal(t, "urgency", normalizeFlagName("urgent_tags"))
	assert.Equal(t, "focused-tags", normalizeFlagName("tags"))
	assert.Equal(t, "focused-view", normalizeFlagName("title"))
	assert.Equal(t, "output", normalizeFlagName("output"))
}
