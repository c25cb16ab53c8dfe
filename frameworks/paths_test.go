package frameworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuitePaths(t *testing.T) {
	tests := []struct {
		name         string
		options      SuiteOptions
		file         string
		wantFilePath string
		wantRelative string
	}{
		{
			name:         "local",
			options:      SuiteOptions{Root: "/proj"},
			file:         "/proj/test/a.spec",
			wantFilePath: "/proj/test/a.spec",
			wantRelative: "test/a.spec",
		},
		{
			name:         "remote mount",
			options:      SuiteOptions{Path: "proj", Root: "/home/me/proj", RunsInRemote: true, RemotePath: "/srv"},
			file:         "/srv/proj/test/a.spec",
			wantFilePath: "/home/me/proj/test/a.spec",
			wantRelative: "test/a.spec",
		},
		{
			name:         "remote mount without leading slash",
			options:      SuiteOptions{Path: "proj", Root: "/home/me/proj", RunsInRemote: true, RemotePath: "srv"},
			file:         "/srv/proj/test/a.spec",
			wantFilePath: "/home/me/proj/test/a.spec",
			wantRelative: "test/a.spec",
		},
		{
			name:         "remote at filesystem root",
			options:      SuiteOptions{Path: "proj", Root: "/home/me/proj", RunsInRemote: true, RemotePath: "/"},
			file:         "/proj/test/a.spec",
			wantFilePath: "/home/me/proj/test/a.spec",
			wantRelative: "/proj/test/a.spec",
		},
		{
			name:         "remote with empty mount",
			options:      SuiteOptions{Path: "proj", Root: "/home/me/proj", RunsInRemote: true},
			file:         "/proj/test/a.spec",
			wantFilePath: "/home/me/proj/test/a.spec",
			wantRelative: "/proj/test/a.spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSuite(tt.options, SuiteResult{File: tt.file})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFilePath, s.FilePath())
			assert.Equal(t, tt.wantRelative, s.RelativePath())
			assert.Equal(t, tt.wantRelative, s.DisplayName())
			assert.Equal(t, tt.file, s.File())
		})
	}
}
