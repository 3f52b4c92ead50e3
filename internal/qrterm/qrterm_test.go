package qrterm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShape(t *testing.T) {
	const url = "http://192.168.1.20:8008/report.pdf"
	matrix, err := Matrix(url)
	require.NoError(t, err)
	require.NotEmpty(t, matrix)

	out := &strings.Builder{}
	require.NoError(t, Render(out, url))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, len(matrix))
	for i, line := range lines {
		assert.Equal(t, 2*len(matrix[i]), utf8.RuneCountInString(line), "row %d", i)
		assert.Empty(t, strings.Trim(line, "█ "), "row %d", i)
	}
}

func TestMatrixHasFinderPattern(t *testing.T) {
	matrix, err := Matrix("qrport")
	require.NoError(t, err)

	// Top-left finder: a dark 7x7 ring without a quiet zone in front of it.
	for i := 0; i < 7; i++ {
		assert.True(t, matrix[0][i])
		assert.True(t, matrix[6][i])
		assert.True(t, matrix[i][0])
		assert.True(t, matrix[i][6])
	}
	assert.False(t, matrix[1][1])
	assert.True(t, matrix[3][3])
}

func TestMatrixSquare(t *testing.T) {
	matrix, err := Matrix(strings.Repeat("x", 200))
	require.NoError(t, err)
	for _, row := range matrix {
		assert.Len(t, row, len(matrix))
	}
}
