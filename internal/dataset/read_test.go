package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func defaultLoaderConfig() config.LoaderConfig {
	return config.GetConfig().Loader
}

func TestReadValidFile(t *testing.T) {
	path := writeFile(t, "data.csv", []byte("a,b\n1,\n2,3\n"))

	table, warnings, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, []string{"a", "b"}, table.Names())
	assert.Equal(t, path, table.Path)

	a, ok := table.Column("a")
	require.True(t, ok)
	assert.Equal(t, KindInteger, a.Kind)
	assert.Equal(t, []float64{1, 2}, a.Numbers)
	assert.Equal(t, 0, a.MissingCount())

	b, ok := table.Column("b")
	require.True(t, ok)
	assert.Equal(t, KindFloat, b.Kind, "integer column with a missing entry is widened to float")
	assert.Equal(t, []bool{true, false}, b.Missing)
	assert.Equal(t, []float64{3}, b.PresentNumbers())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		want    ErrorKind
		message string
	}{
		{
			name:    "Empty path",
			path:    func(t *testing.T) string { return "" },
			want:    InputAbsent,
			message: "Error: No file path provided.",
		},
		{
			name:    "Missing file",
			path:    func(t *testing.T) string { return filepath.Join(dir, "nope.csv") },
			want:    FileNotFound,
			message: "Error: The file was not found.",
		},
		{
			name:    "Empty file",
			path:    func(t *testing.T) string { return writeFile(t, "empty.csv", nil) },
			want:    EmptyFile,
			message: "Error: The file is empty.",
		},
		{
			name:    "Blank lines only",
			path:    func(t *testing.T) string { return writeFile(t, "blank.csv", []byte("\n   \n\n")) },
			want:    EmptyFile,
			message: "Error: The file is empty.",
		},
		{
			name:    "Row longer than header",
			path:    func(t *testing.T) string { return writeFile(t, "long.csv", []byte("a,b\n1,2\n3,4,5\n")) },
			want:    ParseFailure,
			message: "Error: The file could not be parsed.",
		},
		{
			name:    "Invalid UTF-8",
			path:    func(t *testing.T) string { return writeFile(t, "latin1.csv", []byte("name\ncaf\xe9\n")) },
			want:    EncodingFailure,
			message: "Error: The file contains invalid characters.",
		},
		{
			name:    "Directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			want:    ReadFailure,
			message: "Error: The file could not be read.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, warnings, err := Read(tt.path(t), defaultLoaderConfig())
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Nil(t, warnings)
			assert.Equal(t, tt.want, KindOf(err))

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.message, loadErr.UserMessage())
		})
	}
}

func TestReadMissingFileUnwraps(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "missing.csv"), defaultLoaderConfig())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadLongRowReportsLine(t *testing.T) {
	path := writeFile(t, "long.csv", []byte("a,b\n1,2\n3,4,5\n"))
	_, _, err := Read(path, defaultLoaderConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 fields in line 3, saw 3")
}

func TestReadQuoteInsideField(t *testing.T) {
	path := writeFile(t, "quote.csv", []byte("size,n\n5\" screen,1\n\"quoted, with comma\",2\n"))

	table, warnings, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	size, ok := table.Column("size")
	require.True(t, ok)
	assert.Equal(t, KindText, size.Kind)
	assert.Equal(t, []string{"5\" screen", "quoted, with comma"}, size.Texts)

	n, _ := table.Column("n")
	assert.Equal(t, KindInteger, n.Kind)
}

func TestReadTypeNormalization(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		column      string
		kind        Kind
		numbers     []float64
		bools       []bool
		texts       []string
		mixedColumn string
	}{
		{
			name:        "Numbers and booleans mixed",
			content:     "v\n1\ntrue\n",
			column:      "v",
			kind:        KindText,
			texts:       []string{"1", "true"},
			mixedColumn: "v",
		},
		{
			name:    "Capitalized booleans",
			content: "flag\nTrue\nFalse\nTRUE\n",
			column:  "flag",
			kind:    KindBoolean,
			bools:   []bool{true, false, true},
		},
		{
			name:    "Space after delimiter",
			content: "a, b\n1, 2\n3, 4\n",
			column:  " b",
			kind:    KindInteger,
			numbers: []float64{2, 4},
		},
		{
			name:    "Padded floats",
			content: "x\n 1.5 \n2\n",
			column:  "x",
			kind:    KindFloat,
			numbers: []float64{1.5, 2},
		},
		{
			name:    "Padded text keeps its spaces",
			content: "s\n a\nb \n",
			column:  "s",
			kind:    KindText,
			texts:   []string{" a", "b "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, warnings, err := Parse("types.csv", []byte(tt.content), defaultLoaderConfig())
			require.NoError(t, err)

			col, ok := table.Column(tt.column)
			require.True(t, ok, tt.column)
			assert.Equal(t, tt.kind, col.Kind)
			if tt.numbers != nil {
				assert.Equal(t, tt.numbers, col.Numbers)
			}
			if tt.bools != nil {
				assert.Equal(t, tt.bools, col.Bools)
			}
			if tt.texts != nil {
				assert.Equal(t, tt.texts, col.Texts)
			}

			if tt.mixedColumn == "" {
				assert.Empty(t, warnings)
				return
			}
			require.Len(t, warnings, 1)
			assert.Equal(t, []string{tt.mixedColumn}, warnings[0].Columns)
		})
	}
}

func TestReadHeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", []byte("id,name\n"))

	table, warnings, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 0, table.Rows())
	assert.Equal(t, []string{"id", "name"}, table.Names())
	for _, col := range table.Columns() {
		assert.Equal(t, KindText, col.Kind)
		assert.Equal(t, 0, col.Len())
	}
}

func TestReadTypeInference(t *testing.T) {
	content := "int,float,text,flag,flag_na,empty\n" +
		"1,1.5,x,true,true,\n" +
		"2,2,y,false,,NA\n" +
		"3,-0.25,x,true,false,\n"
	path := writeFile(t, "types.csv", []byte(content))

	table, warnings, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	want := map[string]Kind{
		"int":     KindInteger,
		"float":   KindFloat,
		"text":    KindText,
		"flag":    KindBoolean,
		"flag_na": KindText,
		"empty":   KindFloat,
	}
	for name, kind := range want {
		col, ok := table.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, kind, col.Kind, name)
	}

	flag, _ := table.Column("flag")
	assert.Equal(t, []bool{true, false, true}, flag.Bools)

	flagNA, _ := table.Column("flag_na")
	assert.Equal(t, []bool{false, true, false}, flagNA.Missing)
	assert.Equal(t, []string{"true", "false"}, flagNA.PresentTexts())

	float, _ := table.Column("float")
	assert.Equal(t, []float64{1.5, 2, -0.25}, float.Numbers)

	empty, _ := table.Column("empty")
	assert.Equal(t, 3, empty.MissingCount())
}

func TestReadMissingTokens(t *testing.T) {
	content := "name,score\nann,NA\nbob,null\n,7\nNone,N/A\n"
	path := writeFile(t, "tokens.csv", []byte(content))

	table, _, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)

	name, _ := table.Column("name")
	assert.Equal(t, []bool{false, false, true, true}, name.Missing)
	assert.Equal(t, []string{"ann", "bob"}, name.PresentTexts())

	score, _ := table.Column("score")
	assert.Equal(t, KindFloat, score.Kind)
	assert.Equal(t, 3, score.MissingCount())
}

func TestReadCustomNAValues(t *testing.T) {
	cfg := defaultLoaderConfig()
	cfg.NAValues = append(cfg.NAValues, "?")
	path := writeFile(t, "custom.csv", []byte("v\n1\n?\n3\n"))

	table, _, err := Read(path, cfg)
	require.NoError(t, err)
	v, _ := table.Column("v")
	assert.Equal(t, KindFloat, v.Kind)
	assert.Equal(t, []bool{false, true, false}, v.Missing)
}

func TestReadShortRowsArePadded(t *testing.T) {
	path := writeFile(t, "short.csv", []byte("a,b,c\n1,x,2\n2\n"))

	table, _, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())

	b, _ := table.Column("b")
	assert.Equal(t, []bool{false, true}, b.Missing)
	c, _ := table.Column("c")
	assert.Equal(t, []bool{false, true}, c.Missing)
}

func TestReadHeaderNormalization(t *testing.T) {
	path := writeFile(t, "dupes.csv", []byte("a,,a,a\n1,2,3,4\n"))

	table, _, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1", "a.1", "a.2"}, table.Names())
}

func TestReadStripsBOM(t *testing.T) {
	path := writeFile(t, "bom.csv", append([]byte{0xEF, 0xBB, 0xBF}, []byte("id\n1\n")...))

	table, _, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, table.Names())
}

func TestReadBlankLinesSkipped(t *testing.T) {
	path := writeFile(t, "gaps.csv", []byte("\na\n1\n\n2\n\n"))

	table, _, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Rows())
}

func TestReadMixedTypesWarning(t *testing.T) {
	path := writeFile(t, "mixed.csv", []byte("code,label\n1,a\nx,b\n3,c\n"))

	table, warnings, err := Read(path, defaultLoaderConfig())
	require.NoError(t, err)
	require.NotNil(t, table)
	require.Len(t, warnings, 1)
	assert.Equal(t, MixedTypeWarning, warnings[0].Kind)
	assert.Equal(t, []string{"code"}, warnings[0].Columns)
	assert.Equal(t, "Warning: Columns have mixed types.", warnings[0].UserMessage())

	code, _ := table.Column("code")
	assert.Equal(t, KindText, code.Kind)
}

func TestReadDelimiter(t *testing.T) {
	cfg := defaultLoaderConfig()
	cfg.Delimiter = ';'
	path := writeFile(t, "semi.csv", []byte("a;b\n1;2\n"))

	table, _, err := Read(path, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Names())
}
