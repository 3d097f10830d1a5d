package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestArrayReader_Extract(t *testing.T) {
	path := writeFile(t, "YesBana.json", `[{"a": 1}, "x", null]`)

	elems, err := ArrayReader{Path: path}.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, elems, 3)
	assert.JSONEq(t, `{"a": 1}`, string(elems[0]))
	assert.Equal(t, "null", string(elems[2]))
}

func TestArrayReader_NonArrayRoot(t *testing.T) {
	cases := map[string]string{
		"object root": `{"non_null_objects": []}`,
		"null root":   `null`,
		"string root": `"rides"`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "YesBana.json", content)

			elems, err := ArrayReader{Path: path}.Extract(context.Background())
			require.Error(t, err)
			assert.Nil(t, elems)
			assert.Contains(t, err.Error(), "JSON array")
		})
	}
}

func TestArrayReader_EmptyArray(t *testing.T) {
	path := writeFile(t, "YesBana.json", `[]`)

	elems, err := ArrayReader{Path: path}.Extract(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, elems)
	assert.Empty(t, elems)
}

func TestArrayReader_MissingFile(t *testing.T) {
	_, err := ArrayReader{Path: filepath.Join(t.TempDir(), "nope.json")}.Extract(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompleteReader_Extract(t *testing.T) {
	path := writeFile(t, "Yesbana.json", `{"non_null_objects": [{"route_number": "1"}, {"route_number": "2"}]}`)

	elems, err := CompleteReader{Path: path}.Extract(context.Background())
	require.NoError(t, err)
	assert.Len(t, elems, 2)
}

func TestCompleteReader_Errors(t *testing.T) {
	cases := map[string]string{
		"missing key":  `{"null_objects": []}`,
		"array root":   `[]`,
		"null list":    `{"non_null_objects": null}`,
		"object list":  `{"non_null_objects": {}}`,
		"invalid json": `{"non_null_objects": [`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "in.json", content)
			_, err := CompleteReader{Path: path}.Extract(context.Background())
			require.Error(t, err)
		})
	}
}

func TestPartitionWriter_WritesIndentedVerbatim(t *testing.T) {
	dir := t.TempDir()
	w := PartitionWriter{
		CompletePath:   filepath.Join(dir, "Yesbana.json"),
		IncompletePath: filepath.Join(dir, "null-objects.json"),
	}
	p := domain.Partition{
		Complete:   []json.RawMessage{json.RawMessage(`{"z": 1, "a": "<Bole & Piassa>"}`)},
		Incomplete: []json.RawMessage{},
	}

	require.NoError(t, w.LoadPartition(context.Background(), p))

	complete, err := os.ReadFile(w.CompletePath)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"non_null_objects\": [\n        {\n            \"z\": 1,\n            \"a\": \"<Bole & Piassa>\"\n        }\n    ]\n}\n", string(complete))

	incomplete, err := os.ReadFile(w.IncompletePath)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"null_objects\": []\n}\n", string(incomplete))
}

func TestRecordWriter_BareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standardized_output.json")
	records := []domain.StandardRecord{
		{Destination: "Piassa", DestinationLatLng: domain.Point{Latitude: 9.03, Longitude: 38.75}, DestinationHexID: "89"},
	}

	w := RecordWriter{Path: path}
	assert.Equal(t, "json", w.Name())
	require.NoError(t, w.LoadBatch(context.Background(), records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    {\n        \"destination\": \"Piassa\"")
	assert.JSONEq(t, `[{"destination":"Piassa","destination_latlng":{"latitude":9.03,"longitude":38.75},"destination_hexid":"89"}]`, string(data))
}

func TestRecordWriter_EmptyBatchWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, RecordWriter{Path: path}.LoadBatch(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteIndented_BadPath(t *testing.T) {
	err := WriteIndented(filepath.Join(t.TempDir(), "missing-dir", "out.json"), []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
