/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fileio_test.go
Description: Tests for compression-aware file helpers and the metrics writer.
*/

package utils_test

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/condprob/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, utils.CompressionGzip, utils.DetectCompression("a/joint.txt.gz"))
	assert.Equal(t, utils.CompressionGzip, utils.DetectCompression("joint.GZIP"))
	assert.Equal(t, utils.CompressionZstd, utils.DetectCompression("joint.zst"))
	assert.Equal(t, utils.CompressionZstd, utils.DetectCompression("joint.zstd"))
	assert.Equal(t, utils.CompressionLZ4, utils.DetectCompression("joint.lz4"))
	assert.Equal(t, utils.CompressionNone, utils.DetectCompression("joint.txt"))
}

func TestCompressedRoundTrip(t *testing.T) {
	payload := strings.Repeat("0101,0.0625000000\n", 200)
	dir := t.TempDir()

	for _, name := range []string{"plain.txt", "table.gz", "table.zst", "table.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			w, err := utils.CreateWriter(path)
			require.NoError(t, err)
			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := utils.OpenReader(path)
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, payload, string(data))

			if name != "plain.txt" {
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Less(t, info.Size(), int64(len(payload)))
			}
		})
	}
}

func TestOpenReaderErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := utils.OpenReader(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	bogus := filepath.Join(dir, "bogus.gz")
	require.NoError(t, os.WriteFile(bogus, []byte("not gzip"), 0644))
	_, err = utils.OpenReader(bogus)
	assert.Error(t, err)
}

func TestWriteMetricsResult(t *testing.T) {
	root := t.TempDir()
	path, err := utils.WriteMetricsResult(root, "analysis", "1.0.0", map[string]int{"measurements": 3})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "analysis"), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_analysis_v1.0.0.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded["measurements"])
}
