package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
	"github.com/arloliu/datets/wire"
)

const seriesA = `date,value
2020-01-01,1
2020-01-02,2
2020-01-03,3
`

const seriesB = `2020-01-02,10
2020-01-04,40
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// execute runs cmd under a root carrying the persistent config flag, with
// config lookup confined to an empty home directory.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := &cobra.Command{Use: "datets", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String(ConfigFlag, "", "")
	root.AddCommand(cmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	err := root.Execute()

	return out.String(), err
}

func TestInspect_Table(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", seriesA)

	out, err := execute(t, NewInspectCommand(), path, "--head", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Entries")
	assert.Contains(t, out, "2020-01-01")
	assert.Contains(t, out, "2020-01-03")
	assert.Contains(t, strings.ToUpper(out), "2 OF 3 ROWS")
}

func TestInspect_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", seriesA)

	out, err := execute(t, NewInspectCommand(), path, "--format", "json", "--head", "5")
	require.NoError(t, err)

	var sum Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 3, sum.Entries)
	assert.Equal(t, "2020-01-01", sum.Earliest)
	assert.Equal(t, "2020-01-03", sum.Latest)
	assert.InDelta(t, 1.0, sum.Min, 0)
	assert.InDelta(t, 3.0, sum.Max, 0)
	assert.Len(t, sum.Rows, 3)
	assert.Len(t, sum.Fingerprint, 16)
}

func TestInspect_YAMLFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", seriesA)
	cfg := writeFile(t, dir, "cfg.yaml", "output:\n  format: yaml\n  head: 1\n")

	out, err := execute(t, NewInspectCommand(), path, "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "entries: 3")
	assert.Contains(t, out, "2020-01-01")
	assert.NotContains(t, out, "2020-01-02")
}

func TestInspect_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, NewInspectCommand(), filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	bad := writeFile(t, dir, "bad.csv", "2020-01-01,1\n2020-01-02,x\n")
	_, err = execute(t, NewInspectCommand(), bad)
	require.ErrorIs(t, err, ErrBadRow)

	good := writeFile(t, dir, "a.csv", seriesA)
	_, err = execute(t, NewInspectCommand(), good, "--format", "xml")
	require.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, NewInspectCommand(), good, "--head", "-1")
	require.Error(t, err)
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", seriesA)
	b := writeFile(t, dir, "b.csv", seriesB)

	t.Run("intersection", func(t *testing.T) {
		out, err := execute(t, NewCombineCommand(), a, b, "--op", "add")
		require.NoError(t, err)
		assert.Equal(t, "date,value\n2020-01-02,12\n", out)
	})

	t.Run("union", func(t *testing.T) {
		out, err := execute(t, NewCombineCommand(), a, b, "--op", "multiply", "--mode", "union")
		require.NoError(t, err)
		assert.Equal(t, "date,value\n2020-01-01,1\n2020-01-02,20\n2020-01-03,3\n2020-01-04,40\n", out)
	})

	t.Run("disjoint overlap", func(t *testing.T) {
		_, err := execute(t, NewCombineCommand(), a, b, "--mode", "disjoint")
		require.ErrorIs(t, err, errs.ErrOverlappingKeys)
	})

	t.Run("disjoint", func(t *testing.T) {
		c := writeFile(t, dir, "c.csv", "2021-01-01,7\n")
		out, err := execute(t, NewCombineCommand(), a, c, "--mode", "disjoint")
		require.NoError(t, err)
		assert.Equal(t, 5, strings.Count(out, "\n"))
	})

	t.Run("output file", func(t *testing.T) {
		dst := filepath.Join(dir, "out.csv")
		out, err := execute(t, NewCombineCommand(), a, b, "--op", "second", "-o", dst)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "date,value\n2020-01-02,10\n", string(data))
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, err := execute(t, NewCombineCommand(), a, b, "--op", "modulo")
		require.ErrorIs(t, err, ErrUnknownOperator)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := execute(t, NewCombineCommand(), a, b, "--mode", "outer")
		require.ErrorIs(t, err, ErrUnknownMode)
	})
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.csv", seriesA)
	frame := filepath.Join(dir, "a.bin")

	out, err := execute(t, NewEncodeCommand(), src, "-o", frame,
		"--compression", "s2", "--key-encoding", "raw", "--byte-order", "big")
	require.NoError(t, err)
	assert.Contains(t, out, "3 entries")

	data, err := os.ReadFile(frame)
	require.NoError(t, err)
	h, err := wire.ParseHeader(data)
	require.NoError(t, err)
	assert.Equal(t, format.TypeRaw, h.Flag.KeyEncodingType())
	assert.Equal(t, format.TypeGorilla, h.Flag.ValueEncodingType())
	assert.Equal(t, format.CompressionS2, h.Flag.KeyCompression())
	assert.Equal(t, format.CompressionS2, h.Flag.ValueCompression())
	assert.True(t, h.Flag.IsBigEndian())

	out, err = execute(t, NewDecodeCommand(), frame)
	require.NoError(t, err)
	assert.Equal(t, seriesA, out)

	// inspect and combine read frames as well as CSV
	out, err = execute(t, NewInspectCommand(), frame, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entries": 3`)
}

func TestEncode_Errors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.csv", seriesA)

	_, err := execute(t, NewEncodeCommand(), src)
	require.ErrorIs(t, err, ErrNoOutputFile)

	_, err = execute(t, NewEncodeCommand(), src, "-o", filepath.Join(dir, "x.bin"), "--value-encoding", "delta")
	require.ErrorIs(t, err, errs.ErrInvalidEncodingType)

	_, err = execute(t, NewEncodeCommand(), src, "-o", filepath.Join(dir, "x.bin"), "--compression", "brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, NewDecodeCommand(), writeFile(t, dir, "a.csv", seriesA))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)

	_, err = execute(t, NewDecodeCommand(), writeFile(t, dir, "short.bin", "abc"))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}
