package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

const sample = `{"b":1,"a":[true,null]}`

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, CompressionNone, Detect([]byte(sample)))
	assert.Equal(t, CompressionGzip, Detect(gzipped(t, []byte(sample))))
	assert.Equal(t, CompressionZstd, Detect(zstded(t, []byte(sample))))
	assert.Equal(t, CompressionNone, Detect(nil))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"plain.json":   []byte(sample),
		"doc.json.gz":  gzipped(t, []byte(sample)),
		"doc.json.zst": zstded(t, []byte(sample)),
	}
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0o644))
			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, sample, string(got))
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRead_CorruptGzip(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	assert.Error(t, err)
}

func field(name string, oid uint32) pgconn.FieldDescription {
	return pgconn.FieldDescription{Name: name, DataTypeOID: oid, Format: pgtype.TextFormatCode}
}

func TestDecodeCell(t *testing.T) {
	v, err := decodeCell(field("doc", pgtype.JSONOID), []byte(sample), nil)
	require.NoError(t, err)
	assert.Equal(t, "b", v.Fields()[0].Key, "key order comes from the wire text")

	bin := pgconn.FieldDescription{Name: "doc", DataTypeOID: pgtype.JSONBOID, Format: pgtype.BinaryFormatCode}
	v, err = decodeCell(bin, append([]byte{1}, sample...), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())

	v, err = decodeCell(field("n", pgtype.Int8OID), []byte("42"), int64(42))
	require.NoError(t, err)
	assert.Equal(t, jsondoc.KindNumber, v.Kind())

	v, err = decodeCell(field("n", pgtype.Int8OID), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, jsondoc.KindNull, v.Kind())

	v, err = decodeCell(field("t", pgtype.TextOID), []byte(`[1,2]`), `[1,2]`)
	require.NoError(t, err)
	assert.Equal(t, jsondoc.KindArray, v.Kind())

	v, err = decodeCell(field("t", pgtype.TextOID), []byte(`42`), `42`)
	require.NoError(t, err)
	assert.Equal(t, jsondoc.KindString, v.Kind(), "scalar text stays text")

	_, err = decodeCell(field("doc", pgtype.JSONOID), []byte(`{"a":`), nil)
	var syn *jsondoc.SyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestAssemble(t *testing.T) {
	_, err := assemble([]pgconn.FieldDescription{field("id", pgtype.Int4OID)}, nil)
	assert.ErrorIs(t, err, ErrEmptyResult)

	doc := jsondoc.Object(jsondoc.Field{Key: "x", Value: jsondoc.Number(1)})
	single, err := assemble(
		[]pgconn.FieldDescription{field("data", pgtype.JSONBOID)},
		[][]*jsondoc.Value{{doc}},
	)
	require.NoError(t, err)
	assert.Same(t, doc, single)

	table, err := assemble(
		[]pgconn.FieldDescription{field("id", pgtype.Int4OID), field("name", pgtype.TextOID)},
		[][]*jsondoc.Value{
			{jsondoc.Number(1), jsondoc.String("a")},
			{jsondoc.Number(2), jsondoc.Null()},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"name":"a"},{"id":2,"name":null}]`, jsondoc.Compact(table))
}

func TestWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`1`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	select {
	case _, ok := <-w.Changes():
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
