package ndjson_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorasense/uplink-decoder/internal/adapter/ndjson"
	"github.com/lorasense/uplink-decoder/internal/domain"
)

func TestReader_Extract(t *testing.T) {
	t.Run("reads envelopes in order", func(t *testing.T) {
		input := strings.Join([]string{
			`{"data":"XyxAArEz8AAAAP8=","dev_eui":"A84041FFFE000001"}`,
			`{"data":"QTI=","device_id":"station-2"}`,
		}, "\n")

		r := ndjson.NewReader(strings.NewReader(input), slog.Default())
		ctx := context.Background()

		first, err := r.Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A84041FFFE000001", first.EUI())
		assert.Equal(t, "XyxAArEz8AAAAP8=", first.Data)

		second, err := r.Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "station-2", second.EUI())

		_, err = r.Extract(ctx)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("skips blank and malformed lines", func(t *testing.T) {
		input := strings.Join([]string{
			``,
			`not json at all`,
			`   `,
			`{"data":"QTI=","dev_eui":"dev-1"}`,
		}, "\n")

		r := ndjson.NewReader(strings.NewReader(input), slog.Default())

		up, err := r.Extract(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "dev-1", up.EUI())
	})

	t.Run("empty stream returns EOF", func(t *testing.T) {
		r := ndjson.NewReader(strings.NewReader(""), slog.Default())
		_, err := r.Extract(context.Background())
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := ndjson.NewReader(strings.NewReader(`{"data":"QTI="}`), slog.Default())
		_, err := r.Extract(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriter_Load(t *testing.T) {
	var buf bytes.Buffer
	w := ndjson.NewWriter(&buf)

	rec := domain.NewRecord(2)
	rec.Set("Temperature", 20.1)
	rec.Set("Humidity", 68.8)

	out := domain.DecodedUplink{
		DevEUI:      "dev-1",
		Profile:     "barani",
		Values:      rec,
		ProcessedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	require.NoError(t, w.Load(context.Background(), out))
	require.NoError(t, w.Load(context.Background(), out))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "dev-1", got["dev_eui"])
	assert.Equal(t, "barani", got["profile"])
	assert.NotContains(t, got, "profile_fallback")
	assert.NotContains(t, got, "received_at")

	values, ok := got["values"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 20.1, values["Temperature"])
}

func TestWriter_ReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	up := domain.Uplink{Data: "QTI=", DevEUI: "dev-1"}
	data, err := json.Marshal(up)
	require.NoError(t, err)
	buf.Write(append(data, '\n'))

	r := ndjson.NewReader(&buf, slog.Default())
	got, err := r.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, up, got)
}
