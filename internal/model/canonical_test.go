package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSnapshot_SortsObjectKeys(t *testing.T) {
	out, err := MarshalSnapshot(map[string]any{
		"zulu":  1,
		"alpha": 2,
		"mike":  3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mike":3,"zulu":1}`, string(out))
}

func TestMarshalSnapshot_NoHTMLEscaping(t *testing.T) {
	out, err := MarshalSnapshot("Trip <2024> & back")
	require.NoError(t, err)
	assert.Equal(t, `"Trip <2024> & back"`, string(out))
}

func TestMarshalSnapshot_RejectsFloats(t *testing.T) {
	_, err := MarshalSnapshot(map[string]any{"x": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

func TestMarshalSnapshot_RejectsNil(t *testing.T) {
	_, err := MarshalSnapshot(nil)
	require.Error(t, err)

	_, err = MarshalSnapshot([]any{nil})
	require.Error(t, err)
}

func TestMarshalSnapshot_NFCNormalizesStrings(t *testing.T) {
	// "é" as e + combining acute accent normalizes to the precomposed form.
	decomposed := "café"
	out, err := MarshalSnapshot(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"café\"", string(out), "want NFC precomposed form")
}

func TestMarshalSnapshot_NestedArrays(t *testing.T) {
	out, err := MarshalSnapshot([]any{
		map[string]any{"kind": "event", "id": "ev-1"},
		map[string]any{"kind": "cluster", "count": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"ev-1","kind":"event"},{"count":3,"kind":"cluster"}]`, string(out))
}

func TestSnapshotPx_RoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3, SnapshotPx(2.5))
	assert.Equal(t, 2, SnapshotPx(2.4))
	assert.Equal(t, -3, SnapshotPx(-2.5))
	assert.Equal(t, 0, SnapshotPx(0))
}
