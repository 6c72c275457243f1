package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "naam,omschrijving\nKoffiezetapparaat,Crème brûlée\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// "café,prijs\n" in Windows-1252: é = 0xE9
	latin1Bytes := []byte{'c', 'a', 'f', 0xE9, ',', 'p', 'r', 'i', 'j', 's', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "café,prijs\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("naam,aantal\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "naam,aantal\n", string(got))
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("regel,één\n"), 1000)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestToUTF8(t *testing.T) {
	t.Run("valid utf-8 is unchanged", func(t *testing.T) {
		assert.Equal(t, "Hallo Daar", encoding.ToUTF8([]byte("Hallo Daar")))
		assert.Equal(t, "één", encoding.ToUTF8([]byte("één")))
	})

	t.Run("windows-1252 bytes are decoded", func(t *testing.T) {
		b, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Geachte heer, de offerte is bijgevoegd. Met vriendelijke groet, André"))
		require.NoError(t, err)

		assert.Equal(t, "Geachte heer, de offerte is bijgevoegd. Met vriendelijke groet, André", encoding.ToUTF8(b))
	})

	t.Run("bom is stripped", func(t *testing.T) {
		assert.Equal(t, "x", encoding.ToUTF8([]byte{0xEF, 0xBB, 0xBF, 'x'}))
	})
}
