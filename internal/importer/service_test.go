package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/csvimport"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/importer"
)

func TestService_ImportInventory(t *testing.T) {
	csv := `Naam,SKU,Aantal,Verkoopprijs,BTW,Locatie
Boormachine,BM-100,4,"129,95",21,Magazijn A
Schroeven M4,SCR-4,abc,"0,05",21,Magazijn B
`

	svc := importer.NewService()
	res, err := svc.Import(importer.KindInventory, strings.NewReader(csv))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.TotalRows)
	assert.Equal(t, 1, res.ValidRows)
	assert.Equal(t, 1, res.InvalidRows)
	require.Len(t, res.Data, 1)

	row := res.Data[0]
	assert.Equal(t, "Boormachine", row["name"])
	assert.Equal(t, "BM-100", row["sku"])
	assert.Equal(t, 4, row["quantity"])
	assert.InDelta(t, 129.95, row["salePrice"], 1e-9)
	assert.InDelta(t, 21.0, row["vatRate"], 1e-9)
	assert.Equal(t, "Magazijn A", row["location"])

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 3")
	assert.NotEmpty(t, res.Warnings)
}

func TestService_ImportCustomersLatin1(t *testing.T) {
	utf8CSV := "Naam,Plaats,Zakelijk,Klant sinds\nBakkerij Hélène,Utrecht,ja,15-06-2021\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	svc := importer.NewService()
	res, err := svc.Import(importer.KindCustomers, bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, res.Data, 1)

	assert.Equal(t, "Bakkerij Hélène", res.Data[0]["name"])
	assert.Equal(t, true, res.Data[0]["isBusiness"])
	assert.Equal(t, "2021-06-15", res.Data[0]["customerSince"])
}

func TestService_ImportMissingRequiredColumn(t *testing.T) {
	svc := importer.NewService()
	res, err := svc.Import(importer.KindInventory, strings.NewReader("Naam,Aantal\nA,1\n"))
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, []string{`Required column "sku" not found in CSV`}, res.Errors)
}

func TestService_UnknownKind(t *testing.T) {
	svc := importer.NewService()
	_, err := svc.Import("vehicles", strings.NewReader("a\n1\n"))
	assert.ErrorIs(t, err, importer.ErrUnknownKind)
}

func TestService_RegisterAndLoadMappings(t *testing.T) {
	svc := importer.NewService()
	svc.Register("tags", []csvimport.Mapping{{CSVColumn: "tag", TargetField: "tag", Required: true}})

	err := svc.LoadMappings(strings.NewReader("mappings:\n  suppliers:\n    - column: naam\n      field: name\n"))
	require.NoError(t, err)

	assert.Equal(t, []importer.Kind{"customers", "inventory", "suppliers", "tags"}, svc.Kinds())

	res, err := svc.Import("suppliers", strings.NewReader("naam\nStaal BV\n"))
	require.NoError(t, err)
	assert.Equal(t, []csvimport.Record{{"name": "Staal BV"}}, res.Data)
}
