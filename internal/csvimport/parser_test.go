package csvimport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/csvimport"
)

func TestParseCSV(t *testing.T) {
	type args struct {
		content  string
		mappings []csvimport.Mapping
	}

	type testCase struct {
		name   string
		args   args
		verify func(t *testing.T, res *csvimport.Result)
	}

	nameQty := []csvimport.Mapping{
		{CSVColumn: "name", TargetField: "name", Required: true},
		{CSVColumn: "qty", TargetField: "qty", Transform: csvimport.ToNumber},
	}

	tests := []testCase{
		{
			name: "Valid And Invalid Rows",
			args: args{
				content:  "name,qty\nWidget,5\nGadget,abc",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.True(t, res.Success)
				assert.Equal(t, 2, res.TotalRows)
				assert.Equal(t, 1, res.ValidRows)
				assert.Equal(t, 1, res.InvalidRows)
				assert.Equal(t, []csvimport.Record{{"name": "Widget", "qty": float64(5)}}, res.Data)
				require.Len(t, res.Errors, 1)
				assert.Contains(t, res.Errors[0], "Row 3")
				assert.Contains(t, res.Errors[0], `"qty"`)
			},
		},
		{
			name: "Missing Required Header Aborts",
			args: args{
				content:  "qty\n5\n6\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.False(t, res.Success)
				assert.Empty(t, res.Data)
				assert.Zero(t, res.TotalRows)
				assert.Zero(t, res.ValidRows)
				assert.Zero(t, res.InvalidRows)
				assert.Equal(t, []string{`Required column "name" not found in CSV`}, res.Errors)
			},
		},
		{
			name: "Missing Optional Header Warns",
			args: args{
				content:  "name\nWidget\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.True(t, res.Success)
				assert.Equal(t, []string{`Optional column "qty" not found in CSV`}, res.Warnings)
				assert.Equal(t, []csvimport.Record{{"name": "Widget"}}, res.Data)
			},
		},
		{
			name: "Required Field Empty",
			args: args{
				content:  "name,qty\n ,3\nBout,4\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.Equal(t, 1, res.ValidRows)
				assert.Equal(t, 1, res.InvalidRows)
				assert.Equal(t, []string{`Row 2: Required field "name" is empty`}, res.Errors)
			},
		},
		{
			name: "Header Matching Is Case Insensitive And Trimmed",
			args: args{
				content:  "  NAME , Qty \r\nMoer,\"1,5\"\r\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				require.Len(t, res.Data, 1)
				assert.Equal(t, "Moer", res.Data[0]["name"])
				assert.Equal(t, 1.5, res.Data[0]["qty"])
			},
		},
		{
			name: "Blank Lines Are Skipped",
			args: args{
				content:  "\n\nname,qty\n\nA,1\n   \nB,2\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.Equal(t, 2, res.TotalRows)
				assert.Equal(t, 2, res.ValidRows)
			},
		},
		{
			name: "Empty Input",
			args: args{
				content:  "",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.False(t, res.Success)
				assert.Equal(t, []string{"CSV file is empty"}, res.Errors)
			},
		},
		{
			name: "Header Only",
			args: args{
				content:  "name,qty",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.False(t, res.Success)
				assert.Zero(t, res.TotalRows)
				assert.Empty(t, res.Errors)
			},
		},
		{
			name: "All Rows Invalid",
			args: args{
				content:  "name,qty\nA,x\nB,y\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.False(t, res.Success)
				assert.Equal(t, 2, res.InvalidRows)
				assert.Len(t, res.Errors, 2)
				assert.Contains(t, res.Errors[0], "Row 2")
				assert.Contains(t, res.Errors[1], "Row 3")
			},
		},
		{
			name: "Quoted Fields",
			args: args{
				content: "name,note\n\"Bout, M8\",\"zegt \"\"hallo\"\"\"\n",
				mappings: []csvimport.Mapping{
					{CSVColumn: "name", TargetField: "name", Required: true},
					{CSVColumn: "note", TargetField: "note"},
				},
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				require.Len(t, res.Data, 1)
				assert.Equal(t, "Bout, M8", res.Data[0]["name"])
				assert.Equal(t, `zegt "hallo"`, res.Data[0]["note"])
			},
		},
		{
			name: "Short Row Leaves Optional Fields Out",
			args: args{
				content:  "name,qty\nMoer\n",
				mappings: nameQty,
			},
			verify: func(t *testing.T, res *csvimport.Result) {
				assert.Equal(t, []csvimport.Record{{"name": "Moer"}}, res.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := csvimport.ParseCSV(tt.args.content, tt.args.mappings)
			require.NotNil(t, res)
			assert.Equal(t, res.TotalRows, res.ValidRows+res.InvalidRows)
			assert.Equal(t, res.ValidRows > 0, res.Success)
			tt.verify(t, res)
		})
	}
}

func TestParseCSV_QuotedSplit(t *testing.T) {
	mappings := []csvimport.Mapping{
		{CSVColumn: "a", TargetField: "a"},
		{CSVColumn: "b", TargetField: "b"},
		{CSVColumn: "c", TargetField: "c"},
	}

	res := csvimport.ParseCSV("a,b,c\n"+`a,"b,c",d`, mappings)
	require.Len(t, res.Data, 1)
	assert.Equal(t, csvimport.Record{"a": "a", "b": "b,c", "c": "d"}, res.Data[0])
}

func TestLoadMappings(t *testing.T) {
	doc := `
mappings:
  suppliers:
    - column: Naam
      field: name
      required: true
    - column: Betaaltermijn
      field: paymentTermDays
      transform: integer
    - column: Actief
      transform: boolean
`

	got, err := csvimport.LoadMappings(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got["suppliers"], 3)

	m := got["suppliers"]
	assert.Equal(t, "Naam", m[0].CSVColumn)
	assert.True(t, m[0].Required)
	assert.Nil(t, m[0].Transform)
	assert.Equal(t, "Actief", m[2].TargetField)

	res := csvimport.ParseCSV("Naam,Betaaltermijn,Actief\nStaal BV,30,ja\n", m)
	require.Len(t, res.Data, 1)
	assert.Equal(t, csvimport.Record{"name": "Staal BV", "paymentTermDays": 30, "Actief": true}, res.Data[0])
}

func TestLoadMappings_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "Unknown Transform", doc: "mappings:\n  x:\n    - column: a\n      transform: money\n", want: "unknown transform"},
		{name: "Missing Column", doc: "mappings:\n  x:\n    - field: a\n", want: "column is required"},
		{name: "Duplicate Field", doc: "mappings:\n  x:\n    - column: a\n    - column: b\n      field: a\n", want: "duplicate target field"},
		{name: "Malformed", doc: "mappings: [", want: "decoding mappings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvimport.LoadMappings(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMappings_Empty(t *testing.T) {
	got, err := csvimport.LoadMappings(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
