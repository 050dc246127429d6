package xlsxexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bizdocs/internal/gst"
)

func sampleResult(t *testing.T) *gst.Result {
	t.Helper()
	res, err := gst.Aggregate([]gst.LineItem{
		{Name: "4MP IP Camera", HSNCode: "8525", Quantity: gst.Float(4), UnitPrice: gst.Float(2500), DiscountPercent: 10, TaxRatePercent: 18},
		{Name: "8 Channel NVR", HSNCode: "8521", Quantity: gst.Float(1), UnitPrice: gst.Float(6000), TaxRatePercent: 12},
		{Name: "Cat6 Cable (305m)", HSNCode: "8525", Quantity: gst.Float(2), UnitPrice: gst.Float(1200), TaxRatePercent: 18},
	})
	require.NoError(t, err)
	return res
}

func readBack(t *testing.T, res *gst.Result) *excelize.File {
	t.Helper()
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteResult(res))
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteResult_Sheets(t *testing.T) {
	f := readBack(t, sampleResult(t))
	assert.Equal(t, []string{ItemsSheet, TaxSheet}, f.GetSheetList())
}

func TestWriteResult_Items(t *testing.T) {
	f := readBack(t, sampleResult(t))

	rows, err := f.GetRows(ItemsSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, itemColumns, rows[0])
	assert.Equal(t, []string{"1", "4MP IP Camera", "8525", "4", "2500", "10", "18", "9000"}, rows[1])
	assert.Equal(t, "8 Channel NVR", rows[2][1])
	assert.Equal(t, "2400", rows[3][7])
}

func TestWriteResult_TaxAnalysis(t *testing.T) {
	f := readBack(t, sampleResult(t))

	rows, err := f.GetRows(TaxSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, taxColumns, rows[0])
	assert.Equal(t, []string{"8525", "11400", "9", "1026", "9", "1026", "2052"}, rows[1])
	assert.Equal(t, []string{"8521", "6000", "6", "360", "6", "360", "720"}, rows[2])
	assert.Equal(t, []string{"Total", "17400", "", "1386", "", "1386", "2772"}, rows[3])
	assert.Equal(t, []string{"Grand Total", "20172"}, rows[4])
	assert.Equal(t, []string{"Amount in Words", "Rupees Twenty Thousand One Hundred and Seventy Two only"}, rows[5])
	assert.Equal(t, []string{"Tax in Words", "Rupees Two Thousand Seven Hundred and Seventy Two only"}, rows[6])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"INV-001", "INV-001"},
		{"INV/2024/07", "INV_2024_07"},
		{"../../etc/passwd", "etc_passwd"},
		{"  Q 12  ", "Q_12"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 150)
	assert.Len(t, SanitizeFilename(string(long)), 100)
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "tax_analysis_INV_2024_07.xlsx", BuildFilename("INV/2024/07"))
	assert.Equal(t, "tax_analysis.xlsx", BuildFilename("///"))
}
