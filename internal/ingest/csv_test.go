package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedreview/internal/data"
)

const sampleCSV = `UID,RECORD_NO,SITE_NO,STATION_NM,SAMPLE_START_DT,MEDIUM_CD,PARM_CD,RESULT_VA,REMARK_CD,METHOD_CD,SAMPLER_TYPE,SAMPLE_STATUS,COMMENT_TX,Q_VA,UV_Q_VA,QA_DB_NO
u1,r1,0750,RIO GRANDE,2024-04-01 08:30,WS,80154,120.5,,10,US DH-95,completed,,350,,01
u1,r1,0750,RIO GRANDE,2024-04-01 08:30,WS,91157,0.42,,10,US DH-95,completed,,350,,01
u2,r2,0313,PECOS RIVER,2024-04-02,WSQ,80154,,<,70,,proposed,bottle cracked,,,02
`

func newReader() *Reader {
	return &Reader{TimeLayout: "2006-01-02 15:04"}
}

func TestRead_ParsesRows(t *testing.T) {
	ds, err := newReader().Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	first := ds.Rows()[0]
	assert.Equal(t, "u1", first.UID)
	assert.Equal(t, "0750", first.SiteID)
	assert.Equal(t, "RIO GRANDE", first.StationName)
	assert.Equal(t, data.ParamSSC, first.ParameterCode)
	require.NotNil(t, first.ResultValue)
	assert.Equal(t, 120.5, *first.ResultValue)
	require.NotNil(t, first.Discharge)
	assert.Equal(t, 350.0, *first.Discharge)
	assert.Nil(t, first.UVDischarge)
	assert.Equal(t, time.Date(2024, 4, 1, 8, 30, 0, 0, time.UTC), first.SampleStart)

	third := ds.Rows()[2]
	assert.Nil(t, third.ResultValue)
	assert.Equal(t, "<", third.RemarkCode)
	assert.Equal(t, "bottle cracked", third.Comment)
	assert.Equal(t, "02", third.QADatabase)
	// Date-only timestamps fall back to the date layout.
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), third.SampleStart)
}

func TestRead_StripsBOM(t *testing.T) {
	ds, err := newReader().Read(strings.NewReader("\ufeff" + sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, "u1", ds.Rows()[0].UID)
}

func TestRead_HeaderOnlyIsEmptyDataset(t *testing.T) {
	ds, err := newReader().Read(strings.NewReader("UID,SITE_NO,PARM_CD\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestRead_MissingRequiredColumns(t *testing.T) {
	_, err := newReader().Read(strings.NewReader("UID,STATION_NM\nu1,RIO GRANDE\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required columns not found")
	assert.Contains(t, err.Error(), "SITE_NO")
	assert.Contains(t, err.Error(), "PARM_CD")
}

func TestRead_NoHeader(t *testing.T) {
	_, err := newReader().Read(strings.NewReader(""))
	require.Error(t, err)
}

func TestRead_ExtraAndReorderedColumns(t *testing.T) {
	csvData := "EXTRA_COL,PARM_CD,SITE_NO,UID\nx,80154,0750,u1\n"
	ds, err := newReader().Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "u1", ds.Rows()[0].UID)
	assert.Equal(t, "0750", ds.Rows()[0].SiteID)
	assert.Equal(t, data.ParamSSC, ds.Rows()[0].ParameterCode)
}

func TestRead_RejectsEmptyUID(t *testing.T) {
	csvData := "UID,SITE_NO,PARM_CD\n,0750,80154\n"
	_, err := newReader().Read(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "empty UID")
}

func TestRead_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "bad result value",
			csv:  "UID,SITE_NO,PARM_CD,RESULT_VA\nu1,0750,80154,not-a-number\n",
		},
		{
			name: "bad timestamp",
			csv:  "UID,SITE_NO,PARM_CD,SAMPLE_START_DT\nu1,0750,80154,April 1st\n",
		},
		{
			name: "bad discharge",
			csv:  "UID,SITE_NO,PARM_CD,Q_VA\nu1,0750,80154,n/a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newReader().Read(strings.NewReader(tt.csv))
			require.Error(t, err)
		})
	}
}
