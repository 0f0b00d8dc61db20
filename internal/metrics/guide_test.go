// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFetch(t *testing.T) {
	counter := fetchTotal.WithLabelValues("http_status")
	before := testutil.ToFloat64(counter)
	RecordFetch("http_status", 120*time.Millisecond)
	RecordFetch("http_status", 80*time.Millisecond)
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordDropped(t *testing.T) {
	counter := itemsDropped.WithLabelValues("bad_item")
	before := testutil.ToFloat64(counter)
	RecordDropped("bad_item")
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordXMLTV(t *testing.T) {
	RecordXMLTV(true, 42, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(xmltvWritten))
	assert.Equal(t, 42.0, testutil.ToFloat64(scheduleProgrammes))

	errsBefore := testutil.ToFloat64(xmltvWriteErrors)
	RecordXMLTV(false, 0, errors.New("disk full"))
	assert.Equal(t, 0.0, testutil.ToFloat64(xmltvWritten))
	assert.Equal(t, errsBefore+1, testutil.ToFloat64(xmltvWriteErrors))
}

func TestRecordRun(t *testing.T) {
	finished := time.Unix(1714564800, 0)
	RecordRun(finished, 3*time.Second)
	assert.Equal(t, 1714564800.0, testutil.ToFloat64(lastRunTimestamp))
	assert.Equal(t, 3.0, testutil.ToFloat64(lastRunDuration))
}

func TestRecordChannelsWithData(t *testing.T) {
	RecordChannelsWithData(5)
	assert.Equal(t, 5.0, testutil.ToFloat64(channelsWithData))
}

func TestIncConfigValidationError(t *testing.T) {
	before := testutil.ToFloat64(configValidationErrors)
	IncConfigValidationError()
	assert.Equal(t, before+1, testutil.ToFloat64(configValidationErrors))
}

func TestWriteTextfile(t *testing.T) {
	RecordFetch("ok", time.Millisecond)
	p := filepath.Join(t.TempDir(), "epgrab.prom")

	require.NoError(t, WriteTextfile(p))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "epgrab_fetch_total"))
}
