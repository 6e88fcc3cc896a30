/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stats

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExporterPublishesMetrics(t *testing.T) {
	e := NewExporter()
	e.ObserveHLCDrift(12.5)
	e.IncHLCOverflow()
	e.IncRegisterMerge()
	e.SetGCounterValue("views", 42)
	e.SetPNCounterValue("balance", -7)

	srv := httptest.NewServer(e.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			break
		}
	}
	body := b.String()

	require.Contains(t, body, "kcrdt_hlc_drift_ms 12.5")
	require.Contains(t, body, "kcrdt_hlc_counter_overflows_total 1")
	require.Contains(t, body, "kcrdt_register_merges_total 1")
	require.Contains(t, body, `kcrdt_gcounter_value{name="views"} 42`)
	require.Contains(t, body, `kcrdt_pncounter_value{name="balance"} -7`)
}
