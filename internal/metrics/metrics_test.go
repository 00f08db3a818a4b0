// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/products/{productID}/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/products/{productID}/recommendations", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/products/{productID}/recommendations", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordRecommendationOutcomes(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("v2", "not_found"))
	RecordRecommendation("v2", "not_found", 0)
	after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("v2", "not_found"))
	assert.Equal(t, before+1, after)
}

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits)
	missesBefore := testutil.ToFloat64(CacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(CacheHits))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(CacheMisses))
}

func TestRecordDBQueryError(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("sales_totals"))
	RecordDBQuery("sales_totals", time.Millisecond, errors.New("boom"))
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("sales_totals"))
	assert.Equal(t, before+1, after)
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))
	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}
