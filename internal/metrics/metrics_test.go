// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))

	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("Expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("Expected gauge %f, got %f", base+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("Expected gauge back to %f, got %f", base, got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsBuilt.WithLabelValues("remedial"))

	RecordRecommendation("remedial")

	after := testutil.ToFloat64(RecommendationsBuilt.WithLabelValues("remedial"))
	if after != before+1 {
		t.Errorf("Expected remedial counter to increment, got %f -> %f", before, after)
	}
}

func TestRecordPathBuild(t *testing.T) {
	okBefore := testutil.ToFloat64(PathsBuilt)
	failBefore := testutil.ToFloat64(PathBuildFailures)

	RecordPathBuild(nil)
	RecordPathBuild(errors.New("unsatisfiable"))

	if got := testutil.ToFloat64(PathsBuilt); got != okBefore+1 {
		t.Errorf("Expected success counter %f, got %f", okBefore+1, got)
	}
	if got := testutil.ToFloat64(PathBuildFailures); got != failBefore+1 {
		t.Errorf("Expected failure counter %f, got %f", failBefore+1, got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	errBefore := testutil.ToFloat64(StoreErrors.WithLabelValues("get", "profile"))

	RecordStoreOperation("get", "profile", 2*time.Millisecond, nil)
	if got := testutil.ToFloat64(StoreErrors.WithLabelValues("get", "profile")); got != errBefore {
		t.Errorf("Expected no error increment on success, got %f", got)
	}

	RecordStoreOperation("get", "profile", 2*time.Millisecond, errors.New("not found"))
	if got := testutil.ToFloat64(StoreErrors.WithLabelValues("get", "profile")); got != errBefore+1 {
		t.Errorf("Expected error counter %f, got %f", errBefore+1, got)
	}
}

func TestRecordProgressEventAndStyleUpdate(t *testing.T) {
	pBefore := testutil.ToFloat64(ProgressEventsApplied.WithLabelValues("completed"))
	sBefore := testutil.ToFloat64(StyleUpdates.WithLabelValues("assessment"))

	RecordProgressEvent("completed")
	RecordStyleUpdate("assessment")

	if got := testutil.ToFloat64(ProgressEventsApplied.WithLabelValues("completed")); got != pBefore+1 {
		t.Errorf("Expected progress counter %f, got %f", pBefore+1, got)
	}
	if got := testutil.ToFloat64(StyleUpdates.WithLabelValues("assessment")); got != sBefore+1 {
		t.Errorf("Expected style counter %f, got %f", sBefore+1, got)
	}
}
