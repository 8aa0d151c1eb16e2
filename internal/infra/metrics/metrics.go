// Package metrics provides Prometheus metrics for ritual.
// Counters and histograms for point aggregation, streak scans,
// the XP ledger, achievement unlocks, and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Points ─────────────────────────────────────────────────────────────────

// PointsComputed tracks point aggregations by window (daily, weekly,
// monthly, lifetime).
var PointsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ritual",
	Name:      "points_computed_total",
	Help:      "Total point aggregations performed.",
}, []string{"window"})

// AggregationDuration tracks how long a period aggregation takes.
// Lifetime scans grow with history, so the buckets reach into seconds.
var AggregationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ritual",
	Name:      "aggregation_duration_seconds",
	Help:      "Duration of period point aggregations.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
}, []string{"window"})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakScans tracks backward streak scans by predicate.
var StreakScans = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ritual",
	Name:      "streak_scans_total",
	Help:      "Total streak window scans performed.",
}, []string{"predicate"})

// ─── XP & Achievements ──────────────────────────────────────────────────────

// XPGranted tracks total experience credited to the ledger.
var XPGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ritual",
	Name:      "xp_granted_total",
	Help:      "Total XP credited to the ledger.",
})

// CurrentLevel tracks the level derived from the ledger.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ritual",
	Name:      "level_current",
	Help:      "Current level derived from cumulative XP.",
})

// AchievementsUnlocked tracks newly unlocked achievements.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ritual",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements newly unlocked.",
})

// ─── Freeze Tokens ──────────────────────────────────────────────────────────

// FreezeTokensEarned tracks earned streak-freeze tokens.
var FreezeTokensEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ritual",
	Name:      "freeze_tokens_earned_total",
	Help:      "Total streak freeze tokens earned.",
})

// FreezeTokensUsed tracks spent streak-freeze tokens.
var FreezeTokensUsed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ritual",
	Name:      "freeze_tokens_used_total",
	Help:      "Total streak freeze tokens spent.",
})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// RequestDuration tracks API request latency by route and status.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ritual",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "status"})
