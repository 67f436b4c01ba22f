package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	previewRendersTotal atomic.Uint64
	previewCacheHits    atomic.Uint64
	previewCacheMisses  atomic.Uint64
	exportsTotal        atomic.Uint64
	exportsFailedTotal  atomic.Uint64
	resumeSavesTotal    atomic.Uint64
	versionConflicts    atomic.Uint64

	exportDuration = newHistogram([]float64{25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncPreviewRendered counts a rendered HTML preview.
func IncPreviewRendered() {
	previewRendersTotal.Add(1)
}

// IncPreviewCache counts a preview cache lookup.
func IncPreviewCache(hit bool) {
	if hit {
		previewCacheHits.Add(1)
		return
	}
	previewCacheMisses.Add(1)
}

// IncExport counts a PDF export attempt.
func IncExport() {
	exportsTotal.Add(1)
}

// IncExportFailed counts a PDF export that produced no file.
func IncExportFailed() {
	exportsFailedTotal.Add(1)
}

// IncResumeSaved counts an accepted save.
func IncResumeSaved() {
	resumeSavesTotal.Add(1)
}

// IncVersionConflict counts a save rejected for a stale version.
func IncVersionConflict() {
	versionConflicts.Add(1)
}

// ObserveExportDurationMs records a PDF export duration in milliseconds.
func ObserveExportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	exportDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "preview_renders_total", "Total HTML previews rendered", previewRendersTotal.Load())
	writeCounter(&buf, "preview_cache_hits_total", "Preview cache hits", previewCacheHits.Load())
	writeCounter(&buf, "preview_cache_misses_total", "Preview cache misses", previewCacheMisses.Load())
	writeCounter(&buf, "pdf_exports_total", "Total PDF exports attempted", exportsTotal.Load())
	writeCounter(&buf, "pdf_exports_failed_total", "Total PDF exports that failed", exportsFailedTotal.Load())
	writeCounter(&buf, "resume_saves_total", "Total resume saves accepted", resumeSavesTotal.Load())
	writeCounter(&buf, "resume_version_conflicts_total", "Total saves rejected for a stale version", versionConflicts.Load())
	writeHistogram(&buf, "pdf_export_duration_ms", "PDF export duration in milliseconds", exportDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
