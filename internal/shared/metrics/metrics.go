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
	resumeUploadsTotal        atomic.Uint64
	resumeUploadFailuresTotal atomic.Uint64
	extractTextLayerTotal     atomic.Uint64
	extractOCRTotal           atomic.Uint64
	inferenceTotal            atomic.Uint64
	inferenceFailuresTotal    atomic.Uint64
	jobSearchesTotal          atomic.Uint64
	jobSearchFailuresTotal    atomic.Uint64
	jobPostingsSkippedTotal   atomic.Uint64
	browserOpensTotal         atomic.Uint64
	browserOpenFailuresTotal  atomic.Uint64

	inferenceDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	searchDuration    = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncResumeUpload counts a stored resume.
func IncResumeUpload() { resumeUploadsTotal.Add(1) }

// IncResumeUploadFailed counts an upload that did not produce a record.
func IncResumeUploadFailed() { resumeUploadFailuresTotal.Add(1) }

// IncExtraction counts a successful extraction by the path that produced it.
func IncExtraction(method string) {
	switch method {
	case "ocr":
		extractOCRTotal.Add(1)
	default:
		extractTextLayerTotal.Add(1)
	}
}

// ObserveInference records one model call.
func ObserveInference(durationMs float64, failed bool) {
	inferenceTotal.Add(1)
	if failed {
		inferenceFailuresTotal.Add(1)
	}
	inferenceDuration.Observe(clamp(durationMs))
}

// ObserveSearch records one outbound job search.
func ObserveSearch(durationMs float64, failed bool) {
	jobSearchesTotal.Add(1)
	if failed {
		jobSearchFailuresTotal.Add(1)
	}
	searchDuration.Observe(clamp(durationMs))
}

// AddPostingsSkipped counts search items dropped during normalization.
func AddPostingsSkipped(n int) {
	if n > 0 {
		jobPostingsSkippedTotal.Add(uint64(n))
	}
}

// ObserveBrowserOpen records one attempt to open a page for the user.
func ObserveBrowserOpen(failed bool) {
	browserOpensTotal.Add(1)
	if failed {
		browserOpenFailuresTotal.Add(1)
	}
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
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
	writeCounter(&buf, "resume_uploads_total", "Total resumes analyzed and stored", resumeUploadsTotal.Load())
	writeCounter(&buf, "resume_upload_failures_total", "Total resume uploads that failed", resumeUploadFailuresTotal.Load())
	writeCounter(&buf, "extraction_text_layer_total", "Extractions served by the embedded text layer", extractTextLayerTotal.Load())
	writeCounter(&buf, "extraction_ocr_total", "Extractions served by OCR", extractOCRTotal.Load())
	writeCounter(&buf, "inference_total", "Total profile inference calls", inferenceTotal.Load())
	writeCounter(&buf, "inference_failures_total", "Total failed profile inference calls", inferenceFailuresTotal.Load())
	writeCounter(&buf, "job_searches_total", "Total outbound job searches", jobSearchesTotal.Load())
	writeCounter(&buf, "job_search_failures_total", "Total failed outbound job searches", jobSearchFailuresTotal.Load())
	writeCounter(&buf, "job_postings_skipped_total", "Search items dropped during normalization", jobPostingsSkippedTotal.Load())
	writeCounter(&buf, "browser_opens_total", "Total attempts to open a page in the browser", browserOpensTotal.Load())
	writeCounter(&buf, "browser_open_failures_total", "Total failed browser opens", browserOpenFailuresTotal.Load())
	writeHistogram(&buf, "inference_duration_ms", "Profile inference duration in milliseconds", inferenceDuration.Snapshot())
	writeHistogram(&buf, "job_search_duration_ms", "Job search duration in milliseconds", searchDuration.Snapshot())
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
	// Observe already counts a value in every bucket it fits, so counts are cumulative.
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
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

// Since returns the milliseconds elapsed since start.
func Since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
