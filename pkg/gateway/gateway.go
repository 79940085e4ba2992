package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/creastat/stream-gateway/pkg/collab"
	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/models"
	"github.com/creastat/stream-gateway/pkg/ratelimit"
	"github.com/creastat/stream-gateway/pkg/sse"
	"github.com/creastat/stream-gateway/pkg/types"
	"github.com/creastat/stream-gateway/pkg/upstream"
	"github.com/creastat/stream-gateway/pkg/usage"
)

// Gateway proxies chat completion requests to the upstream vendor and
// re-frames the vendor stream as SSE. Request lifecycle:
//
//	INIT -> CONNECTING -> STREAMING -> (COMPLETE | ERROR) -> CLOSED
//
// Validation, auth and rate limiting happen in INIT and fail with ordinary
// JSON responses. Once the event stream is committed, every failure becomes
// an in-band error event and the terminal stream_end is emitted exactly
// once, on every exit path.
type Gateway struct {
	upstream *upstream.Client
	limiter  *ratelimit.Limiter
	identity collab.Identity
	usage    usage.Recorder
	log      logger.Logger
	version  string
}

// New creates a gateway handler.
func New(up *upstream.Client, limiter *ratelimit.Limiter, identity collab.Identity, recorder usage.Recorder, version string, log logger.Logger) *Gateway {
	return &Gateway{
		upstream: up,
		limiter:  limiter,
		identity: identity,
		usage:    recorder,
		log:      log,
		version:  version,
	}
}

// ServeHTTP implements POST /chat/completions.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "method_not_allowed")
		return
	}

	principal, err := g.identity.Authenticate(r.Context(), collab.BearerToken(r))
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid or missing bearer token", "unauthorized")
		return
	}

	var req models.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body", "invalid_request")
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error(), "invalid_request")
		return
	}

	// Quota is checked before any upstream connection attempt: a throttled
	// request costs nothing upstream.
	if allowed, retryAfter := g.limiter.Allow(principal.ID); !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded", "rate_limited")
		return
	}

	// Credentials must resolve before the stream is opened; failing fast
	// here keeps the error an ordinary HTTP response.
	vendor, err := g.upstream.Resolve()
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "no upstream vendor available", "no_vendor")
		return
	}

	trace := models.NewRequestTrace()

	sse.SetHeaders(w)
	w.WriteHeader(http.StatusOK)
	writer := sse.NewWriter(w)

	g.stream(r.Context(), writer, trace, vendor, &req, principal)
}

// stream runs CONNECTING through CLOSED. The deferred stream_end write is
// the scoped-cleanup guarantee: it fires on success, handled errors,
// panics and client disconnect alike.
func (g *Gateway) stream(ctx context.Context, writer *sse.Writer, trace models.RequestTrace, vendor types.VendorSource, req *models.ChatCompletionRequest, principal collab.Principal) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("stream handler panicked", "request_id", trace.RequestID, "panic", r)
		}
		if err := writer.WriteEvent(models.EventStreamEnd, models.StreamEndEvent{RequestID: trace.RequestID}); err != nil {
			g.log.Debug("failed to write stream_end", "request_id", trace.RequestID, "error", err)
		}
	}()

	// The meta event goes out before any upstream I/O so clients can tell
	// "proxy accepted" apart from "vendor connected".
	writer.WriteEvent(models.EventMeta, models.MetaEvent{
		RequestID: trace.RequestID,
		Status:    "connected",
		Version:   g.version,
	})

	resp, err := g.upstream.OpenStream(ctx, vendor, req.ToUpstream())
	if err != nil {
		g.log.Warn("upstream connect failed",
			"request_id", trace.RequestID,
			"vendor", vendor.Name,
			"error", err,
		)
		writer.WriteEvent(models.EventError, models.StreamErrorEvent{
			RequestID: trace.RequestID,
			Code:      classifyConnectError(err),
			Message:   "failed to connect to upstream vendor",
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Warn("upstream returned error status",
			"request_id", trace.RequestID,
			"vendor", vendor.Name,
			"status", resp.StatusCode,
		)
		writer.WriteEvent(models.EventError, models.StreamErrorEvent{
			RequestID: trace.RequestID,
			Code:      models.ErrCodeUpstream,
			Message:   fmt.Sprintf("upstream vendor returned HTTP %d", resp.StatusCode),
			Status:    resp.StatusCode,
		})
		return
	}

	trace.VendorTraceID = upstream.VendorTraceID(resp)

	writer.WriteEvent(models.EventStreamStart, models.StreamStartEvent{
		RequestID:     trace.RequestID,
		VendorTraceID: trace.VendorTraceID,
		Model:         req.Model,
	})

	reader := sse.NewLineReader(resp.Body)
	lines := 0

	for {
		select {
		case <-ctx.Done():
			// Client went away mid-stream; unwind and release the
			// upstream connection.
			g.log.Info("client disconnected during stream",
				"request_id", trace.RequestID,
				"lines_forwarded", lines,
			)
			return
		default:
		}

		line, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			g.log.Warn("upstream read failed",
				"request_id", trace.RequestID,
				"lines_forwarded", lines,
				"error", err,
			)
			writer.WriteEvent(models.EventError, models.StreamErrorEvent{
				RequestID: trace.RequestID,
				Code:      classifyStreamError(err),
				Message:   "upstream stream interrupted",
			})
			return
		}

		if isDoneSentinel(line) {
			writer.WriteRaw("data: [DONE]")
			writer.WriteRaw("")
			break
		}

		// Completed lines are forwarded byte-for-byte under their original
		// directive; blank separator lines go through verbatim.
		if err := writer.WriteRaw(line); err != nil {
			g.log.Debug("client write failed", "request_id", trace.RequestID, "error", err)
			return
		}
		lines++
	}

	elapsed := trace.Elapsed()
	writer.WriteEvent(models.EventStreamComplete, models.StreamCompleteEvent{
		RequestID:    trace.RequestID,
		ProcessingMS: elapsed,
	})

	g.usage.RecordStream(ctx, usage.StreamUsage{
		RequestID:    trace.RequestID,
		UserID:       principal.ID,
		Model:        req.Model,
		Vendor:       vendor.Name,
		ProcessingMS: elapsed,
		Lines:        lines,
	})

	g.log.Info("stream completed",
		"request_id", trace.RequestID,
		"vendor", vendor.Name,
		"model", req.Model,
		"lines_forwarded", lines,
		"processing_ms", elapsed,
	)
}

// isDoneSentinel recognizes the vendor end-of-stream marker in any of its
// spacings.
func isDoneSentinel(line string) bool {
	if !strings.HasPrefix(line, "data:") {
		return false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "data:")) == "[DONE]"
}

func writeJSONError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.HTTPError{Error: message, Code: code})
}
