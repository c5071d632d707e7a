package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"github.com/telhawk-systems/telhawk-schema/internal/logging"
	"github.com/telhawk-systems/telhawk-schema/internal/messaging"
	natsclient "github.com/telhawk-systems/telhawk-schema/internal/messaging/nats"
	"github.com/telhawk-systems/telhawk-schema/internal/service"
	"github.com/telhawk-systems/telhawk-schema/pkg/jsonschema"
)

// Handler answers schema requests arriving over NATS.
type Handler struct {
	client *natsclient.Client
	svc    *service.SchemaService
	subs   []messaging.Subscription
	logger *slog.Logger
}

// NewHandler creates a NATS handler around the schema service.
func NewHandler(client *natsclient.Client, svc *service.SchemaService) *Handler {
	return &Handler{
		client: client,
		svc:    svc,
		subs:   make([]messaging.Subscription, 0),
		logger: slog.Default().With(logging.Component("nats-handler")),
	}
}

// Start subscribes to the schema subjects with the worker queue group.
func (h *Handler) Start(ctx context.Context) error {
	compileSub, err := h.client.QueueSubscribe(
		messaging.SubjectSchemaCompile, messaging.QueueSchemaWorkers, h.handleCompile)
	if err != nil {
		return fmt.Errorf("failed to subscribe to compile requests: %w", err)
	}
	h.subs = append(h.subs, compileSub)

	lookupSub, err := h.client.QueueSubscribe(
		messaging.SubjectSchemaLookupUID, messaging.QueueSchemaWorkers, h.handleLookupUID)
	if err != nil {
		return fmt.Errorf("failed to subscribe to uid lookups: %w", err)
	}
	h.subs = append(h.subs, lookupSub)

	h.logger.InfoContext(ctx, "NATS handler started",
		slog.String("compile_subject", messaging.SubjectSchemaCompile),
		slog.String("lookup_subject", messaging.SubjectSchemaLookupUID),
		slog.String("queue_group", messaging.QueueSchemaWorkers))
	return nil
}

// Stop unsubscribes from all subjects.
func (h *Handler) Stop() error {
	h.logger.Info("Stopping NATS handler")
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			h.logger.Warn("Failed to unsubscribe",
				slog.String("subject", sub.Subject()), logging.Error(err))
		}
	}
	h.subs = nil
	return nil
}

// Client returns the underlying NATS client, for connectivity probes.
func (h *Handler) Client() *natsclient.Client {
	return h.client
}

func (h *Handler) handleCompile(ctx context.Context, msg *messaging.Message) error {
	var req CompileRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.logger.Error("Failed to unmarshal compile request", logging.Error(err))
		return h.reply(ctx, msg.Reply, &CompileResponse{Error: "invalid request payload"})
	}

	resp := h.compile(ctx, &req)
	if !resp.Success {
		h.logger.Warn("Compile request failed",
			slog.String("uri", req.URI), slog.String("error", resp.Error))
	}
	return h.reply(ctx, msg.Reply, resp)
}

// compile runs one compile request and shapes the response.
func (h *Handler) compile(ctx context.Context, req *CompileRequest) *CompileResponse {
	start := time.Now()
	data, err := h.svc.SchemaForURI(ctx, req.URI, req.Embed)
	resp := &CompileResponse{TookMs: time.Since(start).Milliseconds()}
	if err != nil {
		resp.Error = err.Error()
		if code, ok := jsonschema.CodeOf(err); ok {
			resp.Code = string(code)
		}
		return resp
	}
	resp.Success = true
	resp.Schema = data
	return resp
}

func (h *Handler) handleLookupUID(ctx context.Context, msg *messaging.Message) error {
	var req LookupUIDRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.logger.Error("Failed to unmarshal uid lookup request", logging.Error(err))
		return h.reply(ctx, msg.Reply, &LookupUIDResponse{Error: "invalid request payload"})
	}
	return h.reply(ctx, msg.Reply, h.lookup(&req))
}

// lookup resolves one UID request.
func (h *Handler) lookup(req *LookupUIDRequest) *LookupUIDResponse {
	res, err := h.svc.LookupUID(req.UID)
	if err != nil {
		resp := &LookupUIDResponse{UID: req.UID, Error: err.Error()}
		if code, ok := jsonschema.CodeOf(err); ok {
			resp.Code = string(code)
		}
		return resp
	}
	return &LookupUIDResponse{
		Success:    true,
		UID:        res.UID,
		ClassUID:   res.ClassUID,
		ActivityID: res.ActivityID,
		ClassName:  res.ClassName,
	}
}

// reply publishes resp to the reply subject. Fire-and-forget requests
// carry no reply subject and get no response.
func (h *Handler) reply(ctx context.Context, subject string, resp any) error {
	if subject == "" {
		return nil
	}
	return h.client.PublishJSON(ctx, subject, resp)
}
