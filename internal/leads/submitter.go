package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elevara-labs/resourcehub/internal/logger"
)

// Submitter accepts a lead for processing. The engine core only knows this
// port; what happens downstream (CRM, mailing list, webhook) is the
// implementation's business.
type Submitter interface {
	Submit(ctx context.Context, lead *Lead) error
}

// Forwarder stores every lead locally, then forwards it to an optional HTTP
// endpoint. Local storage is authoritative: a forwarding failure is logged
// but never lost the lead, so Submit only fails when the store does.
type Forwarder struct {
	store      *Store
	forwardURL string
	client     *http.Client
	log        logger.Logger
}

// NewForwarder builds a Forwarder. forwardURL may be empty, which disables
// forwarding. A nil log discards.
func NewForwarder(store *Store, forwardURL string, log logger.Logger) *Forwarder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Forwarder{
		store:      store,
		forwardURL: forwardURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Submit persists the lead, then forwards it if an endpoint is configured.
func (f *Forwarder) Submit(ctx context.Context, lead *Lead) error {
	if err := f.store.Insert(lead); err != nil {
		return fmt.Errorf("store lead: %w", err)
	}
	f.log.Info("lead captured",
		logger.Int64("id", lead.ID),
		logger.String("source", lead.Source))

	if f.forwardURL == "" {
		return nil
	}
	if err := f.forward(ctx, lead); err != nil {
		f.log.Warn("lead forwarding failed, kept locally",
			logger.Int64("id", lead.ID), logger.Error(err))
	}
	return nil
}

func (f *Forwarder) forward(ctx context.Context, lead *Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.forwardURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post lead: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}
