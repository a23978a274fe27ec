// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash-latest"
	defaultGeminiTimeout = 300 * time.Second

	// errorBodyLimit caps how much of a failed response body is kept.
	errorBodyLimit = 4 << 10
)

// MsgTransport marks failures before any HTTP status was received.
const MsgTransport = "transport_failure"

// GeminiConfig configures a GeminiClient.
type GeminiConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration

	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	hc     *http.Client
	url    string
	model  string
	apiKey string
}

// NewGeminiClient creates a client. An empty API key is a config error.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.ConfigError("gemini: missing api key", nil)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGeminiTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/models/" + url.PathEscape(cfg.Model) + ":generateContent"
	if _, err := url.Parse(endpoint); err != nil {
		return nil, errors.ConfigError("gemini: invalid base url", err)
	}

	return &GeminiClient{
		hc:     hc,
		url:    endpoint,
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}, nil
}

// Name implements Generator.
func (c *GeminiClient) Name() string {
	return "gemini/" + c.model
}

type gmPart struct {
	Text string `json:"text"`
}

type gmContent struct {
	Role  string   `json:"role,omitempty"`
	Parts []gmPart `json:"parts"`
}

type gmReq struct {
	Contents []gmContent `json:"contents"`
}

type gmResp struct {
	Candidates []struct {
		Content struct {
			Parts []gmPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// Generate implements Generator.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (*Response, error) {
	body, err := json.Marshal(&gmReq{
		Contents: []gmContent{{Role: "user", Parts: []gmPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, errors.ModelError("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.ModelError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
			return nil, errors.CancelledError("model call interrupted", ctx.Err())
		}
		return nil, errors.ModelError(MsgTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.ModelError(errors.MsgRateLimited, statusError(resp))
	}
	if resp.StatusCode/100 == 5 {
		return nil, errors.ModelError(errors.MsgUpstream, statusError(resp))
	}
	if resp.StatusCode/100 != 2 {
		return nil, errors.ModelError("request rejected", statusError(resp))
	}

	var gr gmResp
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, errors.ModelError("decode response", err)
	}
	if len(gr.Candidates) == 0 {
		if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
			return nil, errors.ModelError("prompt blocked: "+gr.PromptFeedback.BlockReason, nil)
		}
		return nil, errors.ModelError("response has no candidates", nil)
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return nil, errors.ModelError("response has no text", nil).
			WithContext("finish_reason", gr.Candidates[0].FinishReason)
	}

	return &Response{
		Text: text.String(),
		Usage: Usage{
			PromptTokens: gr.UsageMetadata.PromptTokenCount,
			OutputTokens: gr.UsageMetadata.CandidatesTokenCount,
		},
		Duration: time.Since(start),
	}, nil
}

func statusError(resp *http.Response) error {
	slurp, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	msg := strings.TrimSpace(string(slurp))
	if msg == "" {
		return fmt.Errorf("gemini upstream %d", resp.StatusCode)
	}
	return fmt.Errorf("gemini upstream %d: %s", resp.StatusCode, msg)
}
