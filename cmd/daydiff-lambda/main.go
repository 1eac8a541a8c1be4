// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command daydiff-lambda serves the calculator API as an AWS Lambda function
// behind an API Gateway proxy integration.
//
// It is configured like daydiff, with the configuration file named by
// DAYDIFF_CONFIG and the DAYDIFF_* environment variables. Logs are written
// as JSON to standard output.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"gonih.org/daydiff/internal/calculator"
	"gonih.org/daydiff/internal/config"
	"gonih.org/daydiff/internal/httpapi"
	"gonih.org/daydiff/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("DAYDIFF_CONFIG"))
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel, "json")
	if err != nil {
		log.Fatal(err)
	}
	h := &handler{calc: calculator.New(cfg, nil), logger: logger, maxBody: cfg.MaxBodyBytes}
	lambda.Start(h.handle)
}

type handler struct {
	calc   *calculator.Calculator
	logger *slog.Logger
	// maxBody limits the decoded request body, if positive.
	maxBody int64
}

func (h *handler) handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := h.logger.With("request_id", req.RequestContext.RequestID)
	ctx = logging.WithLogger(ctx, logger)
	logger.Info("request", "method", req.HTTPMethod, "path", req.Path)

	switch {
	case strings.HasSuffix(req.Path, "/healthz") && req.HTTPMethod == http.MethodGet:
		return respond(http.StatusOK, map[string]string{"status": "ok"}), nil
	case !strings.HasSuffix(req.Path, "/calculator"):
		return fail(req, http.StatusNotFound, httpapi.CodeNotFound, "no such path "+req.Path), nil
	case req.HTTPMethod != http.MethodPost:
		return fail(req, http.StatusMethodNotAllowed, httpapi.CodeMethodNotAllowed, "only POST is supported"), nil
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		var err error
		if body, err = base64.StdEncoding.DecodeString(req.Body); err != nil {
			return fail(req, http.StatusBadRequest, httpapi.CodeBadRequest, "malformed base64 body: "+err.Error()), nil
		}
	}
	if h.maxBody > 0 && int64(len(body)) > h.maxBody {
		return fail(req, http.StatusRequestEntityTooLarge, httpapi.CodeTooLarge, fmt.Sprintf("request body larger than %d bytes", h.maxBody)), nil
	}

	var creq calculator.Request
	if err := json.Unmarshal(body, &creq); err != nil {
		return fail(req, http.StatusBadRequest, httpapi.CodeBadRequest, "malformed request body: "+err.Error()), nil
	}
	res, err := h.calc.Calculate(ctx, creq)
	if err != nil {
		status, code := httpapi.StatusFor(err)
		return fail(req, status, code, err.Error()), nil
	}
	return respond(http.StatusOK, res), nil
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	b, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"internal","message":"encoding response failed"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}

func fail(req events.APIGatewayProxyRequest, status int, code, message string) events.APIGatewayProxyResponse {
	return respond(status, httpapi.ErrorBody{
		Error:     code,
		Message:   message,
		RequestID: req.RequestContext.RequestID,
	})
}
