package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/wolfman30/portfolio-contact/cmd/mainconfig"
	"github.com/wolfman30/portfolio-contact/internal/app/bootstrap"
	"github.com/wolfman30/portfolio-contact/internal/contact"
	appconfig "github.com/wolfman30/portfolio-contact/internal/config"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	app, err := bootstrap.BuildApp(context.Background(), cfg, mainconfig.LoadAWSConfig, logger)
	if err != nil {
		panic(err)
	}

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, app.Handler, evt)
	})
}

// handle serves an API Gateway HTTP API event through the contact router
// in-process.
func handle(ctx context.Context, handler http.Handler, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := strings.TrimSpace(evt.RawPath)
	if path == "" {
		path = strings.TrimSpace(evt.RequestContext.HTTP.Path)
	}
	if path == "" {
		path = "/"
	}

	body, err := decodeBody(evt)
	if err != nil {
		return transportError(), nil
	}

	target := path
	if qs := strings.TrimSpace(evt.RawQueryString); qs != "" {
		target += "?" + qs
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return transportError(), nil
	}
	for k, v := range evt.Headers {
		req.Header.Set(k, v)
	}
	if sourceIP := strings.TrimSpace(evt.RequestContext.HTTP.SourceIP); sourceIP != "" {
		req.RemoteAddr = sourceIP
		if req.Header.Get("X-Real-Ip") == "" {
			req.Header.Set("X-Real-Ip", sourceIP)
		}
	}
	if evt.RequestContext.RequestID != "" && req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", evt.RequestContext.RequestID)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := events.APIGatewayV2HTTPResponse{
		StatusCode: rec.Code,
		Body:       rec.Body.String(),
		Headers:    map[string]string{},
	}
	for k := range rec.Header() {
		out.Headers[strings.ToLower(k)] = rec.Header().Get(k)
	}
	return out, nil
}

// transportError mirrors the router's response for an unreadable request.
func transportError() events.APIGatewayV2HTTPResponse {
	payload, _ := json.Marshal(contact.ErrorResponse{Error: contact.KindTransport.Message()})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: contact.KindTransport.Status(),
		Body:       string(payload),
		Headers:    map[string]string{"content-type": "application/json"},
	}
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(evt.Body)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
