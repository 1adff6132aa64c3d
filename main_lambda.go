//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-logr/logr"
)

var (
	lambdaCfg Config
	lambdaLog logr.Logger
)

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	detail := event.QueryStringParameters["detail"] == "true"
	code, out := handleOptimize(ctx, body, detail, lambdaCfg, lambdaLog)
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(out)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	_, body := errBody(code, msg)
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	cfg, err := LoadConfig(nil)
	if err != nil {
		panic(err)
	}
	lambdaCfg = cfg
	lambdaLog = newLogger(cfg.Verbose)
	lambda.Start(handler)
}
