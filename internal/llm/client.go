// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const defaultMaxTokens = 4096

// BedrockConfig configures the Bedrock backend.
type BedrockConfig struct {
	ModelID     string        // Bedrock model ID (required)
	Region      string        // AWS region (required)
	Profile     string        // AWS credential profile (optional, uses default chain if empty)
	Temperature float64       // Sampling temperature (default 0.7)
	TopP        float64       // Nucleus sampling threshold (default 0.9)
	Timeout     time.Duration // Request timeout (default 300s)
	MaxTokens   int           // Max tokens for the response (default 4096)
}

// BedrockAPI abstracts the Bedrock Converse call for testing.
type BedrockAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockClient is a Backend for AWS Bedrock models.
type BedrockClient struct {
	api         BedrockAPI
	modelID     string
	region      string
	temperature float64
	topP        float64
	timeout     time.Duration
	maxTokens   int
}

// NewBedrockClient loads AWS configuration through the standard credential
// chain and returns a Bedrock-backed client.
func NewBedrockClient(ctx context.Context, cfg BedrockConfig) (*BedrockClient, error) {
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%w: model ID is required", ErrUnreachable)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", ErrUnreachable)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %v", ErrUnreachable, err)
	}

	return NewBedrockClientWithAPI(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

// NewBedrockClientWithAPI creates a client with a pre-configured API
// implementation. Used for testing with mock clients.
func NewBedrockClientWithAPI(api BedrockAPI, cfg BedrockConfig) *BedrockClient {
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.TopP == 0 {
		cfg.TopP = DefaultTopP
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &BedrockClient{
		api:         api,
		modelID:     cfg.ModelID,
		region:      cfg.Region,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
	}
}

// Name returns "bedrock:<model>".
func (c *BedrockClient) Name() string {
	return "bedrock:" + c.modelID
}

// Ping checks configuration only. Bedrock has no unauthenticated health
// endpoint; credential problems surface from Generate.
func (c *BedrockClient) Ping(ctx context.Context) error {
	if c.api == nil || c.modelID == "" {
		return fmt.Errorf("%w: bedrock client not configured", ErrUnreachable)
	}
	return ctx.Err()
}

// Generate sends prompt as a single user message through Converse.
func (c *BedrockClient) Generate(ctx context.Context, prompt string) Result {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.api.Converse(callCtx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		Messages: []brtypes.Message{{
			Role:    brtypes.ConversationRoleUser,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: prompt}},
		}},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(c.maxTokens)),
			Temperature: aws.Float32(float32(c.temperature)),
			TopP:        aws.Float32(float32(c.topP)),
		},
	})
	if err != nil {
		return transportError(c.classifyError(err))
	}

	msg, isMsg := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !isMsg {
		return empty("converse output did not contain a message")
	}

	var text strings.Builder
	for _, block := range msg.Value.Content {
		if t, isText := block.(*brtypes.ContentBlockMemberText); isText {
			text.WriteString(t.Value)
		}
	}
	if text.Len() == 0 {
		return empty("converse message had no text content")
	}
	return ok(text.String())
}

// Remedy returns the steps for checking Bedrock access.
func (c *BedrockClient) Remedy() []string {
	return []string{
		"Check AWS credentials and that Bedrock is available in region " + c.region + ".",
		fmt.Sprintf("Request model access for %s in the Bedrock console if it is not enabled.", c.modelID),
	}
}

// StartHint points at the settings Ping validates.
func (c *BedrockClient) StartHint() string {
	return "Set --model and --region to a Bedrock model enabled for your account."
}

// classifyError describes Bedrock errors in user terms.
func (c *BedrockClient) classifyError(err error) string {
	var accessDenied *brtypes.AccessDeniedException
	if errors.As(err, &accessDenied) {
		return fmt.Sprintf("credential or permission issue: %v", err)
	}

	var notFound *brtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Sprintf("model not found: %s", c.modelID)
	}

	var throttle *brtypes.ThrottlingException
	if errors.As(err, &throttle) {
		return fmt.Sprintf("rate limited: %v", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("request timed out after %s", c.timeout)
	}

	return err.Error()
}
