package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const maxCompletionTokens = 4096

var (
	ErrDisabled   = errors.New("ocr: no API key configured")
	ErrOverloaded = errors.New("ocr: model provider is overloaded")
	ErrNoChoices  = errors.New("ocr: no completion returned")
)

type Image struct {
	MimeType string
	Data     []byte
}

// Result is the model's raw text. Truncated is set when generation stopped at
// the token limit.
type Result struct {
	Text      string
	Truncated bool
}

// Client wraps the OpenAI vision API. If client is nil, extraction is disabled.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates the client. Pass an empty apiKey to disable calls.
func NewClient(apiKey, model string, opts ...option.RequestOption) *Client {
	if model == "" {
		model = string(shared.ChatModelGPT4oMini)
	}
	if apiKey == "" {
		return &Client{client: nil, model: model}
	}
	c := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &Client{client: &c, model: model}
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Extract sends prompt plus images in one user message and returns the text answer.
func (c *Client) Extract(ctx context.Context, prompt string, images []Image) (Result, error) {
	if !c.Enabled() {
		return Result{}, ErrDisabled
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
			Detail: "high",
		}))
	}
	parts = append(parts, openai.TextContentPart(prompt))

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: parts,
				},
			},
		}},
		Temperature:         openai.Float(0.1),
		MaxCompletionTokens: openai.Int(maxCompletionTokens),
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusServiceUnavailable || apiErr.StatusCode == http.StatusTooManyRequests) {
			return Result{}, fmt.Errorf("%w: %v", ErrOverloaded, err)
		}
		return Result{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, ErrNoChoices
	}

	choice := resp.Choices[0]
	return Result{
		Text:      choice.Message.Content,
		Truncated: choice.FinishReason == "length",
	}, nil
}
