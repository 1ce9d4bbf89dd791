package research

import "context"

// InlineImage is an encoded image attached to a completion request.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Request is a single multi-modal completion call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Images      []InlineImage
	MaxTokens   int32
	Temperature float32
}

// Completion is the generated text plus the token counts reported by the
// service, used for billing.
type Completion struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// Completer abstracts the vendor completion service so the research and
// composition logic can be tested against a fake returning canned text and
// token counts.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}
