package toolserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cory-johannsen/diceroller/internal/dice"
)

const (
	rollToolName  = "roll_dice"
	parseToolName = "parse_dice"
)

// TextInput is the input of both dice tools.
type TextInput struct {
	Text string `json:"text" jsonschema:"natural-language dice request, e.g. '2d10 + 2d4 + 4' or 'd20 with advantage +3'"`
}

// RNGOutput mirrors dice.RNGAudit on the wire.
type RNGOutput struct {
	Source string `json:"source"`
	Nonce  string `json:"nonce"`
}

// TermOutput is one evaluated term on the wire.
type TermOutput struct {
	Type     string `json:"type"`
	Count    int    `json:"count,omitempty"`
	Sides    int    `json:"sides,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Rolls    []int  `json:"rolls,omitempty"`
	Kept     *int   `json:"kept,omitempty"`
	Value    *int   `json:"value,omitempty"`
	Subtotal int    `json:"subtotal"`
}

// RollOutput is the roll_dice result.
type RollOutput struct {
	RequestID            string       `json:"request_id"`
	Timestamp            string       `json:"timestamp"`
	Input                string       `json:"input"`
	NormalizedExpression string       `json:"normalized_expression"`
	RNG                  RNGOutput    `json:"rng"`
	Terms                []TermOutput `json:"terms"`
	Total                int          `json:"total"`
	Explanation          string       `json:"explanation"`
}

// ParsedTermOutput is one parsed, unrolled term on the wire.
type ParsedTermOutput struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Sides int    `json:"sides,omitempty"`
	Sign  int    `json:"sign,omitempty"`
	Mode  string `json:"mode,omitempty"`
	Value *int   `json:"value,omitempty"`
}

// ParseOutput is the parse_dice result.
type ParseOutput struct {
	Input                string             `json:"input"`
	NormalizedInput      string             `json:"normalized_input"`
	Mode                 string             `json:"mode"`
	Terms                []ParsedTermOutput `json:"terms"`
	NormalizedExpression string             `json:"normalized_expression"`
}

func rollTool() *mcp.Tool {
	return &mcp.Tool{
		Name: rollToolName,
		Description: "Roll D&D dice from a natural-language request. Supports d4, d6, d8, d10, d12, d20 and d100, " +
			"+ and - of dice and constants, and advantage/disadvantage on a single d20. " +
			"Errors start with a bracketed code such as [INVALID_DIE].",
	}
}

func parseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        parseToolName,
		Description: "Parse a natural-language dice request into its canonical expression without rolling.",
	}
}

// rollHandler forwards dice errors verbatim so the bracketed code leads the message.
func rollHandler(roller *dice.Roller) mcp.ToolHandlerFor[TextInput, RollOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TextInput) (*mcp.CallToolResult, RollOutput, error) {
		res, err := roller.Roll(input.Text)
		if err != nil {
			return nil, RollOutput{}, err
		}
		return nil, rollOutput(res), nil
	}
}

func parseHandler(roller *dice.Roller) mcp.ToolHandlerFor[TextInput, ParseOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TextInput) (*mcp.CallToolResult, ParseOutput, error) {
		req, err := roller.Parse(input.Text)
		if err != nil {
			return nil, ParseOutput{}, err
		}
		return nil, parseOutput(req), nil
	}
}

func rollOutput(res dice.RollResult) RollOutput {
	terms := make([]TermOutput, 0, len(res.Terms))
	for _, t := range res.Terms {
		terms = append(terms, TermOutput{
			Type:     string(t.Type),
			Count:    t.Count,
			Sides:    t.Sides,
			Mode:     string(t.Mode),
			Rolls:    t.Rolls,
			Kept:     t.Kept,
			Value:    t.Value,
			Subtotal: t.Subtotal,
		})
	}
	return RollOutput{
		RequestID:            res.RequestID,
		Timestamp:            res.Timestamp.UTC().Format(time.RFC3339),
		Input:                res.Input,
		NormalizedExpression: res.NormalizedExpression,
		RNG:                  RNGOutput{Source: res.RNG.Source, Nonce: res.RNG.Nonce},
		Terms:                terms,
		Total:                res.Total,
		Explanation:          res.Explanation,
	}
}

func parseOutput(req dice.ParsedRollRequest) ParseOutput {
	parsed := req.Terms()
	terms := make([]ParsedTermOutput, 0, len(parsed))
	for _, t := range parsed {
		switch t := t.(type) {
		case dice.DieTerm:
			terms = append(terms, ParsedTermOutput{
				Type:  string(dice.TermTypeDie),
				Count: t.Count,
				Sides: t.Sides,
				Sign:  int(t.Sign),
				Mode:  string(t.Mode),
			})
		case dice.ConstantTerm:
			v := t.Value
			terms = append(terms, ParsedTermOutput{
				Type:  string(dice.TermTypeConstant),
				Value: &v,
			})
		default:
			panic("toolserver: unknown term kind")
		}
	}
	return ParseOutput{
		Input:                req.Input,
		NormalizedInput:      req.NormalizedInput,
		Mode:                 string(req.Mode),
		Terms:                terms,
		NormalizedExpression: req.NormalizedExpression,
	}
}
