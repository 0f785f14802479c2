package dice

import "go.uber.org/zap"

// Roller wraps a Source, an Auditor and a logger to provide logged dice rolling.
// Successful rolls are logged at debug level with request id, expression and
// total; rejected requests are logged at info level with their error code.
//
// Roller holds no mutable state and is safe for concurrent use when its Source is.
type Roller struct {
	src    Source
	audit  Auditor
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src, stamps results with
// audit and logs each request to logger.
//
// Precondition: src and logger must be non-nil; audit funcs must be non-nil.
func NewLoggedRoller(src Source, audit Auditor, logger *zap.Logger) *Roller {
	return &Roller{src: src, audit: audit, logger: logger}
}

// Parse parses text without rolling and logs rejections.
//
// Postcondition: Returns the ParsedRollRequest or a *Error.
func (r *Roller) Parse(text string) (ParsedRollRequest, error) {
	req, err := Parse(text)
	if err != nil {
		r.logRejection("dice parse rejected", text, err)
		return ParsedRollRequest{}, err
	}
	r.logger.Debug("dice parse",
		zap.String("input", text),
		zap.String("expression", req.NormalizedExpression),
		zap.String("mode", string(req.Mode)),
		zap.Int("terms", len(req.terms)),
	)
	return req, nil
}

// Roll parses text, rolls it and logs the result.
//
// Postcondition: Returns a RollResult or a *Error; no randomness is consumed on error.
func (r *Roller) Roll(text string) (RollResult, error) {
	req, err := Parse(text)
	if err != nil {
		r.logRejection("dice roll rejected", text, err)
		return RollResult{}, err
	}
	result := RollParsed(req, r.src, r.audit)
	r.logger.Debug("dice roll",
		zap.String("request_id", result.RequestID),
		zap.String("nonce", result.RNG.Nonce),
		zap.String("expression", result.NormalizedExpression),
		zap.Int("terms", len(result.Terms)),
		zap.Int("total", result.Total),
	)
	return result, nil
}

func (r *Roller) logRejection(msg, text string, err error) {
	r.logger.Info(msg,
		zap.String("input", text),
		zap.String("code", string(CodeOf(err))),
		zap.Error(err),
	)
}
