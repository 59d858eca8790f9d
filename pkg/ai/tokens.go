package ai

import (
	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "o200k_base"

// EstimateTokens counts the tokens a prompt would occupy using the
// o200k_base encoding. Used for usage accounting with backends that do
// not report prompt token counts themselves, and for sizing the context
// window on local models.
func EstimateTokens(text string) (int, error) {
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
