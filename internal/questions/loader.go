package questions

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MohammedAli93/jeopardy/internal/entity"
)

// LoadFile reads a question set from a JSON file: a flat array of question
// records, Final Jeopardy entries tagged with isFinalJeopardy.
func LoadFile(path string) ([]entity.Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}

	var list []entity.Question
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse questions file: %w", err)
	}

	return list, nil
}
