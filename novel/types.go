package novel

// PolishRequest asks the platform to rewrite AI-generated prose so it
// reads naturally.
type PolishRequest struct {
	// OriginalText is the text to polish.
	OriginalText string `json:"original_text" validate:"required"`
	// ProjectID optionally attributes the run to a project for history.
	ProjectID int `json:"project_id,omitempty"`
	// Provider and Model select the AI backend; empty uses the
	// platform default.
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	// Temperature tunes generation randomness; the platform recommends
	// 0.7 to 0.9. Zero uses the server default.
	Temperature float64 `json:"temperature,omitempty" validate:"gte=0,lte=2"`
}

// PolishResponse is the synchronous polish result.
type PolishResponse struct {
	OriginalText    string `json:"original_text"`
	PolishedText    string `json:"polished_text"`
	WordCountBefore int    `json:"word_count_before"`
	WordCountAfter  int    `json:"word_count_after"`
}

// GenerateRequest asks the platform to generate new material, such as a
// character sheet or an outline, from a prompt.
type GenerateRequest struct {
	ProjectID int    `json:"project_id" validate:"required,gt=0"`
	Prompt    string `json:"prompt" validate:"required"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	// Temperature tunes generation randomness. Zero uses the server
	// default.
	Temperature float64 `json:"temperature,omitempty" validate:"gte=0,lte=2"`
}

// AnalysisReport is the derived chapter analysis refetched after an
// analysis job completes.
type AnalysisReport struct {
	ChapterID int      `json:"chapter_id"`
	Summary   string   `json:"summary"`
	Themes    []string `json:"themes,omitempty"`
	WordCount int      `json:"word_count"`
}
