package sentiment

import "testing"

func TestThreshold(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"Clearly_Positive", 0.5, Positive},
		{"Clearly_Negative", -0.5, Negative},
		{"Zero", 0, Neutral},
		{"At_Positive_Cutoff", 0.2, Neutral},
		{"At_Negative_Cutoff", -0.2, Neutral},
		{"Just_Over_Positive", 0.21, Positive},
		{"Just_Over_Negative", -0.21, Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Threshold(tt.score); got != tt.want {
				t.Errorf("Threshold(%v) got %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestLexiconAnalyzer(t *testing.T) {
	a := LexiconAnalyzer{}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"Positive", "this is great, thanks", Positive},
		{"Negative", "terrible, broken and useless", Negative},
		{"Greeting_Is_Neutral", "hello there my friend", Neutral},
		{"Mixed_Cancels_Out", "good product but terrible support and awful shipping experience overall today", Neutral},
		{"Empty", "", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Threshold(a.Score(tt.text)); got != tt.want {
				t.Errorf("sentiment of %q got %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestLexiconAnalyzer_ScoreRange(t *testing.T) {
	a := LexiconAnalyzer{}
	if s := a.Score("great great great"); s != 1 {
		t.Errorf("all-positive score got %v, want 1", s)
	}
	if s := a.Score("awful awful"); s != -1 {
		t.Errorf("all-negative score got %v, want -1", s)
	}
}
