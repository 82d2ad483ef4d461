package clients

import "testing"

func TestParseModel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ModelType
		wantErr bool
	}{
		{"Llama 70B", "llama3-70b-8192", Llama3_70B, false},
		{"Llama 8B", "llama3-8b-8192", Llama3_8B, false},
		{"Mixtral", "mixtral-8x7b-32768", Mixtral, false},
		{"Unknown model", "gpt-99", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseModel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGroqAIRejectsUnknownModel(t *testing.T) {
	if _, err := GroqAI(ModelType("gpt-99")); err == nil {
		t.Error("GroqAI with an unknown model returned nil error")
	}
}

func TestModelsListsClosedSet(t *testing.T) {
	models := Models()
	if len(models) != 3 {
		t.Fatalf("Models() returned %d entries, want 3", len(models))
	}
	for _, m := range models {
		if _, err := ParseModel(string(m)); err != nil {
			t.Errorf("Models() entry %q does not parse", m)
		}
	}
}
