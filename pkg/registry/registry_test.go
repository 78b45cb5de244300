package registry

import (
	"errors"
	"testing"
)

func TestLookupKnownTools(t *testing.T) {
	r := MustNew(nil)

	tools := []string{ToolImprove, ToolSEOWrite, ToolParaphrase, ToolHumanize, ToolDetect, ToolGrammar}
	for _, id := range tools {
		t.Run(id, func(t *testing.T) {
			p, err := r.Lookup(id)
			if err != nil {
				t.Fatalf("Lookup(%q) returned error: %v", id, err)
			}
			if p.ID != id {
				t.Errorf("profile ID = %q, want %q", p.ID, id)
			}
			if p.MaxTokens <= 0 {
				t.Errorf("MaxTokens = %d, want > 0", p.MaxTokens)
			}
			if p.Temperature < 0 || p.Temperature > 1 {
				t.Errorf("Temperature = %v, want in [0, 1]", p.Temperature)
			}
			if p.SystemPrompt == "" {
				t.Error("SystemPrompt should not be empty")
			}
		})
	}
}

func TestLookupUnknownTool(t *testing.T) {
	r := MustNew(nil)

	_, err := r.Lookup("nonexistent")
	if err == nil {
		t.Fatal("Lookup of unknown tool should return an error")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if notFound.ID != "nonexistent" {
		t.Errorf("NotFoundError.ID = %q, want %q", notFound.ID, "nonexistent")
	}
}

func TestProfileBudgets(t *testing.T) {
	r := MustNew(nil)

	cases := []struct {
		tool      string
		maxTokens int
		temp      float64
	}{
		{ToolSEOWrite, 16000, 0.7},
		{ToolImprove, 4000, 0.5},
		{ToolHumanize, 4000, 0.8},
		{ToolParaphrase, 4000, 0.6},
		{ToolDetect, 1000, 0.3},
		{ToolGrammar, 4000, 0.2},
	}

	for _, tc := range cases {
		p, err := r.Lookup(tc.tool)
		if err != nil {
			t.Fatalf("Lookup(%q) returned error: %v", tc.tool, err)
		}
		if p.MaxTokens != tc.maxTokens {
			t.Errorf("%s: MaxTokens = %d, want %d", tc.tool, p.MaxTokens, tc.maxTokens)
		}
		if p.Temperature != tc.temp {
			t.Errorf("%s: Temperature = %v, want %v", tc.tool, p.Temperature, tc.temp)
		}
	}
}

func TestOverrides(t *testing.T) {
	t.Run("applies partial override", func(t *testing.T) {
		temp := 0.1
		r, err := New(map[string]Override{
			ToolGrammar: {MaxTokens: 2000, Temperature: &temp},
		})
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}

		p, _ := r.Lookup(ToolGrammar)
		if p.MaxTokens != 2000 {
			t.Errorf("MaxTokens = %d, want 2000", p.MaxTokens)
		}
		if p.Temperature != 0.1 {
			t.Errorf("Temperature = %v, want 0.1", p.Temperature)
		}
		if p.SystemPrompt == "" {
			t.Error("SystemPrompt should keep the built-in value")
		}
	})

	t.Run("rejects override for unknown tool", func(t *testing.T) {
		_, err := New(map[string]Override{"summarize": {MaxTokens: 100}})
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error type = %T, want *NotFoundError", err)
		}
	})

	t.Run("rejects out-of-range temperature", func(t *testing.T) {
		temp := 1.5
		_, err := New(map[string]Override{ToolImprove: {Temperature: &temp}})
		var profErr *ProfileError
		if !errors.As(err, &profErr) {
			t.Fatalf("error type = %T, want *ProfileError", err)
		}
		if profErr.Field != "temperature" {
			t.Errorf("ProfileError.Field = %q, want %q", profErr.Field, "temperature")
		}
	})

	t.Run("rejects non-positive token budget", func(t *testing.T) {
		_, err := New(map[string]Override{ToolImprove: {MaxTokens: -1}})
		var profErr *ProfileError
		if !errors.As(err, &profErr) {
			t.Fatalf("error type = %T, want *ProfileError", err)
		}
	})
}

func TestToolsSorted(t *testing.T) {
	r := MustNew(nil)
	tools := r.Tools()
	if len(tools) != 6 {
		t.Fatalf("len(Tools()) = %d, want 6", len(tools))
	}
	for i := 1; i < len(tools); i++ {
		if tools[i-1] >= tools[i] {
			t.Errorf("Tools() not sorted: %q before %q", tools[i-1], tools[i])
		}
	}
}
