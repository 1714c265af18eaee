package generator

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare object",
			content: `{"tasks": ["a"]}`,
			want:    `{"tasks": ["a"]}`,
		},
		{
			name:    "fenced with language tag",
			content: "```json\n{\"tasks\": [\"a\"]}\n```",
			want:    `{"tasks": ["a"]}`,
		},
		{
			name:    "fenced without language tag",
			content: "```\n{\"tasks\": [\"a\"]}\n```",
			want:    `{"tasks": ["a"]}`,
		},
		{
			name:    "surrounding prose",
			content: "Here is your checklist:\n{\"tasks\": [\"a\"]}\nLet me know if you need more.",
			want:    `{"tasks": ["a"]}`,
		},
		{
			name:    "trailing comma removed",
			content: `{"tasks": ["a",]}`,
			want:    `{"tasks": ["a"]}`,
		},
		{
			name:    "no object",
			content: "Sorry, I cannot help with that.",
			want:    "",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractJSON(c.content); got != c.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", c.content, got, c.want)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare array",
			content: `[{"matchScore": 80}]`,
			want:    `[{"matchScore": 80}]`,
		},
		{
			name:    "fenced array",
			content: "```json\n[{\"matchScore\": 80}]\n```",
			want:    `[{"matchScore": 80}]`,
		},
		{
			name:    "prose around array",
			content: "Based on the profile:\n[{\"matchScore\": 80}]\nGood luck!",
			want:    `[{"matchScore": 80}]`,
		},
		{
			name:    "trailing comma removed",
			content: `[{"matchScore": 80},]`,
			want:    `[{"matchScore": 80}]`,
		},
		{
			name:    "no array",
			content: "no matches found",
			want:    "",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractJSONArray(c.content); got != c.want {
				t.Fatalf("ExtractJSONArray(%q) = %q, want %q", c.content, got, c.want)
			}
		})
	}
}
