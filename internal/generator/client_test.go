package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
)

// newStubService returns a client pointed at a server that replies with the
// given assistant content.
func newStubService(t *testing.T, content string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		var req struct {
			Model    string    `json:"model"`
			Messages []Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) == 0 || req.Messages[0].Role != "system" {
			t.Errorf("expected a system message first, got %+v", req.Messages)
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"}, nil)
	return client, srv
}

func TestCompleteReturnsAssistantContent(t *testing.T) {
	client, _ := newStubService(t, "hello")

	got, err := client.Complete(context.Background(), []Message{{Role: "system", Content: "s"}, {Role: "user", Content: "u"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "hello" {
		t.Fatalf("content = %q", got)
	}
}

func TestCompleteNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	client := NewClient(Config{BaseURL: srv.URL}, nil)

	if _, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "u"}}); err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestCompleteMissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()
	client := NewClient(Config{BaseURL: srv.URL}, nil)

	if _, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "u"}}); err == nil {
		t.Fatal("expected error for missing content")
	}
}

func TestCompleteHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)
	client := NewClient(Config{BaseURL: srv.URL}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Complete(ctx, []Message{{Role: "user", Content: "u"}}); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestChecklistParsesFencedTaskList(t *testing.T) {
	client, _ := newStubService(t, "```json\n{\"tasks\": [\"Write essay\", \" Request transcript \", \"\"]}\n```")

	tasks, err := client.Checklist(context.Background(), "STEM Grant", "For STEM students")
	if err != nil {
		t.Fatalf("checklist: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %v", tasks)
	}
	if tasks[0] != "Write essay" || tasks[1] != "Request transcript" {
		t.Fatalf("tasks = %v", tasks)
	}
}

func TestChecklistRejectsNonJSONResponse(t *testing.T) {
	client, _ := newStubService(t, "I'm not able to produce a checklist right now.")

	if _, err := client.Checklist(context.Background(), "STEM Grant", ""); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestRecommendationsParsesScoredArray(t *testing.T) {
	client, _ := newStubService(t, `Here you go:
[
  {"scholarshipName": "STEM Grant", "description": "d", "amount": "$5,000", "deadline": "2026-12-01", "link": "https://example.com", "matchScore": 91},
  {"scholarshipName": "Arts Award", "description": "d", "amount": "$2,000", "deadline": "2026-11-01", "link": "https://example.com", "matchScore": 64}
]`)

	recs, err := client.Recommendations(context.Background(), profile.Profile{AcademicInfo: "GPA 3.9"}, []scholarship.Scholarship{{Name: "STEM Grant"}})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %+v", recs)
	}
	if recs[0].Name != "STEM Grant" || recs[0].MatchScore != 91 {
		t.Fatalf("first recommendation = %+v", recs[0])
	}
}

func TestAnswerPrefersJSONField(t *testing.T) {
	client, _ := newStubService(t, `{"answer": "Apply before the deadline."}`)

	answer, err := client.Answer(context.Background(), "When should I apply?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "Apply before the deadline." {
		t.Fatalf("answer = %q", answer)
	}
}

func TestAnswerFallsBackToPlainText(t *testing.T) {
	client, _ := newStubService(t, "  Apply before the deadline.  ")

	answer, err := client.Answer(context.Background(), "When should I apply?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "Apply before the deadline." {
		t.Fatalf("answer = %q", answer)
	}
}
