package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/scholarai/scholarai/internal/app/domain/profile"
	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
	"github.com/scholarai/scholarai/internal/metrics"
)

// Generator is the structured-output surface the services depend on.
type Generator interface {
	// Checklist returns application task descriptions for a scholarship.
	// An empty list is a valid result, not an error.
	Checklist(ctx context.Context, scholarshipName, description string) ([]string, error)

	// Recommendations scores the catalog against a student profile. The
	// service is contracted (by prompt only) to include matches scoring at
	// least 50 and to sort descending by score; the output propagates as-is.
	Recommendations(ctx context.Context, p profile.Profile, catalog []scholarship.Scholarship) ([]scholarship.Recommendation, error)

	// Answer responds to a single scholarship question.
	Answer(ctx context.Context, question string) (string, error)
}

var _ Generator = (*Client)(nil)

const checklistSystemPrompt = `You are an AI assistant that helps students create application checklists for scholarships.
Based on the scholarship name and description, generate a list of common application tasks.
Your tasks should be clear, actionable, and concise. Generate between 4 and 7 tasks.
Examples of tasks:
- "Write a 500-word essay on your career goals."
- "Request two letters of recommendation from teachers."
- "Obtain an official academic transcript."
- "Complete the online application form."
Respond with a JSON object of the form {"tasks": ["task", ...]} and nothing else.`

// Checklist asks the service for application tasks for one scholarship.
func (c *Client) Checklist(ctx context.Context, scholarshipName, description string) (tasks []string, err error) {
	defer func() { metrics.RecordGeneratorCall("checklist", err == nil) }()

	userPrompt := fmt.Sprintf("Scholarship Name: %s\nScholarship Description: %s\n\nGenerate a list of likely tasks for this application.",
		scholarshipName, description)

	content, err := c.Complete(ctx, []Message{
		{Role: "system", Content: checklistSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return nil, err
	}

	extracted := ExtractJSON(content)
	if extracted == "" {
		return nil, fmt.Errorf("checklist response is not JSON")
	}
	for _, t := range gjson.Get(extracted, "tasks").Array() {
		if task := strings.TrimSpace(t.String()); task != "" {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

const recommendationSystemPrompt = `You are an AI assistant specializing in providing personalized scholarship recommendations to students.
Based on the student's profile and the scholarship catalog, identify relevant scholarships and financial aid opportunities.
For each relevant scholarship, copy its fields unchanged and add an integer "matchScore" between 0 and 100 measuring the fit between the student profile and the scholarship.
Only include scholarships with a matchScore of 50 or higher, sorted by matchScore in descending order.
Respond with a JSON array of objects with the fields scholarshipName, description, amount, deadline, link, and matchScore, and nothing else.`

// Recommendations sends the profile plus the full catalog as structured data.
func (c *Client) Recommendations(ctx context.Context, p profile.Profile, catalog []scholarship.Scholarship) (recs []scholarship.Recommendation, err error) {
	defer func() { metrics.RecordGeneratorCall("recommendations", err == nil) }()

	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf(`Student Profile:
Academic Information: %s
Financial Background: %s
Achievements: %s
Category: %s

Scholarship Catalog:
%s`, p.AcademicInfo, p.FinancialInfo, p.AchievementInfo, p.CategoryInfo, catalogJSON)

	content, err := c.Complete(ctx, []Message{
		{Role: "system", Content: recommendationSystemPrompt},
		{Role: "user", Content: userPrompt},
	})
	if err != nil {
		return nil, err
	}

	extracted := ExtractJSONArray(content)
	if extracted == "" {
		return nil, fmt.Errorf("recommendation response is not a JSON array")
	}
	if err := json.Unmarshal([]byte(extracted), &recs); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return recs, nil
}

const assistantSystemPrompt = `You are an AI assistant helping students with questions about scholarships.
Answer clearly and concisely. Respond with a JSON object of the form {"answer": "..."} and nothing else.`

// Answer asks the service a single scholarship question.
func (c *Client) Answer(ctx context.Context, question string) (answer string, err error) {
	defer func() { metrics.RecordGeneratorCall("assistant", err == nil) }()

	content, err := c.Complete(ctx, []Message{
		{Role: "system", Content: assistantSystemPrompt},
		{Role: "user", Content: question},
	})
	if err != nil {
		return "", err
	}

	if extracted := ExtractJSON(content); extracted != "" {
		if field := gjson.Get(extracted, "answer"); field.Exists() {
			return field.String(), nil
		}
	}
	// A plain-text reply is still an answer.
	return strings.TrimSpace(content), nil
}
