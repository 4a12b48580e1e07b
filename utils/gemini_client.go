package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// studyAssistantPrompt keeps the assistant scoped to academics. Off-topic
// questions get a polite refusal instead of an answer.
const studyAssistantPrompt = `You are an AI assistant specialized in helping students with their academic performance and study-related questions.
You should only answer questions related to:
- Study techniques and methods
- Academic performance improvement
- Time management for students
- Exam preparation strategies
- Subject-specific study tips
- Academic goal setting
- Learning strategies
- CGPA improvement tips
- Study schedule planning
- Academic stress management

Important guidelines:
1. Keep responses concise and to the point (2-3 lines maximum)
2. Focus on actionable advice
3. Use emojis for key points
4. Be encouraging and positive
5. If a question is not related to these topics, politely inform the user that you can only answer study-related questions.`

// GenerateStudyReply asks Gemini for a study-assistant response to a
// single user message.
func GenerateStudyReply(ctx context.Context, apiKey, message string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(studyAssistantPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}

	return reply.String(), nil
}
