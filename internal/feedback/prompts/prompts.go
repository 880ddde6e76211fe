// Package prompts renders interviewer prompts for each interview stage.
package prompts

import (
	"fmt"
	"strings"

	"leetcoach/internal/feedback"
	qmodels "leetcoach/internal/question/models"
)

const notProvided = "Not provided"

// Stage carries a candidate's idea for the brute-force or optimize stage.
type Stage struct {
	Idea            string
	TimeComplexity  string
	SpaceComplexity string
}

// ReviewContext is everything the reviewer sees about a session.
type ReviewContext struct {
	Clarification string
	BruteForce    Stage
	Optimize      Stage
	Code          string
	Language      string
}

func Clarify(q *qmodels.Question, question string) feedback.Prompt {
	var b strings.Builder
	b.WriteString("You are an interviewer. Be specific to THIS problem.\n\n")
	writeProblem(&b, q)
	b.WriteString("Examples:\n")
	for _, ex := range q.Examples {
		fmt.Fprintf(&b, "Input: %s | Output: %s\n", ex.Input, ex.Output)
	}
	b.WriteString("Constraints:\n")
	for _, c := range q.Constraints {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nCandidate's question: %s\n\n", question)
	b.WriteString("Provide specific feedback under 100 words.")
	return feedback.Prompt{Kind: feedback.KindClarify, Text: b.String()}
}

func BruteForce(q *qmodels.Question, stage Stage) feedback.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate this brute-force approach for: %s\n", q.Title)
	fmt.Fprintf(&b, "Description: %s\n\n", q.Description)
	fmt.Fprintf(&b, "Approach: %s\n", stage.Idea)
	writeComplexity(&b, stage)
	b.WriteString("\n\nIs it valid? Only evaluate if it works, not if it's optimal.")
	return feedback.Prompt{Kind: feedback.KindBruteForce, Text: b.String()}
}

// Optimize includes the stored brute-force idea when there is one.
func Optimize(q *qmodels.Question, stage Stage, bruteForce string) feedback.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate optimization for: %s\n", q.Title)
	fmt.Fprintf(&b, "Description: %s\n\n", q.Description)
	fmt.Fprintf(&b, "Optimization: %s\n", stage.Idea)
	writeComplexity(&b, stage)
	if bruteForce != "" {
		fmt.Fprintf(&b, "\nPrevious brute-force: %s", bruteForce)
	}
	b.WriteString("\n\nProvide specific feedback.")
	return feedback.Prompt{Kind: feedback.KindOptimize, Text: b.String()}
}

// Review asks for a JSON grade of the candidate's code. Code lines are
// numbered from 1 so line_by_line entries can reference them.
func Review(q *qmodels.Question, rc ReviewContext) feedback.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Review %s code for: %s\n", rc.Language, q.Title)
	fmt.Fprintf(&b, "Description: %s\n\n", q.Description)
	fmt.Fprintf(&b, "Clarification: %s\n", orNotProvided(rc.Clarification))
	fmt.Fprintf(&b, "Brute-force: %s\n", orNotProvided(rc.BruteForce.Idea))
	writeComplexity(&b, rc.BruteForce)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Optimization: %s\n", orNotProvided(rc.Optimize.Idea))
	writeComplexity(&b, rc.Optimize)
	b.WriteString("\nCode:\n")
	b.WriteString(NumberLines(rc.Code))
	b.WriteString("\n\nReturn JSON:\n")
	b.WriteString(reviewSchema)
	b.WriteString("\n\nOnly output valid JSON.")
	return feedback.Prompt{Kind: feedback.KindReview, Text: b.String()}
}

func Solution(q *qmodels.Question, language string) feedback.Prompt {
	text := fmt.Sprintf("Generate optimal %s solution for: %s\nDescription: %s\n\nOutput only raw code, no explanations.",
		language, q.Title, q.Description)
	return feedback.Prompt{Kind: feedback.KindSolution, Text: text}
}

func FunctionDefinition(q *qmodels.Question, language string) feedback.Prompt {
	text := fmt.Sprintf("You are a code generator. Output only raw %s code.\n\n"+
		"Generate a function definition for: %s\nDescription: %s\n\n"+
		"Provide only the function signature or a simple stub. No explanations.",
		language, q.Title, q.Description)
	return feedback.Prompt{Kind: feedback.KindFunctionDefinition, Text: text}
}

// NumberLines prefixes each line with its 1-based number: "1: line".
func NumberLines(code string) string {
	lines := strings.Split(code, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", i+1, line)
	}
	return b.String()
}

func writeProblem(b *strings.Builder, q *qmodels.Question) {
	fmt.Fprintf(b, "Problem: %s\n", q.Title)
	fmt.Fprintf(b, "Description: %s\n", q.Description)
}

func writeComplexity(b *strings.Builder, stage Stage) {
	fmt.Fprintf(b, "Time: %s\n", orNotProvided(stage.TimeComplexity))
	fmt.Fprintf(b, "Space: %s", orNotProvided(stage.SpaceComplexity))
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

const reviewSchema = `{"clarification": {"grade": 1-10, "feedback": "..."}, ` +
	`"brute_force": {"grade": 1-10, "feedback": "..."}, ` +
	`"coding": {"grade": 1-10, "feedback": "...", "line_by_line": []}, ` +
	`"total": N, "key_pointers": "..."}`
